package service

import (
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/repository"
	"smartdalim_backend/internal/util"
)

type BookingService struct {
	Sessions *repository.SessionRepository
	Catalog  *repository.CatalogRepository
	Users    *repository.UserRepository
	Now      Clock
}

func NewBookingService(sessions *repository.SessionRepository, catalog *repository.CatalogRepository, users *repository.UserRepository) *BookingService {
	return &BookingService{Sessions: sessions, Catalog: catalog, Users: users, Now: SystemClock}
}

type BookSessionRequest struct {
	ChildID   uint      `json:"childId" validate:"required"`
	SubjectID uint      `json:"subjectId" validate:"required"`
	StartsAt  time.Time `json:"startsAt" validate:"required"`
	EndsAt    time.Time `json:"endsAt" validate:"required"`
	Notes     string    `json:"notes"`
}

// Book creates a session between the teacher and one of the parent's children.
func (s *BookingService) Book(teacherProfileID uint, parentUserID uint, req BookSessionRequest) (*model.LearningSession, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, util.ValidationErr("endsAt must be after startsAt")
	}
	if req.StartsAt.Before(s.Now()) {
		return nil, util.ValidationErr("cannot book a session in the past")
	}

	profile, err := s.Users.FindParentProfileByUserID(parentUserID)
	if err != nil {
		return nil, util.NotFoundErr("parent profile not found")
	}
	owned := false
	for _, c := range profile.Children {
		if c.ID == req.ChildID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, util.ValidationErr("child does not belong to this parent")
	}
	if _, err := s.Catalog.FindSubjectByID(req.SubjectID); err != nil {
		return nil, util.NotFoundErr("subject not found")
	}

	session := &model.LearningSession{
		TeacherProfileID: teacherProfileID,
		ChildID:          req.ChildID,
		SubjectID:        req.SubjectID,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
		Status:           model.SessionBooked,
		Notes:            req.Notes,
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete marks a booked session as held. Cancelled sessions stay cancelled.
func (s *BookingService) Complete(teacherProfileID, sessionID uint) (*model.LearningSession, error) {
	session, err := s.ownedSession(teacherProfileID, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case model.SessionCompleted:
		return session, nil
	case model.SessionCancelled:
		return nil, util.InvalidState("cancelled sessions cannot be completed")
	}
	session.Status = model.SessionCompleted
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *BookingService) Cancel(teacherProfileID, sessionID uint) (*model.LearningSession, error) {
	session, err := s.ownedSession(teacherProfileID, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case model.SessionCancelled:
		return session, nil
	case model.SessionCompleted:
		return nil, util.InvalidState("completed sessions cannot be cancelled")
	}
	session.Status = model.SessionCancelled
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *BookingService) TeacherSchedule(teacherProfileID uint, from, to time.Time, page, limit int) ([]model.LearningSession, int64, error) {
	if !to.After(from) {
		return nil, 0, util.ValidationErr("to must be after from")
	}
	return s.Sessions.ListByTeacherInRange(teacherProfileID, from, to, page, limit)
}

func (s *BookingService) ChildSchedule(parentUserID, childID uint, from, to time.Time) ([]model.LearningSession, error) {
	profile, err := s.Users.FindParentProfileByUserID(parentUserID)
	if err != nil {
		return nil, util.NotFoundErr("parent profile not found")
	}
	owned := false
	for _, c := range profile.Children {
		if c.ID == childID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, util.ValidationErr("child does not belong to this parent")
	}
	return s.Sessions.ListByChildInRange(childID, from, to)
}

func (s *BookingService) ownedSession(teacherProfileID, sessionID uint) (*model.LearningSession, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		return nil, util.NotFoundErr("session not found")
	}
	if session.TeacherProfileID != teacherProfileID {
		return nil, util.NotFoundErr("session not found")
	}
	return session, nil
}
