package service

import (
	"strings"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/repository"
	"smartdalim_backend/internal/util"

	"github.com/google/uuid"
)

type CatalogService struct {
	Repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

func (s *CatalogService) ListSubjects() ([]model.Subject, error) {
	return s.Repo.ListSubjects()
}

type CourseRequest struct {
	SubjectID   *uint   `json:"subjectId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (s *CatalogService) CreateCourse(teacherProfileID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		TeacherProfileID: teacherProfileID,
		Status:           model.CourseDraft,
	}
	if err := s.applyCourseRequest(course, req); err != nil {
		return nil, err
	}
	if course.Name == "" {
		return nil, util.ValidationErr("course name is required")
	}
	if course.SubjectID == 0 {
		return nil, util.ValidationErr("subjectId is required")
	}
	if err := s.Repo.CreateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) UpdateCourse(teacherProfileID, courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.ownedCourse(teacherProfileID, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.applyCourseRequest(course, req); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) DeleteCourse(teacherProfileID, courseID uint) error {
	if _, err := s.ownedCourse(teacherProfileID, courseID); err != nil {
		return err
	}
	return s.Repo.DeleteCourse(courseID)
}

func (s *CatalogService) ListCourses(teacherProfileID uint, page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListCoursesByTeacher(teacherProfileID, page, limit)
}

func (s *CatalogService) applyCourseRequest(course *model.Course, req CourseRequest) error {
	if req.SubjectID != nil {
		if _, err := s.Repo.FindSubjectByID(*req.SubjectID); err != nil {
			return util.NotFoundErr("subject not found")
		}
		course.SubjectID = *req.SubjectID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return util.ValidationErr("course name cannot be empty")
		}
		course.Name = name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Status != nil {
		switch model.CourseStatus(*req.Status) {
		case model.CourseDraft, model.CourseOpen, model.CourseClosed:
			course.Status = model.CourseStatus(*req.Status)
		default:
			return util.ValidationErr("unknown course status " + *req.Status)
		}
	}
	return nil
}

type MaterialRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"min=0"`
}

// RegisterMaterial records an uploaded file under a fresh storage key. The
// bytes themselves live in an external store keyed by that value.
func (s *CatalogService) RegisterMaterial(teacherProfileID uint, req MaterialRequest) (*model.Material, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	m := &model.Material{
		TeacherProfileID: teacherProfileID,
		Name:             req.Name,
		StorageKey:       uuid.NewString(),
		ContentType:      req.ContentType,
		SizeBytes:        req.SizeBytes,
	}
	if err := s.Repo.CreateMaterial(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) ListMaterials(teacherProfileID uint) ([]model.Material, error) {
	return s.Repo.ListMaterialsByTeacher(teacherProfileID)
}

func (s *CatalogService) ownedCourse(teacherProfileID, courseID uint) (*model.Course, error) {
	course, err := s.Repo.FindCourseByID(courseID)
	if err != nil {
		return nil, util.NotFoundErr("course not found")
	}
	if course.TeacherProfileID != teacherProfileID {
		return nil, util.NotFoundErr("course not found")
	}
	return course, nil
}
