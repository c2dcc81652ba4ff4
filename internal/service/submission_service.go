package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/repository"
	"smartdalim_backend/internal/util"
	"smartdalim_backend/pkg/logger"
	"smartdalim_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	Repo        *repository.SubmissionRepository
	Assessments *repository.AssessmentRepository
	Questions   *repository.QuestionRepository
	Users       *repository.UserRepository
	Analytics   *AnalyticsService
	// AutoFinalize controls the policy for objective-only assessments: when
	// true, submit lands the submission directly in graded instead of
	// completed, since there is nothing left for a teacher to do.
	AutoFinalize bool
	Now          Clock
}

func NewSubmissionService(
	repo *repository.SubmissionRepository,
	assessments *repository.AssessmentRepository,
	questions *repository.QuestionRepository,
	users *repository.UserRepository,
	analytics *AnalyticsService,
	autoFinalize bool,
) *SubmissionService {
	return &SubmissionService{
		Repo:         repo,
		Assessments:  assessments,
		Questions:    questions,
		Users:        users,
		Analytics:    analytics,
		AutoFinalize: autoFinalize,
		Now:          SystemClock,
	}
}

// validateParticipantRef enforces the tagged union: exactly one of the two
// participant kinds, and the referenced profile must exist.
func (s *SubmissionService) validateParticipantRef(ref model.ParticipantRef) error {
	if ref.ID == 0 {
		return util.ValidationErr("participant id is required")
	}
	switch ref.Type {
	case model.ParticipantChild:
		if _, err := s.Users.FindChildByID(ref.ID); err != nil {
			return util.NotFoundErr("child not found")
		}
	case model.ParticipantClient:
		if _, err := s.Users.FindClientByID(ref.ID); err != nil {
			return util.NotFoundErr("client not found")
		}
	default:
		return util.ValidationErr(fmt.Sprintf("unknown participant type %q", ref.Type))
	}
	return nil
}

// retakeAllowed applies the retake policy against the prior attempt count and
// the latest attempt.
func retakeAllowed(settings model.AssessmentSettings, priorCount int, latest *model.Submission) error {
	if priorCount == 0 {
		return nil
	}
	if !settings.AllowRetakes {
		return util.ErrRetakeNotAllowed
	}
	if priorCount >= settings.MaxRetakes {
		return util.ConflictErr(fmt.Sprintf("retake limit of %d reached", settings.MaxRetakes))
	}
	if latest != nil && !latest.Finished() {
		return util.ConflictErr("previous attempt is still open")
	}
	return nil
}

// AssignParticipant creates a fresh not_started submission for the
// participant, subject to the retake policy.
func (s *SubmissionService) AssignParticipant(teacherProfileID, assessmentID uint, ref model.ParticipantRef) (*model.Submission, error) {
	assessment, err := s.ownedAssessment(teacherProfileID, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Archived {
		return nil, util.ErrAssessmentArchived
	}
	if err := s.validateParticipantRef(ref); err != nil {
		return nil, err
	}

	priorCount, err := s.Repo.CountForParticipant(assessmentID, ref)
	if err != nil {
		return nil, err
	}
	var latest *model.Submission
	if priorCount > 0 {
		if latest, err = s.Repo.FindLatestForParticipant(assessmentID, ref); err != nil {
			return nil, err
		}
	}
	if err := retakeAllowed(assessment.Settings, int(priorCount), latest); err != nil {
		return nil, err
	}

	sub := &model.Submission{
		AssessmentID:    assessmentID,
		ParticipantType: ref.Type,
		ParticipantID:   ref.ID,
		Attempt:         int(priorCount) + 1,
		Status:          model.SubmissionNotStarted,
		Answers:         model.NewAnswers(map[uint]string{}),
		ManualScores:    model.NewManualScores(map[uint]int{}),
	}
	if err := s.Repo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// applyAnswer writes one answer into the submission in memory. The first
// write moves not_started to in_progress and stamps the start time; writes
// after submit are rejected.
func applyAnswer(sub *model.Submission, questionID uint, answer string, now time.Time) error {
	if sub.Status == model.SubmissionCompleted || sub.Status == model.SubmissionGraded {
		return util.InvalidState("cannot answer a submitted assessment")
	}

	if sub.Status == model.SubmissionNotStarted {
		sub.Status = model.SubmissionInProgress
		if sub.StartTime == nil {
			sub.StartTime = &now
		}
	}

	answers := sub.Answers.Data()
	if answers == nil {
		answers = map[uint]string{}
	}
	answers[questionID] = answer
	sub.Answers = model.NewAnswers(answers)
	return nil
}

// finalizeSubmission closes the attempt in memory: runs the automatic pass
// and picks the terminal status. An attempt with nothing but auto-gradable
// questions is final immediately under the autoFinalize policy; otherwise it
// waits in completed for the teacher.
func finalizeSubmission(sub *model.Submission, questions []model.Question, autoFinalize bool, now time.Time) error {
	if sub.Status == model.SubmissionCompleted || sub.Status == model.SubmissionGraded {
		return util.InvalidState("submission was already submitted")
	}
	if sub.StartTime == nil {
		return util.InvalidState("cannot submit before starting")
	}

	autoScore := GradeAutomatic(sub.Answers.Data(), questions)
	sub.EndTime = &now
	sub.Score = &autoScore
	sub.Status = model.SubmissionCompleted

	if !HasManualQuestions(questions) && autoFinalize {
		sub.Status = model.SubmissionGraded
		sub.GradedAt = &now
	}
	return nil
}

// RecordAnswer validates the question and persists the answer write.
func (s *SubmissionService) RecordAnswer(ref model.ParticipantRef, submissionID, questionID uint, answer string) (*model.Submission, error) {
	sub, err := s.participantSubmission(ref, submissionID)
	if err != nil {
		return nil, err
	}

	q, err := s.Questions.FindByID(questionID)
	if err != nil || q.AssessmentID != sub.AssessmentID {
		return nil, util.ErrQuestionNotFound
	}

	if err := applyAnswer(sub, questionID, answer, s.Now()); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Submit closes the attempt and runs the automatic grading pass. When the
// assessment has no manually graded questions and AutoFinalize is on, the
// submission is final immediately; otherwise it waits in completed for the
// teacher.
func (s *SubmissionService) Submit(ctx context.Context, ref model.ParticipantRef, submissionID uint) (*model.Submission, error) {
	sub, err := s.participantSubmission(ref, submissionID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.Assessments.FindByID(sub.AssessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	questions, err := s.Questions.ListByAssessment(sub.AssessmentID)
	if err != nil {
		return nil, err
	}
	if sum := QuestionPointsSum(questions); sum != assessment.TotalPoints {
		logger.Log.Warn("question points do not add up to totalPoints",
			zap.Uint("assessmentId", assessment.ID), zap.Int("sum", sum), zap.Int("totalPoints", assessment.TotalPoints))
	}

	if err := finalizeSubmission(sub, questions, s.AutoFinalize, s.Now()); err != nil {
		return nil, err
	}
	if sub.Status == model.SubmissionGraded {
		monitoring.SubmissionsGraded.WithLabelValues("auto").Inc()
	}

	if err := s.Repo.Update(sub); err != nil {
		return nil, err
	}
	s.Analytics.InvalidateCache(ctx, sub.AssessmentID)
	return sub, nil
}

// Grade applies the teacher's manual scores and finalizes the submission.
// The write carries an optimistic guard: if another teacher graded in
// between, the second write loses with a conflict.
func (s *SubmissionService) Grade(ctx context.Context, teacherProfileID, gradedByUserID, submissionID uint, manualScores map[uint]int) (*model.Submission, error) {
	sub, err := s.Repo.FindByID(submissionID)
	if err != nil {
		return nil, util.ErrSubmissionNotFound
	}
	if _, err := s.ownedAssessment(teacherProfileID, sub.AssessmentID); err != nil {
		return nil, util.ErrSubmissionNotFound
	}

	switch sub.Status {
	case model.SubmissionGraded:
		return nil, util.ErrAlreadyGraded
	case model.SubmissionCompleted:
		// ready for grading
	default:
		return nil, util.InvalidState("submission has not been submitted yet")
	}

	questions, err := s.Questions.ListByAssessment(sub.AssessmentID)
	if err != nil {
		return nil, err
	}
	if err := ValidateManualScores(manualScores, questions); err != nil {
		return nil, err
	}

	autoScore := GradeAutomatic(sub.Answers.Data(), questions)
	total := MergeManualScores(autoScore, manualScores)

	rows, err := s.Repo.MarkGraded(submissionID, total, manualScores, gradedByUserID, s.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, util.ErrAlreadyGraded
	}
	monitoring.SubmissionsGraded.WithLabelValues("manual").Inc()
	s.Analytics.InvalidateCache(ctx, sub.AssessmentID)

	return s.Repo.FindByID(submissionID)
}

type SubmissionReviewRow struct {
	model.Submission
	ParticipantName string `json:"participantName"`
	Late            bool   `json:"late"`
}

// ReviewList gives the teacher every submission for an assessment with the
// derived late flag and resolved participant names.
func (s *SubmissionService) ReviewList(teacherProfileID, assessmentID uint) ([]SubmissionReviewRow, error) {
	assessment, err := s.ownedAssessment(teacherProfileID, assessmentID)
	if err != nil {
		return nil, err
	}
	subs, err := s.Repo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	rows := make([]SubmissionReviewRow, len(subs))
	for i := range subs {
		rows[i] = SubmissionReviewRow{
			Submission:      subs[i],
			ParticipantName: s.participantName(subs[i].Participant()),
			Late:            subs[i].IsLate(assessment.DueDate, now),
		}
	}
	return rows, nil
}

type ParticipantResultQuestion struct {
	QuestionID    uint     `json:"questionId"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Points        int      `json:"points"`
	Answer        *string  `json:"answer,omitempty"`
	CorrectAnswer *string  `json:"correctAnswer,omitempty"`
	Options       []string `json:"options,omitempty"`
}

type ParticipantResult struct {
	Submission *model.Submission           `json:"submission"`
	Late       bool                        `json:"late"`
	Questions  []ParticipantResultQuestion `json:"questions"`
}

// Result returns the participant-facing view. Correct answers are only
// revealed when the assessment settings allow it and grading is final.
func (s *SubmissionService) Result(ref model.ParticipantRef, submissionID uint) (*ParticipantResult, error) {
	sub, err := s.participantSubmission(ref, submissionID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.Assessments.FindByID(sub.AssessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	questions, err := s.Questions.ListByAssessment(sub.AssessmentID)
	if err != nil {
		return nil, err
	}

	answers := sub.Answers.Data()
	revealAnswers := assessment.Settings.ShowCorrectAnswers && sub.Status == model.SubmissionGraded

	out := &ParticipantResult{
		Submission: sub,
		Late:       sub.IsLate(assessment.DueDate, s.Now()),
		Questions:  make([]ParticipantResultQuestion, len(questions)),
	}
	for i := range questions {
		q := &questions[i]
		row := ParticipantResultQuestion{
			QuestionID: q.ID,
			Text:       q.Text,
			Type:       string(q.Type),
			Points:     q.Points,
			Options:    q.Options,
		}
		if ans, ok := answers[q.ID]; ok {
			row.Answer = &ans
		}
		if revealAnswers {
			correct := q.CorrectAnswer
			row.CorrectAnswer = &correct
		}
		out.Questions[i] = row
	}
	return out, nil
}

type AssignedAssessmentRow struct {
	SubmissionID uint                   `json:"submissionId"`
	Assessment   model.Assessment       `json:"assessment"`
	Status       model.AssessmentStatus `json:"assessmentStatus"`
	Submission   model.SubmissionStatus `json:"submissionStatus"`
	Late         bool                   `json:"late"`
}

// AssignedList shows the participant every assessment they were assigned to.
func (s *SubmissionService) AssignedList(ref model.ParticipantRef) ([]AssignedAssessmentRow, error) {
	subs, err := s.Repo.ListByParticipant(ref)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	rows := make([]AssignedAssessmentRow, 0, len(subs))
	for i := range subs {
		assessment, err := s.Assessments.FindByID(subs[i].AssessmentID)
		if err != nil {
			continue
		}
		rows = append(rows, AssignedAssessmentRow{
			SubmissionID: subs[i].ID,
			Assessment:   *assessment,
			Status:       assessment.EffectiveStatus(now),
			Submission:   subs[i].Status,
			Late:         subs[i].IsLate(assessment.DueDate, now),
		})
	}
	return rows, nil
}

// ResolveParticipant turns the calling user into a participant reference.
// Parents act on behalf of one of their own children; clients act as
// themselves.
func (s *SubmissionService) ResolveParticipant(userID uint, role model.UserRole, childID uint) (model.ParticipantRef, error) {
	switch role {
	case model.Parent:
		profile, err := s.Users.FindParentProfileByUserID(userID)
		if err != nil {
			return model.ParticipantRef{}, util.NotFoundErr("parent profile not found")
		}
		for _, c := range profile.Children {
			if c.ID == childID {
				return model.ParticipantRef{Type: model.ParticipantChild, ID: childID}, nil
			}
		}
		return model.ParticipantRef{}, util.ValidationErr("child does not belong to this parent")
	case model.ClientUser:
		client, err := s.Users.FindClientByUserID(userID)
		if err != nil {
			return model.ParticipantRef{}, util.NotFoundErr("client profile not found")
		}
		return model.ParticipantRef{Type: model.ParticipantClient, ID: client.ID}, nil
	default:
		return model.ParticipantRef{}, util.ValidationErr("role cannot take assessments")
	}
}

func (s *SubmissionService) participantSubmission(ref model.ParticipantRef, submissionID uint) (*model.Submission, error) {
	sub, err := s.Repo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.ParticipantType != ref.Type || sub.ParticipantID != ref.ID {
		return nil, util.ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *SubmissionService) ownedAssessment(teacherProfileID, assessmentID uint) (*model.Assessment, error) {
	a, err := s.Assessments.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	if a.TeacherProfileID != teacherProfileID {
		return nil, util.ErrAssessmentNotFound
	}
	return a, nil
}

func (s *SubmissionService) participantName(ref model.ParticipantRef) string {
	switch ref.Type {
	case model.ParticipantChild:
		if c, err := s.Users.FindChildByID(ref.ID); err == nil {
			return c.Name
		}
	case model.ParticipantClient:
		if c, err := s.Users.FindClientByID(ref.ID); err == nil {
			if c.User != nil {
				return c.User.Name
			}
			return c.Organization
		}
	}
	return ""
}
