package service

import (
	"errors"
	"fmt"
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/repository"
	"smartdalim_backend/internal/util"
	"smartdalim_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo      *repository.AssessmentRepository
	Questions *repository.QuestionRepository
	Catalog   *repository.CatalogRepository
	Now       Clock
}

func NewAssessmentService(repo *repository.AssessmentRepository, questions *repository.QuestionRepository, catalog *repository.CatalogRepository) *AssessmentService {
	return &AssessmentService{Repo: repo, Questions: questions, Catalog: catalog, Now: SystemClock}
}

var validAssessmentTypes = map[model.AssessmentType]bool{
	model.AssessmentQuiz:         true,
	model.AssessmentTest:         true,
	model.AssessmentExam:         true,
	model.AssessmentAssignment:   true,
	model.AssessmentProject:      true,
	model.AssessmentEssay:        true,
	model.AssessmentPresentation: true,
	model.AssessmentOther:        true,
}

type AssessmentSettingsRequest struct {
	ShuffleQuestions   *bool `json:"shuffleQuestions"`
	ShowCorrectAnswers *bool `json:"showCorrectAnswers"`
	AllowRetakes       *bool `json:"allowRetakes"`
	MaxRetakes         *int  `json:"maxRetakes" validate:"omitempty,min=1"`
}

type AssessmentRequest struct {
	Title         *string                    `json:"title"`
	Description   *string                    `json:"description"`
	Type          *string                    `json:"type"`
	TotalPoints   *int                       `json:"totalPoints"`
	PassingPoints *int                       `json:"passingPoints"`
	TimeLimit     *int                       `json:"timeLimit" validate:"omitempty,min=0"`
	StartDate     *time.Time                 `json:"startDate"`
	DueDate       *time.Time                 `json:"dueDate"`
	CourseID      *uint                      `json:"courseId"`
	SubjectID     *uint                      `json:"subjectId"`
	Settings      *AssessmentSettingsRequest `json:"settings"`
}

// validateAssessment enforces the cross-field invariants that must hold after
// every mutation: positive total, passing <= total, due >= start.
func validateAssessment(a *model.Assessment) error {
	if a.Title == "" {
		return util.ValidationErr("title is required")
	}
	if a.TotalPoints < 1 {
		return util.ValidationErr("totalPoints must be at least 1")
	}
	if a.PassingPoints != nil && *a.PassingPoints > a.TotalPoints {
		return util.ValidationErr("passingPoints cannot exceed totalPoints")
	}
	if a.PassingPoints != nil && *a.PassingPoints < 0 {
		return util.ValidationErr("passingPoints cannot be negative")
	}
	if a.StartDate != nil && a.DueDate != nil && a.DueDate.Before(*a.StartDate) {
		return util.ValidationErr("dueDate must not be before startDate")
	}
	if !validAssessmentTypes[a.Type] {
		return util.ValidationErr(fmt.Sprintf("unknown assessment type %q", a.Type))
	}
	return nil
}

func applyAssessmentRequest(a *model.Assessment, req AssessmentRequest) {
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Type != nil {
		a.Type = model.AssessmentType(*req.Type)
	}
	if req.TotalPoints != nil {
		a.TotalPoints = *req.TotalPoints
	}
	if req.PassingPoints != nil {
		a.PassingPoints = req.PassingPoints
	}
	if req.TimeLimit != nil {
		a.TimeLimit = *req.TimeLimit
	}
	if req.StartDate != nil {
		a.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		a.DueDate = req.DueDate
	}
	if req.CourseID != nil {
		a.CourseID = req.CourseID
	}
	if req.SubjectID != nil {
		a.SubjectID = req.SubjectID
	}
	if req.Settings != nil {
		if req.Settings.ShuffleQuestions != nil {
			a.Settings.ShuffleQuestions = *req.Settings.ShuffleQuestions
		}
		if req.Settings.ShowCorrectAnswers != nil {
			a.Settings.ShowCorrectAnswers = *req.Settings.ShowCorrectAnswers
		}
		if req.Settings.AllowRetakes != nil {
			a.Settings.AllowRetakes = *req.Settings.AllowRetakes
		}
		if req.Settings.MaxRetakes != nil {
			a.Settings.MaxRetakes = *req.Settings.MaxRetakes
		}
	}
}

func (s *AssessmentService) Create(teacherProfileID uint, req AssessmentRequest) (*model.Assessment, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	a := &model.Assessment{
		TeacherProfileID: teacherProfileID,
		Type:             model.AssessmentQuiz,
		Settings:         model.AssessmentSettings{MaxRetakes: 1},
	}
	applyAssessmentRequest(a, req)

	if err := validateAssessment(a); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) Update(teacherProfileID, id uint, req AssessmentRequest) (*model.Assessment, error) {
	a, err := s.owned(teacherProfileID, id)
	if err != nil {
		return nil, err
	}
	if a.Archived {
		return nil, util.ErrAssessmentArchived
	}

	applyAssessmentRequest(a, req)
	if err := validateAssessment(a); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) Get(teacherProfileID, id uint) (*model.Assessment, error) {
	a, err := s.Repo.FindWithQuestions(id)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	if a.TeacherProfileID != teacherProfileID {
		return nil, util.ErrAssessmentNotFound
	}
	return a, nil
}

type AssessmentListRow struct {
	model.Assessment
	Status model.AssessmentStatus `json:"status"`
}

func attachStatus(as []model.Assessment, now time.Time) []AssessmentListRow {
	rows := make([]AssessmentListRow, len(as))
	for i := range as {
		rows[i] = AssessmentListRow{Assessment: as[i], Status: as[i].EffectiveStatus(now)}
	}
	return rows
}

func filterByStatus(rows []AssessmentListRow, status model.AssessmentStatus) []AssessmentListRow {
	out := make([]AssessmentListRow, 0, len(rows))
	for i := range rows {
		if rows[i].Status == status {
			out = append(out, rows[i])
		}
	}
	return out
}

func pageOf(rows []AssessmentListRow, page, limit int) []AssessmentListRow {
	start := (page - 1) * limit
	if start >= len(rows) {
		return []AssessmentListRow{}
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// List returns the teacher's assessments with the derived status attached.
// The unfiltered path paginates in SQL; the status filter operates on derived
// state, so that path filters the full set first and paginates after, keeping
// the reported total consistent with the filter.
func (s *AssessmentService) List(teacherProfileID uint, statusFilter string, page, limit int) ([]AssessmentListRow, int64, error) {
	if statusFilter == "" {
		as, total, err := s.Repo.ListByTeacher(teacherProfileID, false, page, limit)
		if err != nil {
			return nil, 0, err
		}
		return attachStatus(as, s.Now()), total, nil
	}

	includeArchived := statusFilter == string(model.StatusArchived)
	as, err := s.Repo.ListAllByTeacher(teacherProfileID, includeArchived)
	if err != nil {
		return nil, 0, err
	}
	rows := filterByStatus(attachStatus(as, s.Now()), model.AssessmentStatus(statusFilter))
	return pageOf(rows, page, limit), int64(len(rows)), nil
}

// Delete removes the assessment with its questions and submissions; the
// cascade is transactional and irreversible.
func (s *AssessmentService) Delete(teacherProfileID, id uint) error {
	if _, err := s.owned(teacherProfileID, id); err != nil {
		return err
	}
	return s.Repo.DeleteCascade(id)
}

// Publish is idempotent: publishing an already published assessment is a
// no-op, not an error. Requires a title, a positive total and at least one
// question.
func (s *AssessmentService) Publish(teacherProfileID, id uint) (*model.Assessment, error) {
	a, err := s.owned(teacherProfileID, id)
	if err != nil {
		return nil, err
	}
	if a.Archived {
		return nil, util.ErrAssessmentArchived
	}
	if a.IsPublished {
		return a, nil
	}
	if a.Title == "" || a.TotalPoints < 1 {
		return nil, util.ValidationErr("assessment needs a title and a positive total before publishing")
	}
	qs, err := s.Questions.ListByAssessment(id)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, util.InvalidState("cannot publish an assessment without questions")
	}
	if sum := QuestionPointsSum(qs); sum != a.TotalPoints {
		logger.Log.Warn("question points do not add up to totalPoints",
			zap.Uint("assessmentId", id), zap.Int("sum", sum), zap.Int("totalPoints", a.TotalPoints))
	}

	now := s.Now()
	a.IsPublished = true
	a.PublishedAt = &now
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Unpublish sends the assessment back to draft without touching its dates.
func (s *AssessmentService) Unpublish(teacherProfileID, id uint) (*model.Assessment, error) {
	a, err := s.owned(teacherProfileID, id)
	if err != nil {
		return nil, err
	}
	if a.Archived {
		return nil, util.ErrAssessmentArchived
	}
	if !a.IsPublished {
		return a, nil
	}
	a.IsPublished = false
	a.PublishedAt = nil
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Archive is terminal; there is no restore.
func (s *AssessmentService) Archive(teacherProfileID, id uint) (*model.Assessment, error) {
	a, err := s.owned(teacherProfileID, id)
	if err != nil {
		return nil, err
	}
	if a.Archived {
		return a, nil
	}
	a.Archived = true
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) Schedule(teacherProfileID, id uint, start, due *time.Time) (*model.Assessment, error) {
	a, err := s.owned(teacherProfileID, id)
	if err != nil {
		return nil, err
	}
	if a.Archived {
		return nil, util.ErrAssessmentArchived
	}
	a.StartDate = start
	a.DueDate = due
	if err := validateAssessment(a); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Duplicate clones the assessment and its question set into a new draft.
// Submissions stay behind.
func (s *AssessmentService) Duplicate(teacherProfileID, id uint) (*model.Assessment, error) {
	src, err := s.Repo.FindWithQuestions(id)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	if src.TeacherProfileID != teacherProfileID {
		return nil, util.ErrAssessmentNotFound
	}
	return s.Repo.Duplicate(src, src.Questions)
}

type QuestionRequest struct {
	Text          string   `json:"text" validate:"required"`
	Type          string   `json:"type" validate:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Points        int      `json:"points" validate:"min=1"`
	Difficulty    string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// validateQuestionSpec checks the type-specific shape rules: choices need at
// least two options with the answer among them, true/false needs a boolean
// answer.
func validateQuestionSpec(req QuestionRequest) error {
	qt := model.QuestionType(req.Type)
	switch qt {
	case model.QuestionMultipleChoice:
		if len(req.Options) < 2 {
			return util.ValidationErr("multiple_choice requires at least 2 options")
		}
		found := false
		for _, o := range req.Options {
			if o == req.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return util.ValidationErr("correctAnswer must be one of the options")
		}
	case model.QuestionTrueFalse:
		if req.CorrectAnswer != "true" && req.CorrectAnswer != "false" {
			return util.ValidationErr("true_false requires correctAnswer true or false")
		}
	case model.QuestionShortAnswer, model.QuestionEssay, model.QuestionMatching, model.QuestionFillBlank:
		// Manually graded; the reference answer is free-form.
	default:
		return util.ValidationErr(fmt.Sprintf("unknown question type %q", req.Type))
	}
	if req.Points < 1 {
		return util.ValidationErr("points must be at least 1")
	}
	return nil
}

func (s *AssessmentService) AddQuestion(teacherProfileID, assessmentID uint, req QuestionRequest) (*model.Question, error) {
	a, err := s.owned(teacherProfileID, assessmentID)
	if err != nil {
		return nil, err
	}
	if a.Archived {
		return nil, util.ErrAssessmentArchived
	}
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validateQuestionSpec(req); err != nil {
		return nil, err
	}

	order, err := s.Questions.NextOrder(assessmentID)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		AssessmentID:  assessmentID,
		Text:          req.Text,
		Type:          model.QuestionType(req.Type),
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Difficulty:    model.Difficulty(req.Difficulty),
		Order:         order,
	}
	if err := s.Questions.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) UpdateQuestion(teacherProfileID, questionID uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Questions.FindByID(questionID)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	if _, err := s.owned(teacherProfileID, q.AssessmentID); err != nil {
		return nil, util.ErrQuestionNotFound
	}
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validateQuestionSpec(req); err != nil {
		return nil, err
	}

	q.Text = req.Text
	q.Type = model.QuestionType(req.Type)
	q.Options = req.Options
	q.CorrectAnswer = req.CorrectAnswer
	q.Points = req.Points
	q.Difficulty = model.Difficulty(req.Difficulty)
	if err := s.Questions.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) DeleteQuestion(teacherProfileID, questionID uint) error {
	q, err := s.Questions.FindByID(questionID)
	if err != nil {
		return util.ErrQuestionNotFound
	}
	if _, err := s.owned(teacherProfileID, q.AssessmentID); err != nil {
		return util.ErrQuestionNotFound
	}
	return s.Questions.Delete(questionID)
}

// ReorderQuestions swaps in a full new ordering; partial sets are rejected by
// the repository and nothing is written.
func (s *AssessmentService) ReorderQuestions(teacherProfileID, assessmentID uint, orderedIDs []uint) error {
	if _, err := s.owned(teacherProfileID, assessmentID); err != nil {
		return err
	}
	if err := s.Questions.Reorder(assessmentID, orderedIDs); err != nil {
		return util.ValidationErr(err.Error())
	}
	return nil
}

// AttachMaterial links one of the teacher's uploaded materials to the
// assessment.
func (s *AssessmentService) AttachMaterial(teacherProfileID, assessmentID, materialID uint) error {
	a, err := s.owned(teacherProfileID, assessmentID)
	if err != nil {
		return err
	}
	m, err := s.Catalog.FindMaterialByID(materialID)
	if err != nil || m.TeacherProfileID != teacherProfileID {
		return util.NotFoundErr("material not found")
	}
	return s.Repo.AttachMaterial(a, m)
}

func (s *AssessmentService) owned(teacherProfileID, id uint) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if a.TeacherProfileID != teacherProfileID {
		return nil, util.ErrAssessmentNotFound
	}
	return a, nil
}
