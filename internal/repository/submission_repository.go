package repository

import (
	"time"

	"smartdalim_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SubmissionRepository) Update(s *model.Submission) error {
	return r.DB.Save(s).Error
}

func (r *SubmissionRepository) ListByAssessment(assessmentID uint) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Where("assessment_id = ?", assessmentID).Order("created_at asc").Find(&ss).Error
	return ss, err
}

func (r *SubmissionRepository) ListByParticipant(ref model.ParticipantRef) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Where("participant_type = ? AND participant_id = ?", ref.Type, ref.ID).
		Order("created_at desc").Find(&ss).Error
	return ss, err
}

// CountForParticipant counts prior attempts at the assessment, feeding the
// retake policy.
func (r *SubmissionRepository) CountForParticipant(assessmentID uint, ref model.ParticipantRef) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("assessment_id = ? AND participant_type = ? AND participant_id = ?",
			assessmentID, ref.Type, ref.ID).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) FindLatestForParticipant(assessmentID uint, ref model.ParticipantRef) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Where("assessment_id = ? AND participant_type = ? AND participant_id = ?",
		assessmentID, ref.Type, ref.ID).
		Order("attempt desc").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// MarkGraded applies the grade only if nobody else graded first: the WHERE
// clause on graded_at makes the write an optimistic check. Returns the number
// of rows updated (0 means a concurrent grader won the race).
func (r *SubmissionRepository) MarkGraded(id uint, score int, manual map[uint]int, gradedBy uint, gradedAt time.Time) (int64, error) {
	sub := model.Submission{}
	sub.ManualScores = model.NewManualScores(manual)
	res := r.DB.Model(&model.Submission{}).
		Where("id = ? AND graded_at IS NULL", id).
		Updates(map[string]interface{}{
			"status":        model.SubmissionGraded,
			"score":         score,
			"manual_scores": sub.ManualScores,
			"graded_at":     gradedAt,
			"graded_by_id":  gradedBy,
		})
	return res.RowsAffected, res.Error
}
