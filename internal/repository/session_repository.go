package repository

import (
	"time"

	"smartdalim_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(s *model.LearningSession) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.LearningSession, error) {
	var s model.LearningSession
	err := r.DB.Preload("Child").Preload("Subject").First(&s, id).Error
	return &s, err
}

func (r *SessionRepository) Update(s *model.LearningSession) error {
	return r.DB.Save(s).Error
}

// ListByTeacherInRange returns sessions whose start falls inside [from, to).
func (r *SessionRepository) ListByTeacherInRange(teacherProfileID uint, from, to time.Time, page, limit int) ([]model.LearningSession, int64, error) {
	var ss []model.LearningSession
	var total int64
	query := r.DB.Model(&model.LearningSession{}).
		Where("teacher_profile_id = ?", teacherProfileID).
		Where("starts_at >= ? AND starts_at < ?", from, to)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Child").Preload("Subject").
		Order("starts_at asc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *SessionRepository) ListByChildInRange(childID uint, from, to time.Time) ([]model.LearningSession, error) {
	var ss []model.LearningSession
	err := r.DB.Where("child_id = ?", childID).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Preload("Subject").
		Order("starts_at asc").Find(&ss).Error
	return ss, err
}
