package repository

import (
	"smartdalim_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) FindWithQuestions(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc")
	}).Preload("Materials").First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) ListByTeacher(teacherProfileID uint, includeArchived bool, page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.Model(&model.Assessment{}).Where("teacher_profile_id = ?", teacherProfileID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

// ListAllByTeacher returns the teacher's full assessment set without
// pagination, for callers that filter on derived state before slicing pages.
func (r *AssessmentRepository) ListAllByTeacher(teacherProfileID uint, includeArchived bool) ([]model.Assessment, error) {
	var as []model.Assessment
	query := r.DB.Where("teacher_profile_id = ?", teacherProfileID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	err := query.Order("created_at desc").Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

// DeleteCascade removes the assessment together with its questions and
// submissions in one transaction, so a half-deleted aggregate can never be
// observed.
func (r *AssessmentRepository) DeleteCascade(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_id = ?", id).Delete(&model.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM assessment_materials WHERE assessment_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, id).Error
	})
}

// Duplicate clones the assessment, its questions and its material links into
// a fresh draft. Submissions are not copied.
func (r *AssessmentRepository) Duplicate(src *model.Assessment, questions []model.Question) (*model.Assessment, error) {
	dup := *src
	dup.BaseModel = model.BaseModel{}
	dup.Title = src.Title + " (copy)"
	dup.IsPublished = false
	dup.PublishedAt = nil
	dup.Archived = false
	dup.Questions = nil
	dup.Submissions = nil
	dup.Materials = nil

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dup).Error; err != nil {
			return err
		}
		for i := range questions {
			q := questions[i]
			q.BaseModel = model.BaseModel{}
			q.AssessmentID = dup.ID
			if err := tx.Create(&q).Error; err != nil {
				return err
			}
		}
		if len(src.Materials) > 0 {
			if err := tx.Model(&dup).Association("Materials").Append(src.Materials); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dup, nil
}

func (r *AssessmentRepository) AttachMaterial(a *model.Assessment, m *model.Material) error {
	return r.DB.Model(a).Association("Materials").Append(m)
}
