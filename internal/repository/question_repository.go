package repository

import (
	"fmt"

	"smartdalim_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) ListByAssessment(assessmentID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("assessment_id = ?", assessmentID).Order("`order` asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// NextOrder returns max(order)+1 for the assessment, 1 when it has no
// questions yet.
func (r *QuestionRepository) NextOrder(assessmentID uint) (int, error) {
	var max *int
	err := r.DB.Model(&model.Question{}).
		Where("assessment_id = ?", assessmentID).
		Select("MAX(`order`)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// validateReorderIDs checks that ordered is a permutation of existing: same
// length, no duplicates, no unknown ids. A duplicate would slip past a pure
// count-plus-membership check while silently dropping another question's
// position.
func validateReorderIDs(existing, ordered []uint) error {
	if len(existing) != len(ordered) {
		return fmt.Errorf("reorder id count mismatch: have %d, got %d", len(existing), len(ordered))
	}
	existingSet := make(map[uint]bool, len(existing))
	for _, id := range existing {
		existingSet[id] = true
	}
	seen := make(map[uint]bool, len(ordered))
	for _, id := range ordered {
		if seen[id] {
			return fmt.Errorf("reorder lists question %d twice", id)
		}
		seen[id] = true
		if !existingSet[id] {
			return fmt.Errorf("reorder references unknown question %d", id)
		}
	}
	return nil
}

// Reorder reassigns order values 1..n following orderedIDs, all inside one
// transaction. The id set must exactly match the assessment's questions.
func (r *QuestionRepository) Reorder(assessmentID uint, orderedIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing []uint
		if err := tx.Model(&model.Question{}).
			Where("assessment_id = ?", assessmentID).
			Pluck("id", &existing).Error; err != nil {
			return err
		}
		if err := validateReorderIDs(existing, orderedIDs); err != nil {
			return err
		}
		for i, id := range orderedIDs {
			if err := tx.Model(&model.Question{}).
				Where("id = ?", id).
				Update("order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
