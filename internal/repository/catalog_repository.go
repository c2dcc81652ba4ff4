package repository

import (
	"smartdalim_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository covers subjects, courses and materials. They share one
// repo because the operations on them are plain CRUD.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListSubjects() ([]model.Subject, error) {
	var ss []model.Subject
	err := r.DB.Where("enabled = ?", true).Order("name asc").Find(&ss).Error
	return ss, err
}

func (r *CatalogRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var s model.Subject
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *CatalogRepository) CreateCourse(c *model.Course) error {
	return r.DB.Create(c).Error
}

func (r *CatalogRepository) FindCourseByID(id uint) (*model.Course, error) {
	var c model.Course
	err := r.DB.Preload("Subject").First(&c, id).Error
	return &c, err
}

func (r *CatalogRepository) ListCoursesByTeacher(teacherProfileID uint, page, limit int) ([]model.Course, int64, error) {
	var cs []model.Course
	var total int64
	query := r.DB.Model(&model.Course{}).Where("teacher_profile_id = ?", teacherProfileID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Subject").Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *CatalogRepository) UpdateCourse(c *model.Course) error {
	return r.DB.Save(c).Error
}

func (r *CatalogRepository) DeleteCourse(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CatalogRepository) CreateMaterial(m *model.Material) error {
	return r.DB.Create(m).Error
}

func (r *CatalogRepository) FindMaterialByID(id uint) (*model.Material, error) {
	var m model.Material
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *CatalogRepository) ListMaterialsByTeacher(teacherProfileID uint) ([]model.Material, error) {
	var ms []model.Material
	err := r.DB.Where("teacher_profile_id = ?", teacherProfileID).Order("created_at desc").Find(&ms).Error
	return ms, err
}
