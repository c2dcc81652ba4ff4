package repository

import (
	"time"

	"smartdalim_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var u model.User
	err := r.DB.First(&u, id).Error
	return &u, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.DB.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	now := time.Now()
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("last_seen_at", &now).Error
}

func (r *UserRepository) CreateTeacherProfile(p *model.TeacherProfile) error {
	return r.DB.Create(p).Error
}

func (r *UserRepository) CreateParentProfile(p *model.ParentProfile) error {
	return r.DB.Create(p).Error
}

func (r *UserRepository) CreateClient(c *model.Client) error {
	return r.DB.Create(c).Error
}

func (r *UserRepository) FindTeacherProfileByUserID(userID uint) (*model.TeacherProfile, error) {
	var p model.TeacherProfile
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *UserRepository) FindParentProfileByUserID(userID uint) (*model.ParentProfile, error) {
	var p model.ParentProfile
	err := r.DB.Preload("Children").Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *UserRepository) FindClientByUserID(userID uint) (*model.Client, error) {
	var c model.Client
	err := r.DB.Where("user_id = ?", userID).First(&c).Error
	return &c, err
}

func (r *UserRepository) FindChildByID(id uint) (*model.Child, error) {
	var c model.Child
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *UserRepository) FindClientByID(id uint) (*model.Client, error) {
	var c model.Client
	err := r.DB.Preload("User").First(&c, id).Error
	return &c, err
}

func (r *UserRepository) CreateChild(c *model.Child) error {
	return r.DB.Create(c).Error
}
