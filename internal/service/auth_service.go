package service

import (
	"errors"
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/repository"
	"smartdalim_backend/internal/util"
	"smartdalim_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users     *repository.UserRepository
	JWTSecret string
	Expire    time.Duration
}

func NewAuthService(users *repository.UserRepository, jwtSecret string, expire time.Duration) *AuthService {
	return &AuthService{Users: users, JWTSecret: jwtSecret, Expire: expire}
}

type RegisterRequest struct {
	Name     string         `json:"name" validate:"required,min=2,max=100"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8,max=72"`
	Role     model.UserRole `json:"role" validate:"required,oneof=teacher parent client"`

	// Role-specific profile fields, optional at registration time.
	Headline     string `json:"headline,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates the user plus the profile row matching their role.
func (s *AuthService) Register(req RegisterRequest) (*AuthResult, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.Users.FindByEmail(req.Email); err == nil {
		return nil, util.ConflictErr("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	switch req.Role {
	case model.Teacher:
		err = s.Users.CreateTeacherProfile(&model.TeacherProfile{UserID: user.ID, Headline: req.Headline})
	case model.Parent:
		err = s.Users.CreateParentProfile(&model.ParentProfile{UserID: user.ID, Phone: req.Phone})
	case model.ClientUser:
		err = s.Users.CreateClient(&model.Client{UserID: user.ID, Organization: req.Organization})
	}
	if err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", zap.Uint("userId", user.ID), zap.String("role", string(user.Role)))
	return s.issue(user)
}

// Login checks credentials and hands back a signed token.
func (s *AuthService) Login(req LoginRequest) (*AuthResult, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	user, err := s.Users.FindByEmail(req.Email)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, util.ErrInvalidCredentials
	}
	if err := s.Users.UpdateLastSeen(user.ID); err != nil {
		logger.Log.Warn("failed to update last seen", zap.Uint("userId", user.ID), zap.Error(err))
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.JWTSecret, s.Expire)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// TeacherProfileID resolves the calling teacher's profile id from their user
// id. Handlers use it to scope ownership checks.
func (s *AuthService) TeacherProfileID(userID uint) (uint, error) {
	p, err := s.Users.FindTeacherProfileByUserID(userID)
	if err != nil {
		return 0, util.NotFoundErr("teacher profile not found")
	}
	return p.ID, nil
}

type AddChildRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	GradeLevel string `json:"gradeLevel" validate:"max=50"`
}

// AddChild registers a student under the calling parent's account.
func (s *AuthService) AddChild(parentUserID uint, req AddChildRequest) (*model.Child, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	profile, err := s.Users.FindParentProfileByUserID(parentUserID)
	if err != nil {
		return nil, util.NotFoundErr("parent profile not found")
	}
	child := &model.Child{
		ParentProfileID: profile.ID,
		Name:            req.Name,
		GradeLevel:      req.GradeLevel,
	}
	if err := s.Users.CreateChild(child); err != nil {
		return nil, err
	}
	return child, nil
}
