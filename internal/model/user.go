package model

import "time"

type UserRole string

const (
	Admin      UserRole = "admin"
	Teacher    UserRole = "teacher"
	Parent     UserRole = "parent"
	ClientUser UserRole = "client"
)

// swagger:model User
type User struct {
	BaseModel
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Role       UserRole   `gorm:"size:20;default:'parent'" json:"role"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// TeacherProfile carries the marketplace-facing fields of a tutor account.
// swagger:model TeacherProfile
type TeacherProfile struct {
	BaseModel
	UserID     uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	User       *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Headline   string `gorm:"size:255" json:"headline"`
	Bio        string `gorm:"type:text" json:"bio"`
	YearsOfExp int    `gorm:"default:0" json:"yearsOfExp"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profiles"
}

// swagger:model ParentProfile
type ParentProfile struct {
	BaseModel
	UserID   uint    `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Phone    string  `gorm:"size:30" json:"phone"`
	Children []Child `gorm:"foreignKey:ParentProfileID" json:"children,omitempty"`
}

func (ParentProfile) TableName() string {
	return "parent_profiles"
}

// Child is a student managed by a parent account.
// swagger:model Child
type Child struct {
	BaseModel
	ParentProfileID uint   `gorm:"index;type:bigint unsigned" json:"parentProfileId"`
	Name            string `gorm:"size:100;not null" json:"name"`
	GradeLevel      string `gorm:"size:50" json:"gradeLevel"`
}

func (Child) TableName() string {
	return "children"
}

// Client is an adult learner taking sessions and assessments directly,
// without a parent account in between.
// swagger:model Client
type Client struct {
	BaseModel
	UserID       uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	User         *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organization string `gorm:"size:255" json:"organization"`
}

func (Client) TableName() string {
	return "clients"
}
