package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (Subject) TableName() string {
	return "subjects"
}

type CourseStatus string

const (
	CourseDraft    CourseStatus = "draft"
	CourseOpen     CourseStatus = "open"
	CourseClosed   CourseStatus = "closed"
)

// swagger:model Course
type Course struct {
	BaseModel
	TeacherProfileID uint         `gorm:"index;type:bigint unsigned" json:"teacherProfileId"`
	SubjectID        uint         `gorm:"index;type:bigint unsigned" json:"subjectId"`
	Subject          *Subject     `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Name             string       `gorm:"size:255;not null" json:"name"`
	Description      string       `gorm:"type:text" json:"description"`
	Status           CourseStatus `gorm:"size:20;default:'draft'" json:"status"`
}

func (Course) TableName() string {
	return "courses"
}
