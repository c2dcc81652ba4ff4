package model

import "time"

type AssessmentType string

const (
	AssessmentQuiz         AssessmentType = "quiz"
	AssessmentTest         AssessmentType = "test"
	AssessmentExam         AssessmentType = "exam"
	AssessmentAssignment   AssessmentType = "assignment"
	AssessmentProject      AssessmentType = "project"
	AssessmentEssay        AssessmentType = "essay"
	AssessmentPresentation AssessmentType = "presentation"
	AssessmentOther        AssessmentType = "other"
)

type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "draft"
	StatusPublished AssessmentStatus = "published"
	StatusActive    AssessmentStatus = "active"
	StatusEnded     AssessmentStatus = "ended"
	StatusArchived  AssessmentStatus = "archived"
)

// AssessmentSettings is embedded into the assessments table.
type AssessmentSettings struct {
	ShuffleQuestions   bool `gorm:"default:false" json:"shuffleQuestions"`
	ShowCorrectAnswers bool `gorm:"default:false" json:"showCorrectAnswers"`
	AllowRetakes       bool `gorm:"default:false" json:"allowRetakes"`
	MaxRetakes         int  `gorm:"default:1" json:"maxRetakes"`
}

// Assessment stores only ground-truth lifecycle fields (is_published,
// archived, start/due dates). The display status is always derived via
// EffectiveStatus so a stored status can never go stale.
// swagger:model Assessment
type Assessment struct {
	BaseModel
	TeacherProfileID uint               `gorm:"index;type:bigint unsigned" json:"teacherProfileId"`
	CourseID         *uint              `gorm:"index;type:bigint unsigned" json:"courseId,omitempty"`
	SubjectID        *uint              `gorm:"index;type:bigint unsigned" json:"subjectId,omitempty"`
	Title            string             `gorm:"size:255;not null" json:"title"`
	Description      string             `gorm:"type:text" json:"description"`
	Type             AssessmentType     `gorm:"size:20;default:'quiz'" json:"type"`
	TotalPoints      int                `gorm:"not null" json:"totalPoints"`
	PassingPoints    *int               `json:"passingPoints,omitempty"`
	TimeLimit        int                `gorm:"default:0" json:"timeLimit"` // Minutes, 0 = no limit
	StartDate        *time.Time         `json:"startDate,omitempty"`
	DueDate          *time.Time         `json:"dueDate,omitempty"`
	IsPublished      bool               `gorm:"default:false" json:"isPublished"`
	PublishedAt      *time.Time         `json:"publishedAt,omitempty"`
	Archived         bool               `gorm:"default:false" json:"archived"`
	Settings         AssessmentSettings `gorm:"embedded;embeddedPrefix:setting_" json:"settings"`

	Questions   []Question   `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
	Submissions []Submission `gorm:"foreignKey:AssessmentID" json:"submissions,omitempty"`
	Materials   []Material   `gorm:"many2many:assessment_materials" json:"materials,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// EffectiveStatus derives the display status from the ground-truth fields.
// Archived is terminal and wins over everything else. A published assessment
// with no start date is immediately active.
func (a *Assessment) EffectiveStatus(now time.Time) AssessmentStatus {
	switch {
	case a.Archived:
		return StatusArchived
	case !a.IsPublished:
		return StatusDraft
	case a.DueDate != nil && a.DueDate.Before(now):
		return StatusEnded
	case a.StartDate != nil && a.StartDate.After(now):
		return StatusPublished
	default:
		return StatusActive
	}
}
