package model

import "time"

type SessionStatus string

const (
	SessionBooked    SessionStatus = "booked"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// LearningSession is a booked tutoring slot between a teacher and a child.
// swagger:model LearningSession
type LearningSession struct {
	BaseModel
	TeacherProfileID uint          `gorm:"index;type:bigint unsigned" json:"teacherProfileId"`
	ChildID          uint          `gorm:"index;type:bigint unsigned" json:"childId"`
	Child            *Child        `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	SubjectID        uint          `gorm:"index;type:bigint unsigned" json:"subjectId"`
	Subject          *Subject      `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	StartsAt         time.Time     `gorm:"index" json:"startsAt"`
	EndsAt           time.Time     `json:"endsAt"`
	Status           SessionStatus `gorm:"size:20;default:'booked'" json:"status"`
	Notes            string        `gorm:"type:text" json:"notes"`
}

func (LearningSession) TableName() string {
	return "learning_sessions"
}
