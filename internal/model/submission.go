package model

import (
	"time"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	SubmissionNotStarted SubmissionStatus = "not_started"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionCompleted  SubmissionStatus = "completed"
	SubmissionGraded     SubmissionStatus = "graded"
)

type ParticipantType string

const (
	ParticipantChild  ParticipantType = "child"
	ParticipantClient ParticipantType = "client"
)

// ParticipantRef is the tagged child/client union. A submission always holds
// exactly one tag and one id, never two foreign keys that may both be null.
type ParticipantRef struct {
	Type ParticipantType `json:"type"`
	ID   uint            `json:"id"`
}

// Submission is one participant attempt at an assessment. Answers are keyed
// by question id; manual scores mirror that keying for non-auto-gradable
// questions once a teacher grades them.
// swagger:model Submission
type Submission struct {
	BaseModel
	AssessmentID    uint                               `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	ParticipantType ParticipantType                    `gorm:"size:10;not null;index:idx_participant" json:"participantType"`
	ParticipantID   uint                               `gorm:"type:bigint unsigned;not null;index:idx_participant" json:"participantId"`
	Attempt         int                                `gorm:"default:1" json:"attempt"`
	Status          SubmissionStatus                   `gorm:"size:20;default:'not_started'" json:"status"`
	StartTime       *time.Time                         `json:"startTime,omitempty"`
	EndTime         *time.Time                         `json:"endTime,omitempty"`
	Answers         datatypes.JSONType[map[uint]string] `json:"answers"`
	ManualScores    datatypes.JSONType[map[uint]int]    `json:"manualScores"`
	Score           *int                               `json:"score,omitempty"`
	GradedAt        *time.Time                         `json:"gradedAt,omitempty"`
	GradedByID      *uint                              `gorm:"type:bigint unsigned" json:"gradedById,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func NewAnswers(m map[uint]string) datatypes.JSONType[map[uint]string] {
	return datatypes.NewJSONType(m)
}

func NewManualScores(m map[uint]int) datatypes.JSONType[map[uint]int] {
	return datatypes.NewJSONType(m)
}

func (s *Submission) Participant() ParticipantRef {
	return ParticipantRef{Type: s.ParticipantType, ID: s.ParticipantID}
}

// IsLate is derived, never stored. A submission is late when the assessment
// due date has passed and the participant either never finished or finished
// after it.
func (s *Submission) IsLate(dueDate *time.Time, now time.Time) bool {
	if dueDate == nil || !dueDate.Before(now) {
		return false
	}
	return s.EndTime == nil || s.EndTime.After(*dueDate)
}

// Finished reports whether the submission counts toward analytics.
func (s *Submission) Finished() bool {
	return s.Status == SubmissionCompleted || s.Status == SubmissionGraded
}
