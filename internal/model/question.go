package model

import "gorm.io/datatypes"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionEssay          QuestionType = "essay"
	QuestionMatching       QuestionType = "matching"
	QuestionFillBlank      QuestionType = "fill_blank"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID  uint                         `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Text          string                       `gorm:"type:text;not null" json:"text"`
	Type          QuestionType                 `gorm:"size:20;not null" json:"type"`
	Options       datatypes.JSONSlice[string]  `json:"options,omitempty"` // multiple_choice only
	CorrectAnswer string                       `gorm:"type:text" json:"correctAnswer"`
	Points        int                          `gorm:"not null" json:"points"`
	Difficulty    Difficulty                   `gorm:"size:10" json:"difficulty,omitempty"`
	Order         int                          `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// IsAutoGradable reports whether correctness can be decided by exact value
// comparison. All other types wait for a teacher's manual score.
func (q *Question) IsAutoGradable() bool {
	return q.Type == QuestionMultipleChoice || q.Type == QuestionTrueFalse
}
