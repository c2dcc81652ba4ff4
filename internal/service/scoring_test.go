package service

import (
	"testing"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func mcQuestion(id uint, answer string, points int, options ...string) model.Question {
	q := model.Question{
		Type:          model.QuestionMultipleChoice,
		Options:       datatypes.JSONSlice[string](options),
		CorrectAnswer: answer,
		Points:        points,
	}
	q.ID = id
	return q
}

func essayQuestion(id uint, points int) model.Question {
	q := model.Question{Type: model.QuestionEssay, Points: points}
	q.ID = id
	return q
}

func TestGradeAutomatic(t *testing.T) {
	questions := []model.Question{
		mcQuestion(1, "A", 50, "A", "B"),
		mcQuestion(2, "B", 50, "A", "B"),
	}

	tests := []struct {
		name    string
		answers map[uint]string
		want    int
	}{
		{"all correct", map[uint]string{1: "A", 2: "B"}, 100},
		{"one correct", map[uint]string{1: "C", 2: "B"}, 50},
		{"unanswered scores zero without penalty", map[uint]string{2: "B"}, 50},
		{"nothing answered", nil, 0},
		{"case sensitive comparison", map[uint]string{1: "a", 2: "B"}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GradeAutomatic(tt.answers, questions))
		})
	}
}

func TestGradeAutomaticDeterministic(t *testing.T) {
	questions := []model.Question{
		mcQuestion(1, "A", 30, "A", "B"),
		mcQuestion(2, "true", 20),
		essayQuestion(3, 50),
	}
	questions[1].Type = model.QuestionTrueFalse
	answers := map[uint]string{1: "A", 2: "true", 3: "long essay text"}

	first := GradeAutomatic(answers, questions)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, GradeAutomatic(answers, questions))
	}
	// The essay contributes nothing to the automatic pass.
	assert.Equal(t, 50, first)
}

func TestValidateManualScores(t *testing.T) {
	questions := []model.Question{
		mcQuestion(1, "A", 40, "A", "B"),
		essayQuestion(2, 60),
	}

	tests := []struct {
		name    string
		manual  map[uint]int
		wantErr bool
	}{
		{"valid", map[uint]int{2: 45}, false},
		{"full marks", map[uint]int{2: 60}, false},
		{"zero allowed", map[uint]int{2: 0}, false},
		{"unknown question", map[uint]int{2: 45, 99: 10}, true},
		{"auto question scored manually", map[uint]int{1: 40, 2: 45}, true},
		{"over max points", map[uint]int{2: 61}, true},
		{"negative", map[uint]int{2: -1}, true},
		{"missing manual question", map[uint]int{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManualScores(tt.manual, questions)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, util.KindValidation, util.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeManualScores(t *testing.T) {
	assert.Equal(t, 85, MergeManualScores(40, map[uint]int{2: 45}))
	assert.Equal(t, 40, MergeManualScores(40, nil))
}

func TestHasManualQuestions(t *testing.T) {
	assert.False(t, HasManualQuestions([]model.Question{mcQuestion(1, "A", 10, "A", "B")}))
	assert.True(t, HasManualQuestions([]model.Question{mcQuestion(1, "A", 10, "A", "B"), essayQuestion(2, 10)}))
	assert.False(t, HasManualQuestions(nil))
}

func TestQuestionPointsSum(t *testing.T) {
	assert.Equal(t, 0, QuestionPointsSum(nil))
	assert.Equal(t, 100, QuestionPointsSum([]model.Question{
		mcQuestion(1, "A", 40, "A", "B"),
		essayQuestion(2, 60),
	}))
}
