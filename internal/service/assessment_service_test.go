package service

import (
	"testing"
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestValidateAssessment(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	due := start.Add(7 * 24 * time.Hour)
	dueBeforeStart := start.Add(-time.Hour)

	base := func() *model.Assessment {
		return &model.Assessment{
			Title:       "Fractions quiz",
			Type:        model.AssessmentQuiz,
			TotalPoints: 100,
		}
	}

	tests := []struct {
		name    string
		mutate  func(a *model.Assessment)
		wantErr bool
	}{
		{"valid", func(a *model.Assessment) {}, false},
		{"missing title", func(a *model.Assessment) { a.Title = "" }, true},
		{"zero total", func(a *model.Assessment) { a.TotalPoints = 0 }, true},
		{"passing above total", func(a *model.Assessment) { a.PassingPoints = intPtr(101) }, true},
		{"negative passing", func(a *model.Assessment) { a.PassingPoints = intPtr(-1) }, true},
		{"passing equals total", func(a *model.Assessment) { a.PassingPoints = intPtr(100) }, false},
		{"due before start", func(a *model.Assessment) { a.StartDate = &start; a.DueDate = &dueBeforeStart }, true},
		{"valid window", func(a *model.Assessment) { a.StartDate = &start; a.DueDate = &due }, false},
		{"unknown type", func(a *model.Assessment) { a.Type = "pop_quiz" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base()
			tt.mutate(a)
			err := validateAssessment(a)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, util.KindValidation, util.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatusFilterThenPaginate(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)

	// 25 assessments: the 5 oldest are active, the remaining 20 already ended.
	as := make([]model.Assessment, 0, 25)
	for i := 0; i < 20; i++ {
		as = append(as, model.Assessment{IsPublished: true, DueDate: &past})
	}
	for i := 0; i < 5; i++ {
		a := model.Assessment{IsPublished: true}
		a.ID = uint(100 + i)
		as = append(as, a)
	}

	rows := filterByStatus(attachStatus(as, now), model.StatusActive)
	assert.Len(t, rows, 5)

	page := pageOf(rows, 1, 20)
	assert.Len(t, page, 5)
	for _, r := range page {
		assert.Equal(t, model.StatusActive, r.Status)
	}

	// Past the last page comes back empty, not out of range.
	assert.Empty(t, pageOf(rows, 2, 20))
}

func TestPageOfBounds(t *testing.T) {
	rows := make([]AssessmentListRow, 7)

	assert.Len(t, pageOf(rows, 1, 5), 5)
	assert.Len(t, pageOf(rows, 2, 5), 2)
	assert.Empty(t, pageOf(rows, 3, 5))
}

func TestValidateQuestionSpec(t *testing.T) {
	tests := []struct {
		name    string
		req     QuestionRequest
		wantErr bool
	}{
		{
			name:    "valid multiple choice",
			req:     QuestionRequest{Text: "2+2?", Type: "multiple_choice", Options: []string{"3", "4"}, CorrectAnswer: "4", Points: 10},
			wantErr: false,
		},
		{
			name:    "one option only",
			req:     QuestionRequest{Text: "2+2?", Type: "multiple_choice", Options: []string{"4"}, CorrectAnswer: "4", Points: 10},
			wantErr: true,
		},
		{
			name:    "answer not among options",
			req:     QuestionRequest{Text: "2+2?", Type: "multiple_choice", Options: []string{"3", "5"}, CorrectAnswer: "4", Points: 10},
			wantErr: true,
		},
		{
			name:    "valid true false",
			req:     QuestionRequest{Text: "sky is blue", Type: "true_false", CorrectAnswer: "true", Points: 5},
			wantErr: false,
		},
		{
			name:    "true false with bad answer",
			req:     QuestionRequest{Text: "sky is blue", Type: "true_false", CorrectAnswer: "yes", Points: 5},
			wantErr: true,
		},
		{
			name:    "essay needs no answer",
			req:     QuestionRequest{Text: "discuss", Type: "essay", Points: 20},
			wantErr: false,
		},
		{
			name:    "unknown type",
			req:     QuestionRequest{Text: "?", Type: "puzzle", Points: 5},
			wantErr: true,
		},
		{
			name:    "zero points",
			req:     QuestionRequest{Text: "discuss", Type: "essay", Points: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestionSpec(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
