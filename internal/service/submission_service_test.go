package service

import (
	"testing"
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestRetakeAllowed(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := &model.Submission{Status: model.SubmissionGraded, EndTime: &end, Attempt: 1}
	open := &model.Submission{Status: model.SubmissionInProgress, Attempt: 1}

	tests := []struct {
		name     string
		settings model.AssessmentSettings
		prior    int
		latest   *model.Submission
		wantErr  error
	}{
		{
			name:     "first attempt always allowed",
			settings: model.AssessmentSettings{},
			prior:    0,
		},
		{
			name:     "retakes disabled",
			settings: model.AssessmentSettings{AllowRetakes: false},
			prior:    1,
			latest:   finished,
			wantErr:  util.ErrRetakeNotAllowed,
		},
		{
			name:     "within retake limit",
			settings: model.AssessmentSettings{AllowRetakes: true, MaxRetakes: 3},
			prior:    2,
			latest:   finished,
		},
		{
			name:     "limit reached",
			settings: model.AssessmentSettings{AllowRetakes: true, MaxRetakes: 2},
			prior:    2,
			latest:   finished,
			wantErr:  util.ConflictErr("retake limit of 2 reached"),
		},
		{
			name:     "previous attempt still open",
			settings: model.AssessmentSettings{AllowRetakes: true, MaxRetakes: 3},
			prior:    1,
			latest:   open,
			wantErr:  util.ConflictErr("previous attempt is still open"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := retakeAllowed(tt.settings, tt.prior, tt.latest)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Equal(t, util.KindConflict, util.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func freshSubmission() *model.Submission {
	return &model.Submission{
		AssessmentID: 1,
		Status:       model.SubmissionNotStarted,
		Answers:      model.NewAnswers(map[uint]string{}),
	}
}

func TestApplyAnswer(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(5 * time.Minute)

	t.Run("first answer starts the attempt", func(t *testing.T) {
		sub := freshSubmission()

		err := applyAnswer(sub, 1, "4", now)
		assert.NoError(t, err)
		assert.Equal(t, model.SubmissionInProgress, sub.Status)
		if assert.NotNil(t, sub.StartTime) {
			assert.Equal(t, now, *sub.StartTime)
		}
		assert.Equal(t, map[uint]string{1: "4"}, sub.Answers.Data())
	})

	t.Run("second answer keeps the start time", func(t *testing.T) {
		sub := freshSubmission()
		assert.NoError(t, applyAnswer(sub, 1, "4", now))
		assert.NoError(t, applyAnswer(sub, 2, "true", later))

		assert.Equal(t, now, *sub.StartTime)
		assert.Equal(t, map[uint]string{1: "4", 2: "true"}, sub.Answers.Data())
	})

	t.Run("rewriting an answer overwrites it", func(t *testing.T) {
		sub := freshSubmission()
		assert.NoError(t, applyAnswer(sub, 1, "3", now))
		assert.NoError(t, applyAnswer(sub, 1, "4", later))

		assert.Equal(t, map[uint]string{1: "4"}, sub.Answers.Data())
	})

	t.Run("completed submission rejects writes", func(t *testing.T) {
		sub := freshSubmission()
		sub.Status = model.SubmissionCompleted

		err := applyAnswer(sub, 1, "4", now)
		assert.EqualError(t, err, "cannot answer a submitted assessment")
		assert.Equal(t, util.KindInvalidState, util.KindOf(err))
	})

	t.Run("graded submission rejects writes", func(t *testing.T) {
		sub := freshSubmission()
		sub.Status = model.SubmissionGraded

		err := applyAnswer(sub, 1, "4", now)
		assert.Equal(t, util.KindInvalidState, util.KindOf(err))
	})
}

func TestFinalizeSubmission(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)

	objective := []model.Question{
		{BaseModel: model.BaseModel{ID: 1}, AssessmentID: 1, Type: model.QuestionTrueFalse, CorrectAnswer: "true", Points: 60},
		{BaseModel: model.BaseModel{ID: 2}, AssessmentID: 1, Type: model.QuestionMultipleChoice, CorrectAnswer: "4", Points: 40},
	}
	withEssay := append(append([]model.Question{}, objective...),
		model.Question{BaseModel: model.BaseModel{ID: 3}, AssessmentID: 1, Type: model.QuestionEssay, Points: 20})

	started := func(answers map[uint]string) *model.Submission {
		sub := freshSubmission()
		sub.Status = model.SubmissionInProgress
		sub.StartTime = &start
		sub.Answers = model.NewAnswers(answers)
		return sub
	}

	t.Run("objective only finalizes as graded", func(t *testing.T) {
		sub := started(map[uint]string{1: "true", 2: "4"})

		err := finalizeSubmission(sub, objective, true, end)
		assert.NoError(t, err)
		assert.Equal(t, model.SubmissionGraded, sub.Status)
		if assert.NotNil(t, sub.Score) {
			assert.Equal(t, 100, *sub.Score)
		}
		if assert.NotNil(t, sub.EndTime) {
			assert.Equal(t, end, *sub.EndTime)
		}
		if assert.NotNil(t, sub.GradedAt) {
			assert.Equal(t, end, *sub.GradedAt)
		}
	})

	t.Run("auto finalize disabled stops at completed", func(t *testing.T) {
		sub := started(map[uint]string{1: "true", 2: "4"})

		assert.NoError(t, finalizeSubmission(sub, objective, false, end))
		assert.Equal(t, model.SubmissionCompleted, sub.Status)
		assert.Nil(t, sub.GradedAt)
	})

	t.Run("manual questions wait for the teacher", func(t *testing.T) {
		sub := started(map[uint]string{1: "true", 2: "4", 3: "my essay"})

		assert.NoError(t, finalizeSubmission(sub, withEssay, true, end))
		assert.Equal(t, model.SubmissionCompleted, sub.Status)
		assert.Nil(t, sub.GradedAt)
		if assert.NotNil(t, sub.Score) {
			assert.Equal(t, 100, *sub.Score)
		}
	})

	t.Run("wrong and missing answers score partial", func(t *testing.T) {
		sub := started(map[uint]string{1: "false"})

		assert.NoError(t, finalizeSubmission(sub, objective, true, end))
		if assert.NotNil(t, sub.Score) {
			assert.Equal(t, 0, *sub.Score)
		}
	})

	t.Run("submit before starting is rejected", func(t *testing.T) {
		sub := freshSubmission()

		err := finalizeSubmission(sub, objective, true, end)
		assert.EqualError(t, err, "cannot submit before starting")
		assert.Equal(t, util.KindInvalidState, util.KindOf(err))
	})

	t.Run("double submit is rejected", func(t *testing.T) {
		sub := started(map[uint]string{1: "true", 2: "4"})
		assert.NoError(t, finalizeSubmission(sub, objective, true, end))

		err := finalizeSubmission(sub, objective, true, end.Add(time.Minute))
		assert.EqualError(t, err, "submission was already submitted")
		assert.Equal(t, util.KindInvalidState, util.KindOf(err))
	})
}

// Walks a full attempt over a single objective question: answer, submit,
// land in graded with a perfect score, then feed the result through the
// passing-rate aggregator.
func TestSubmissionLifecycleEndToEnd(t *testing.T) {
	questions := []model.Question{
		{BaseModel: model.BaseModel{ID: 1}, AssessmentID: 1, Type: model.QuestionTrueFalse, CorrectAnswer: "true", Points: 100},
	}
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)

	sub := freshSubmission()
	assert.Equal(t, model.SubmissionNotStarted, sub.Status)

	assert.NoError(t, applyAnswer(sub, 1, "true", start))
	assert.Equal(t, model.SubmissionInProgress, sub.Status)

	assert.NoError(t, finalizeSubmission(sub, questions, true, end))
	assert.Equal(t, model.SubmissionGraded, sub.Status)
	if assert.NotNil(t, sub.Score) {
		assert.Equal(t, 100, *sub.Score)
	}
	assert.NotNil(t, sub.GradedAt)

	// Answers are frozen once the attempt is final.
	assert.Equal(t, util.KindInvalidState, util.KindOf(applyAnswer(sub, 1, "false", end)))

	passing := 70
	rate, ok := PassingRate([]model.Submission{*sub}, &passing)
	assert.True(t, ok)
	assert.Equal(t, 100.0, rate)
}
