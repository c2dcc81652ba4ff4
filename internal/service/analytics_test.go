package service

import (
	"testing"
	"time"

	"smartdalim_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func finishedSubmission(score int, end time.Time) model.Submission {
	start := end.Add(-30 * time.Minute)
	return model.Submission{
		Status:    model.SubmissionGraded,
		Score:     &score,
		StartTime: &start,
		EndTime:   &end,
	}
}

func TestScoreDistribution(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	subs := []model.Submission{
		finishedSubmission(10, end),
		finishedSubmission(30, end),
		finishedSubmission(55, end),
		finishedSubmission(72, end),
		finishedSubmission(95, end),
	}

	buckets := ScoreDistribution(subs, 100)
	assert.Len(t, buckets, 5)
	for i, b := range buckets {
		assert.Equal(t, 1, b.Count, buckets[i].Label)
	}
	assert.Equal(t, "0-20", buckets[0].Label)
	assert.Equal(t, "81-100", buckets[4].Label)
}

func TestScoreDistributionBoundaries(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// 20% falls in the first bucket, 21% in the second.
	subs := []model.Submission{
		finishedSubmission(20, end),
		finishedSubmission(21, end),
	}

	buckets := ScoreDistribution(subs, 100)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 1, buckets[1].Count)
}

func TestScoreDistributionFractionalPercentages(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// With 40 total points the percentages are not whole numbers. The upper
	// edge is inclusive: 8/40 = 20% stays in "0-20", 9/40 = 22.5% and
	// 16/40 = 40% both land in "21-40".
	subs := []model.Submission{
		finishedSubmission(8, end),
		finishedSubmission(9, end),
		finishedSubmission(16, end),
	}

	buckets := ScoreDistribution(subs, 40)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 2, buckets[1].Count)
	assert.Equal(t, 0, buckets[2].Count)
}

func TestScoreDistributionExcludesUnfinished(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	score := 50
	subs := []model.Submission{
		finishedSubmission(50, end),
		{Status: model.SubmissionInProgress, Score: &score},
		{Status: model.SubmissionCompleted}, // finished but no score yet
	}

	buckets := ScoreDistribution(subs, 100)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 1, total)
}

func TestScoreDistributionEmpty(t *testing.T) {
	buckets := ScoreDistribution(nil, 100)
	assert.Len(t, buckets, 5)
	for _, b := range buckets {
		assert.Equal(t, 0, b.Count)
	}
}

func TestPassingRate(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	subs := []model.Submission{
		finishedSubmission(50, end),
		finishedSubmission(60, end),
		finishedSubmission(70, end),
		finishedSubmission(90, end),
	}

	passing := 60
	rate, ok := PassingRate(subs, &passing)
	assert.True(t, ok)
	assert.InDelta(t, 75.0, rate, 0.001)
}

func TestPassingRateNoThreshold(t *testing.T) {
	_, ok := PassingRate(nil, nil)
	assert.False(t, ok)
}

func TestPassingRateNoFinished(t *testing.T) {
	passing := 60
	rate, ok := PassingRate([]model.Submission{{Status: model.SubmissionInProgress}}, &passing)
	assert.True(t, ok)
	assert.Zero(t, rate)
}

func TestParticipantRanking(t *testing.T) {
	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	a := finishedSubmission(90, late)
	a.ParticipantType = model.ParticipantChild
	a.ParticipantID = 1
	b := finishedSubmission(90, early)
	b.ParticipantType = model.ParticipantChild
	b.ParticipantID = 2
	c := finishedSubmission(95, late)
	c.ParticipantType = model.ParticipantClient
	c.ParticipantID = 3
	unfinished := model.Submission{Status: model.SubmissionInProgress}

	entries := ParticipantRanking([]model.Submission{a, b, c, unfinished}, 100)
	assert.Len(t, entries, 3)
	assert.Equal(t, uint(3), entries[0].Participant.ID)
	// Equal percentage: the earlier finish ranks higher.
	assert.Equal(t, uint(2), entries[1].Participant.ID)
	assert.Equal(t, uint(1), entries[2].Participant.ID)
}

func TestAverageCompletionMinutes(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	subs := []model.Submission{
		finishedSubmission(50, end), // 30 minutes each
		finishedSubmission(80, end),
		{Status: model.SubmissionInProgress}, // no timestamps, excluded
	}

	assert.InDelta(t, 30.0, AverageCompletionMinutes(subs), 0.001)
	assert.Zero(t, AverageCompletionMinutes(nil))
}

func TestQuestionPerformance(t *testing.T) {
	questions := []model.Question{
		mcQuestion(1, "A", 50, "A", "B"),
		essayQuestion(2, 50),
	}

	s1 := model.Submission{Answers: model.NewAnswers(map[uint]string{1: "A", 2: "text"})}
	s2 := model.Submission{Answers: model.NewAnswers(map[uint]string{1: "B"})}

	rows := QuestionPerformance(questions, []model.Submission{s1, s2})
	assert.Len(t, rows, 2)

	assert.True(t, rows[0].AutoGradable)
	assert.Equal(t, 2, rows[0].Attempted)
	assert.Equal(t, 1, rows[0].Correct)
	assert.InDelta(t, 50.0, rows[0].Percentage, 0.001)

	// Manually graded questions report attempts but no success rate.
	assert.False(t, rows[1].AutoGradable)
	assert.Equal(t, 1, rows[1].Attempted)
	assert.Zero(t, rows[1].Correct)
	assert.Zero(t, rows[1].Percentage)
}

func TestQuestionPerformanceNoAttempts(t *testing.T) {
	rows := QuestionPerformance([]model.Question{mcQuestion(1, "A", 10, "A", "B")}, nil)
	assert.Len(t, rows, 1)
	assert.Zero(t, rows[0].Attempted)
	assert.Zero(t, rows[0].Percentage)
}
