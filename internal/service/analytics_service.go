package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/repository"
	"smartdalim_backend/internal/util"
	"smartdalim_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// The aggregator functions below are pure: they operate on a submission
// snapshot handed to them, never mutate it, and return zero-valued structures
// on empty input so dashboards render before anyone has submitted.

type ScoreBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type QuestionPerformanceRow struct {
	QuestionID   uint    `json:"questionId"`
	Text         string  `json:"text"`
	Type         string  `json:"type"`
	AutoGradable bool    `json:"autoGradable"`
	Attempted    int     `json:"attempted"`
	Correct      int     `json:"correct"`
	Percentage   float64 `json:"percentage"`
}

type RankingEntry struct {
	Participant model.ParticipantRef `json:"participant"`
	Name        string               `json:"name"`
	Score       int                  `json:"score"`
	Percentage  float64              `json:"percentage"`
	SubmittedAt *time.Time           `json:"submittedAt,omitempty"`
}

type AssessmentAnalytics struct {
	AssessmentID         uint                     `json:"assessmentId"`
	SubmissionCount      int                      `json:"submissionCount"`
	FinishedCount        int                      `json:"finishedCount"`
	ScoreDistribution    []ScoreBucket            `json:"scoreDistribution"`
	QuestionPerformance  []QuestionPerformanceRow `json:"questionPerformance"`
	PassingRate          *float64                 `json:"passingRate,omitempty"` // nil when no passing score is set
	Ranking              []RankingEntry           `json:"ranking"`
	AvgCompletionMinutes float64                  `json:"avgCompletionMinutes"`
	GeneratedAt          time.Time                `json:"generatedAt"`
}

// Bucket labels use the integer display convention. Boundaries are half-open
// on the upper edge: a percentage falls in "21-40" when it is above 20 and at
// most 40, so 20.5 counts toward "21-40" and 40.0 toward the same bucket.
var bucketLabels = []string{"0-20", "21-40", "41-60", "61-80", "81-100"}

// ScoreDistribution partitions finished submissions into five percentage
// buckets. Submissions without a score are excluded.
func ScoreDistribution(submissions []model.Submission, totalPoints int) []ScoreBucket {
	buckets := make([]ScoreBucket, len(bucketLabels))
	for i, l := range bucketLabels {
		buckets[i] = ScoreBucket{Label: l}
	}
	if totalPoints <= 0 {
		return buckets
	}
	for i := range submissions {
		s := &submissions[i]
		if !s.Finished() || s.Score == nil {
			continue
		}
		pct := float64(*s.Score) / float64(totalPoints) * 100
		idx := 4
		switch {
		case pct <= 20:
			idx = 0
		case pct <= 40:
			idx = 1
		case pct <= 60:
			idx = 2
		case pct <= 80:
			idx = 3
		}
		buckets[idx].Count++
	}
	return buckets
}

// QuestionPerformance reports per-question attempt and success counts.
// Correctness is only computable for auto-gradable questions; manually graded
// ones report attempts with a zero success rate and AutoGradable=false so the
// dashboard can show them as "not measured" instead of "0% correct".
func QuestionPerformance(questions []model.Question, submissions []model.Submission) []QuestionPerformanceRow {
	rows := make([]QuestionPerformanceRow, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		row := QuestionPerformanceRow{
			QuestionID:   q.ID,
			Text:         q.Text,
			Type:         string(q.Type),
			AutoGradable: q.IsAutoGradable(),
		}
		for j := range submissions {
			answers := submissions[j].Answers.Data()
			ans, ok := answers[q.ID]
			if !ok {
				continue
			}
			row.Attempted++
			if q.IsAutoGradable() && answerMatches(q, ans) {
				row.Correct++
			}
		}
		if row.Attempted > 0 && row.AutoGradable {
			row.Percentage = float64(row.Correct) / float64(row.Attempted) * 100
		}
		rows = append(rows, row)
	}
	return rows
}

// PassingRate returns the share of finished submissions at or above the
// passing score. ok is false when the assessment has no passing score.
func PassingRate(submissions []model.Submission, passingPoints *int) (float64, bool) {
	if passingPoints == nil {
		return 0, false
	}
	finished := 0
	passed := 0
	for i := range submissions {
		s := &submissions[i]
		if !s.Finished() || s.Score == nil {
			continue
		}
		finished++
		if *s.Score >= *passingPoints {
			passed++
		}
	}
	if finished == 0 {
		return 0, true
	}
	return float64(passed) / float64(finished) * 100, true
}

// ParticipantRanking sorts finished submissions by percentage descending,
// ties broken by the earlier finish.
func ParticipantRanking(submissions []model.Submission, totalPoints int) []RankingEntry {
	entries := make([]RankingEntry, 0, len(submissions))
	for i := range submissions {
		s := &submissions[i]
		if !s.Finished() || s.Score == nil {
			continue
		}
		pct := 0.0
		if totalPoints > 0 {
			pct = float64(*s.Score) / float64(totalPoints) * 100
		}
		entries = append(entries, RankingEntry{
			Participant: s.Participant(),
			Score:       *s.Score,
			Percentage:  pct,
			SubmittedAt: s.EndTime,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		ti, tj := entries[i].SubmittedAt, entries[j].SubmittedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.Before(*tj)
		}
	})
	return entries
}

// AverageCompletionMinutes averages end-start over submissions that have both
// timestamps. Unfinished submissions are excluded.
func AverageCompletionMinutes(submissions []model.Submission) float64 {
	var total time.Duration
	n := 0
	for i := range submissions {
		s := &submissions[i]
		if s.StartTime == nil || s.EndTime == nil {
			continue
		}
		total += s.EndTime.Sub(*s.StartTime)
		n++
	}
	if n == 0 {
		return 0
	}
	return total.Minutes() / float64(n)
}

type AnalyticsService struct {
	Assessments *repository.AssessmentRepository
	Questions   *repository.QuestionRepository
	Submissions *repository.SubmissionRepository
	Users       *repository.UserRepository
	Rdb         *redis.Client
	CacheTTL    time.Duration
	Now         Clock
}

func NewAnalyticsService(
	assessments *repository.AssessmentRepository,
	questions *repository.QuestionRepository,
	submissions *repository.SubmissionRepository,
	users *repository.UserRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *AnalyticsService {
	return &AnalyticsService{
		Assessments: assessments,
		Questions:   questions,
		Submissions: submissions,
		Users:       users,
		Rdb:         rdb,
		CacheTTL:    cacheTTL,
		Now:         SystemClock,
	}
}

func analyticsCacheKey(assessmentID uint) string {
	return fmt.Sprintf("analytics:assessment:%d", assessmentID)
}

// GetAssessmentAnalytics assembles the dashboard payload from a snapshot of
// the submission set. The result is cached in redis for a short TTL; the
// cache is dropped whenever a submission or grade is written.
func (s *AnalyticsService) GetAssessmentAnalytics(ctx context.Context, assessmentID uint) (*AssessmentAnalytics, error) {
	if s.Rdb != nil {
		if cached, err := s.Rdb.Get(ctx, analyticsCacheKey(assessmentID)).Bytes(); err == nil {
			var out AssessmentAnalytics
			if json.Unmarshal(cached, &out) == nil {
				return &out, nil
			}
		}
	}

	assessment, err := s.Assessments.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}
	questions, err := s.Questions.ListByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.Submissions.ListByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	out := &AssessmentAnalytics{
		AssessmentID:         assessmentID,
		SubmissionCount:      len(submissions),
		ScoreDistribution:    ScoreDistribution(submissions, assessment.TotalPoints),
		QuestionPerformance:  QuestionPerformance(questions, submissions),
		Ranking:              ParticipantRanking(submissions, assessment.TotalPoints),
		AvgCompletionMinutes: AverageCompletionMinutes(submissions),
		GeneratedAt:          s.Now(),
	}
	for i := range submissions {
		if submissions[i].Finished() {
			out.FinishedCount++
		}
	}
	if rate, ok := PassingRate(submissions, assessment.PassingPoints); ok {
		out.PassingRate = &rate
	}
	s.resolveNames(out.Ranking)

	if s.Rdb != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := s.Rdb.Set(ctx, analyticsCacheKey(assessmentID), payload, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("analytics cache write failed", zap.Error(err))
			}
		}
	}
	return out, nil
}

// InvalidateCache drops the cached dashboard after a submission write.
func (s *AnalyticsService) InvalidateCache(ctx context.Context, assessmentID uint) {
	if s.Rdb == nil {
		return
	}
	if err := s.Rdb.Del(ctx, analyticsCacheKey(assessmentID)).Err(); err != nil {
		logger.Log.Warn("analytics cache invalidation failed", zap.Error(err))
	}
}

func (s *AnalyticsService) resolveNames(entries []RankingEntry) {
	for i := range entries {
		switch entries[i].Participant.Type {
		case model.ParticipantChild:
			if c, err := s.Users.FindChildByID(entries[i].Participant.ID); err == nil {
				entries[i].Name = c.Name
			}
		case model.ParticipantClient:
			if c, err := s.Users.FindClientByID(entries[i].Participant.ID); err == nil && c.User != nil {
				entries[i].Name = c.User.Name
			} else if err == nil {
				entries[i].Name = c.Organization
			}
		}
	}
}
