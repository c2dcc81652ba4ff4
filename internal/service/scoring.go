package service

import (
	"fmt"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/util"
)

// Scoring engine. Everything here is a pure function of (answers, questions):
// no repository access, no clock, same inputs always produce the same score.

// GradeAutomatic sums points over auto-gradable questions whose recorded
// answer exactly matches the correct answer. Unanswered questions score zero,
// no penalty. Manually graded question types contribute nothing here.
func GradeAutomatic(answers map[uint]string, questions []model.Question) int {
	score := 0
	for i := range questions {
		q := &questions[i]
		if !q.IsAutoGradable() {
			continue
		}
		ans, ok := answers[q.ID]
		if !ok {
			continue
		}
		if answerMatches(q, ans) {
			score += q.Points
		}
	}
	return score
}

// answerMatches compares by exact equality: case-sensitive for option text,
// value equality for booleans.
func answerMatches(q *model.Question, answer string) bool {
	return answer == q.CorrectAnswer
}

// ValidateManualScores checks a teacher's per-question scores: every key must
// be a manually graded question of this assessment, every manually graded
// question must receive a score, and each score stays within [0, points].
func ValidateManualScores(manual map[uint]int, questions []model.Question) error {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	for id, score := range manual {
		q, ok := byID[id]
		if !ok {
			return util.ValidationErr(fmt.Sprintf("manual score references unknown question %d", id))
		}
		if q.IsAutoGradable() {
			return util.ValidationErr(fmt.Sprintf("question %d is auto-gradable and cannot be scored manually", id))
		}
		if score < 0 || score > q.Points {
			return util.ValidationErr(fmt.Sprintf("score for question %d must be between 0 and %d", id, q.Points))
		}
	}

	for i := range questions {
		q := &questions[i]
		if q.IsAutoGradable() {
			continue
		}
		if _, ok := manual[q.ID]; !ok {
			return util.ValidationErr(fmt.Sprintf("missing manual score for question %d", q.ID))
		}
	}
	return nil
}

// MergeManualScores produces the final total: the auto-graded sum plus the
// teacher's manual scores.
func MergeManualScores(autoScore int, manual map[uint]int) int {
	total := autoScore
	for _, s := range manual {
		total += s
	}
	return total
}

// HasManualQuestions reports whether any question needs a teacher to grade it.
func HasManualQuestions(questions []model.Question) bool {
	for i := range questions {
		if !questions[i].IsAutoGradable() {
			return true
		}
	}
	return false
}

// QuestionPointsSum adds up the declared points. When it differs from the
// assessment's total_points the caller should flag the mismatch rather than
// clip a legitimate score.
func QuestionPointsSum(questions []model.Question) int {
	sum := 0
	for i := range questions {
		sum += questions[i].Points
	}
	return sum
}
