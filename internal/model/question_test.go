package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAutoGradable(t *testing.T) {
	auto := []QuestionType{QuestionMultipleChoice, QuestionTrueFalse}
	manual := []QuestionType{QuestionShortAnswer, QuestionEssay, QuestionMatching, QuestionFillBlank}

	for _, qt := range auto {
		q := Question{Type: qt}
		assert.True(t, q.IsAutoGradable(), string(qt))
	}
	for _, qt := range manual {
		q := Question{Type: qt}
		assert.False(t, q.IsAutoGradable(), string(qt))
	}
}
