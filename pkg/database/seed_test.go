package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectPickerDrainsOnce(t *testing.T) {
	pool := DefaultSubjects()
	picker := NewSubjectPicker(pool)

	seen := make(map[string]bool)
	for {
		s, ok := picker.Next()
		if !ok {
			break
		}
		assert.False(t, seen[s.Name], "subject handed out twice: %s", s.Name)
		seen[s.Name] = true
	}

	assert.Len(t, seen, len(pool))
	assert.Zero(t, picker.Remaining())

	// Exhausted picker keeps saying no.
	_, ok := picker.Next()
	assert.False(t, ok)
}

func TestSubjectPickerIndependentState(t *testing.T) {
	pool := DefaultSubjects()
	a := NewSubjectPicker(pool)
	b := NewSubjectPicker(pool)

	for a.Remaining() > 0 {
		a.Next()
	}
	assert.Equal(t, len(pool), b.Remaining())
}

func TestDefaultSubjectSlugs(t *testing.T) {
	for _, s := range DefaultSubjects() {
		assert.NotEmpty(t, s.Slug)
		assert.NotContains(t, s.Slug, " ")
		assert.True(t, s.Enabled)
	}
}
