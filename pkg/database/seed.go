package database

import (
	"strings"

	"smartdalim_backend/internal/model"
)

// SubjectPicker hands out each seed subject exactly once. It replaces what
// used to be a package-level "used subjects" set; each caller owns its own
// exhaustion state, so parallel test fixtures cannot bleed into each other.
type SubjectPicker struct {
	remaining []model.Subject
}

func NewSubjectPicker(pool []model.Subject) *SubjectPicker {
	cp := make([]model.Subject, len(pool))
	copy(cp, pool)
	return &SubjectPicker{remaining: cp}
}

// Next returns the next unused subject. ok is false once the pool is drained.
func (p *SubjectPicker) Next() (model.Subject, bool) {
	if len(p.remaining) == 0 {
		return model.Subject{}, false
	}
	s := p.remaining[0]
	p.remaining = p.remaining[1:]
	return s, true
}

func (p *SubjectPicker) Remaining() int {
	return len(p.remaining)
}

func DefaultSubjects() []model.Subject {
	names := []string{
		"Mathematics",
		"Arabic",
		"English",
		"Science",
		"Quran Studies",
		"History",
		"Computer Science",
	}

	subjects := make([]model.Subject, len(names))
	for i, n := range names {
		subjects[i] = model.Subject{
			Name:    n,
			Slug:    strings.ToLower(strings.ReplaceAll(n, " ", "-")),
			Enabled: true,
		}
	}
	return subjects
}
