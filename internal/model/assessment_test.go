package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		a    Assessment
		want AssessmentStatus
	}{
		{
			name: "unpublished is draft",
			a:    Assessment{},
			want: StatusDraft,
		},
		{
			name: "published with no dates is active",
			a:    Assessment{IsPublished: true},
			want: StatusActive,
		},
		{
			name: "published before start is published",
			a:    Assessment{IsPublished: true, StartDate: &tomorrow},
			want: StatusPublished,
		},
		{
			name: "published inside window is active",
			a:    Assessment{IsPublished: true, StartDate: &yesterday, DueDate: &tomorrow},
			want: StatusActive,
		},
		{
			name: "past due date is ended",
			a:    Assessment{IsPublished: true, DueDate: &yesterday},
			want: StatusEnded,
		},
		{
			name: "archived wins over everything",
			a:    Assessment{IsPublished: true, Archived: true, DueDate: &yesterday},
			want: StatusArchived,
		},
		{
			name: "archived draft stays archived",
			a:    Assessment{Archived: true},
			want: StatusArchived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.EffectiveStatus(now))
		})
	}
}

func TestEffectiveStatusDueDateBoundary(t *testing.T) {
	due := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	a := Assessment{IsPublished: true, DueDate: &due}

	// Exactly at the due date the assessment is still active.
	assert.Equal(t, StatusActive, a.EffectiveStatus(due))
	assert.Equal(t, StatusEnded, a.EffectiveStatus(due.Add(time.Second)))
}
