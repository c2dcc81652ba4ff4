package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsLate(t *testing.T) {
	due := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	beforeDue := due.Add(-time.Hour)
	afterDue := due.Add(time.Hour)

	tests := []struct {
		name string
		sub  Submission
		due  *time.Time
		now  time.Time
		want bool
	}{
		{
			name: "no due date is never late",
			sub:  Submission{},
			due:  nil,
			now:  afterDue,
			want: false,
		},
		{
			name: "before due date not late",
			sub:  Submission{},
			due:  &due,
			now:  beforeDue,
			want: false,
		},
		{
			name: "unfinished past due date is late",
			sub:  Submission{},
			due:  &due,
			now:  afterDue,
			want: true,
		},
		{
			name: "finished before due date not late",
			sub:  Submission{EndTime: &beforeDue},
			due:  &due,
			now:  afterDue,
			want: false,
		},
		{
			name: "finished after due date is late",
			sub:  Submission{EndTime: &afterDue},
			due:  &due,
			now:  afterDue.Add(time.Hour),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.IsLate(tt.due, tt.now))
		})
	}
}

func TestFinished(t *testing.T) {
	assert.False(t, (&Submission{Status: SubmissionNotStarted}).Finished())
	assert.False(t, (&Submission{Status: SubmissionInProgress}).Finished())
	assert.True(t, (&Submission{Status: SubmissionCompleted}).Finished())
	assert.True(t, (&Submission{Status: SubmissionGraded}).Finished())
}
