package model_test

import (
	"testing"
	"time"

	"github.com/bookclub/library-service/internal/model"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	hourAgo := now.Add(-time.Hour)
	dayAgo := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	var tests = []struct {
		name       string
		dueDate    time.Time
		returnDate *time.Time
		want       model.Status
	}{
		{
			name:    "before due date",
			dueDate: tomorrow,
			want:    model.StatusBorrowed,
		},
		{
			name:    "past due date",
			dueDate: dayAgo,
			want:    model.StatusOverdue,
		},
		{
			name:    "exactly at due date",
			dueDate: now,
			want:    model.StatusBorrowed,
		},
		{
			name:       "returned on time",
			dueDate:    tomorrow,
			returnDate: &hourAgo,
			want:       model.StatusReturned,
		},
		{
			name:       "returned late wins over overdue",
			dueDate:    dayAgo,
			returnDate: &hourAgo,
			want:       model.StatusReturned,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.DeriveStatus(tt.dueDate, tt.returnDate, now))
		})
	}
}

func TestLoanPeriod(t *testing.T) {
	t.Parallel()
	require.Equal(t, 14*24*time.Hour, model.LoanPeriod)
}
