package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("slot-%d", n)
	}
}

func TestGenerateSlots_JanuaryScenario(t *testing.T) {
	slots, err := domain.GenerateSlots("sem-1", date(t, "2024-01-01"), date(t, "2024-01-20"), sequentialIDs())
	require.NoError(t, err)
	require.Len(t, slots, 3)

	want := [][2]string{
		{"2024-01-01", "2024-01-07"},
		{"2024-01-08", "2024-01-14"},
		{"2024-01-15", "2024-01-20"},
	}
	for i, s := range slots {
		assert.Equal(t, i+1, s.WeekNumber)
		assert.Equal(t, "sem-1", s.SemesterID)
		assert.Equal(t, want[i][0], s.StartDate.Format(domain.DateLayout))
		assert.Equal(t, want[i][1], s.EndDate.Format(domain.DateLayout))
	}
}

func TestGenerateSlots_Coverage(t *testing.T) {
	start := date(t, "2024-02-05")
	for days := 1; days <= 120; days++ {
		end := start.AddDate(0, 0, days)
		t.Run(end.Format(domain.DateLayout), func(t *testing.T) {
			slots, err := domain.GenerateSlots("sem", start, end, sequentialIDs())
			require.NoError(t, err)
			require.NotEmpty(t, slots)

			assert.True(t, slots[0].StartDate.Equal(start))
			assert.True(t, slots[len(slots)-1].EndDate.Equal(end), "last slot must end on the semester end")
			for i, s := range slots {
				assert.Equal(t, i+1, s.WeekNumber)
				assert.False(t, s.EndDate.Before(s.StartDate))
				assert.LessOrEqual(t, s.EndDate.Sub(s.StartDate), 6*24*time.Hour)
				if i > 0 {
					assert.True(t, s.StartDate.Equal(slots[i-1].EndDate.AddDate(0, 0, 1)), "slots must be contiguous")
				}
			}
		})
	}
}

func TestGenerateSlots_ShortRangeYieldsOneSlot(t *testing.T) {
	slots, err := domain.GenerateSlots("sem", date(t, "2024-03-01"), date(t, "2024-03-04"), sequentialIDs())
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2024-03-04", slots[0].EndDate.Format(domain.DateLayout))
}

func TestGenerateSlots_FinalDayAfterFullWeek(t *testing.T) {
	slots, err := domain.GenerateSlots("sem", date(t, "2024-01-01"), date(t, "2024-01-08"), sequentialIDs())
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "2024-01-08", slots[1].StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-08", slots[1].EndDate.Format(domain.DateLayout))
}

func TestGenerateSlots_InvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "same day", start: "2024-01-01", end: "2024-01-01"},
		{name: "reversed", start: "2024-02-01", end: "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.GenerateSlots("sem", date(t, tt.start), date(t, tt.end), sequentialIDs())
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestSlot_Contains(t *testing.T) {
	s := domain.Slot{StartDate: date(t, "2024-01-08"), EndDate: date(t, "2024-01-14")}
	assert.True(t, s.Contains(date(t, "2024-01-08")))
	assert.True(t, s.Contains(date(t, "2024-01-14").Add(23*time.Hour)))
	assert.False(t, s.Contains(date(t, "2024-01-15")))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := domain.ParseDate("01/02/2024")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
