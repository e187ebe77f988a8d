package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
)

func TestGeneratePeriods_ClampsShortMonths(t *testing.T) {
	periods, err := model.GeneratePeriods(day("2024-01-31"), 31, 5, 0)
	require.NoError(t, err)
	require.Len(t, periods, 5)

	want := []string{"2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31", "2024-06-30"}
	for i, p := range periods {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, want[i], p.DueDate.String())
	}
	assert.True(t, periods[0].AccrualStart.Equal(day("2024-01-31")))
	assert.True(t, periods[1].AccrualStart.Equal(periods[0].DueDate))
	assert.Equal(t, 29, periods[0].Days())
}

func TestGeneratePeriods_DefermentFlags(t *testing.T) {
	periods, err := model.GeneratePeriods(day("2024-11-05"), 10, 6, 2)
	require.NoError(t, err)

	assert.True(t, periods[0].Deferment)
	assert.True(t, periods[1].Deferment)
	for _, p := range periods[2:] {
		assert.False(t, p.Deferment)
	}
	assert.Equal(t, "2024-12-10", periods[0].DueDate.String())
	assert.Equal(t, "2025-01-10", periods[1].DueDate.String())
	assert.Equal(t, "2025-05-10", periods[5].DueDate.String())
}

func TestGeneratePeriods_Deterministic(t *testing.T) {
	a, err := model.GeneratePeriods(day("2024-01-20"), 20, 24, 3)
	require.NoError(t, err)
	b, err := model.GeneratePeriods(day("2024-01-20"), 20, 24, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGeneratePeriods_InvalidInput(t *testing.T) {
	tests := []struct {
		name               string
		day, term, deferal int
		wantErr            error
	}{
		{"zero term", 10, 0, 0, model.ErrNonPositiveTerm},
		{"day 0", 0, 12, 0, model.ErrInvalidPaymentDay},
		{"day 32", 32, 12, 0, model.ErrInvalidPaymentDay},
		{"negative deferment", 10, 12, -1, model.ErrInvalidDeferment},
		{"deferment equals term", 10, 12, 12, model.ErrInvalidDeferment},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.GeneratePeriods(day("2024-01-01"), tc.day, tc.term, tc.deferal)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
