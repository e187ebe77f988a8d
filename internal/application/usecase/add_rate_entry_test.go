package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/application/usecase"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/service"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

func newAddRateUseCase(loader *mockSnapshotLoader, repo *mockRateRepository, pub *mockEventPublisher) *usecase.AddRateEntryUseCase {
	return usecase.NewAddRateEntryUseCase(loader, repo, pub, service.NewScheduleEngine(), &mockMetrics{}, discardLogger())
}

func TestAddRateEntry_Execute(t *testing.T) {
	t.Run("raises the rate for the unsettled tail", func(t *testing.T) {
		snap := snapshotWithPaid(t, valueobject.MethodFloatingAnnuity, 3)
		repo := &mockRateRepository{}
		pub := &mockEventPublisher{}

		base, err := newAddRateUseCase(&mockSnapshotLoader{snapshot: snap}, &mockRateRepository{}, &mockEventPublisher{}).Execute(
			context.Background(),
			dto.AddRateEntryRequest{TenantID: tenantID, CreditID: creditID, Entry: dto.RateEntryInput{Rate: dec("0.12"), EffectiveDate: "2024-07-01"}},
		)
		require.NoError(t, err)

		resp, err := newAddRateUseCase(&mockSnapshotLoader{snapshot: snap}, repo, pub).Execute(context.Background(),
			dto.AddRateEntryRequest{
				TenantID: tenantID,
				CreditID: creditID,
				Entry:    dto.RateEntryInput{Rate: dec("0.15"), EffectiveDate: "2024-07-01", Note: "index reset"},
			})

		require.NoError(t, err)
		require.Len(t, resp.Schedule, 12)
		assert.Equal(t, 3, resp.SettledPeriods)
		assert.True(t, resp.Totals.TotalInterest.GreaterThan(base.Totals.TotalInterest),
			"interest %s should exceed %s", resp.Totals.TotalInterest, base.Totals.TotalInterest)
		for i := 0; i < 3; i++ {
			assert.True(t, base.Schedule[i].TotalDue.Equal(resp.Schedule[i].TotalDue), "period %d", i+1)
		}
		assert.True(t, resp.Schedule[11].RemainingBalance.IsZero())

		require.Len(t, repo.added, 1)
		assert.Equal(t, "index reset", repo.added[0].Note)
		assert.Equal(t, []string{"credit.schedule.rate_added", "credit.schedule.recomputed"}, pub.types())
	})

	t.Run("rejects a classic credit", func(t *testing.T) {
		snap := snapshotWithPaid(t, valueobject.MethodClassicAnnuity, 0)
		repo := &mockRateRepository{}

		_, err := newAddRateUseCase(&mockSnapshotLoader{snapshot: snap}, repo, &mockEventPublisher{}).Execute(context.Background(),
			dto.AddRateEntryRequest{TenantID: tenantID, CreditID: creditID, Entry: dto.RateEntryInput{Rate: dec("0.15"), EffectiveDate: "2024-07-01"}})

		assert.ErrorIs(t, err, model.ErrRateNotFloating)
		assert.Empty(t, repo.added)
	})

	t.Run("rejects an entry inside settled history", func(t *testing.T) {
		snap := snapshotWithPaid(t, valueobject.MethodFloatingDifferentiated, 3)
		repo := &mockRateRepository{}

		_, err := newAddRateUseCase(&mockSnapshotLoader{snapshot: snap}, repo, &mockEventPublisher{}).Execute(context.Background(),
			dto.AddRateEntryRequest{TenantID: tenantID, CreditID: creditID, Entry: dto.RateEntryInput{Rate: dec("0.15"), EffectiveDate: "2024-04-15"}})

		assert.ErrorIs(t, err, model.ErrRateInSettledHistory)
		assert.Empty(t, repo.added)
	})

	t.Run("rejects a duplicate effective date", func(t *testing.T) {
		snap := snapshotWithPaid(t, valueobject.MethodFloatingAnnuity, 0)

		_, err := newAddRateUseCase(&mockSnapshotLoader{snapshot: snap}, &mockRateRepository{}, &mockEventPublisher{}).Execute(context.Background(),
			dto.AddRateEntryRequest{TenantID: tenantID, CreditID: creditID, Entry: dto.RateEntryInput{Rate: dec("0.15"), EffectiveDate: "2024-01-15"}})

		assert.ErrorIs(t, err, model.ErrInvalidRateOrder)
	})

	t.Run("does not publish when the entry cannot be stored", func(t *testing.T) {
		snap := snapshotWithPaid(t, valueobject.MethodFloatingAnnuity, 0)
		repo := &mockRateRepository{
			addFunc: func(context.Context, string, model.RateEntry) error { return errors.New("deadlock detected") },
		}
		pub := &mockEventPublisher{}

		_, err := newAddRateUseCase(&mockSnapshotLoader{snapshot: snap}, repo, pub).Execute(context.Background(),
			dto.AddRateEntryRequest{TenantID: tenantID, CreditID: creditID, Entry: dto.RateEntryInput{Rate: dec("0.15"), EffectiveDate: "2024-07-01"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save rate entry")
		assert.Empty(t, pub.publishedEvents)
	})
}
