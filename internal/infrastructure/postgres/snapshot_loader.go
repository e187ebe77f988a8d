package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/credit-schedule-service/internal/domain/port"
	pkgpostgres "github.com/bibbank/credit-schedule-service/pkg/postgres"
)

// SnapshotLoader implements port.CreditSnapshotLoader.
type SnapshotLoader struct {
	pool *pgxpool.Pool
}

// NewSnapshotLoader creates a loader reading from pool.
func NewSnapshotLoader(pool *pgxpool.Pool) *SnapshotLoader {
	return &SnapshotLoader{pool: pool}
}

// LoadSnapshot reads the credit, its rate entries and its payments inside one
// REPEATABLE READ transaction.
func (l *SnapshotLoader) LoadSnapshot(ctx context.Context, tenantID, creditID string) (port.CreditSnapshot, error) {
	var snap port.CreditSnapshot
	err := pkgpostgres.WithSnapshot(ctx, l.pool, func(tx pgx.Tx) error {
		c, err := findCredit(ctx, tx, tenantID, creditID)
		if err != nil {
			return err
		}
		rates, err := loadRates(ctx, tx, creditID)
		if err != nil {
			return err
		}
		payments, err := loadPayments(ctx, tx, creditID)
		if err != nil {
			return err
		}
		snap = port.CreditSnapshot{Credit: c, Rates: rates, Payments: payments}
		return nil
	})
	if err != nil {
		return port.CreditSnapshot{}, err
	}
	return snap, nil
}
