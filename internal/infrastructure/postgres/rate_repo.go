package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	pkgpostgres "github.com/bibbank/credit-schedule-service/pkg/postgres"
)

// RateRepo implements port.RateRepository.
type RateRepo struct {
	pool *pgxpool.Pool
}

// NewRateRepo creates a new PostgreSQL-backed rate entry repository.
func NewRateRepo(pool *pgxpool.Pool) *RateRepo {
	return &RateRepo{pool: pool}
}

// Add appends an entry to a credit's timeline.
func (r *RateRepo) Add(ctx context.Context, creditID string, entry model.RateEntry) error {
	return insertRate(ctx, r.pool, creditID, entry, time.Now().UTC())
}

func insertRate(ctx context.Context, q pkgpostgres.Querier, creditID string, e model.RateEntry, createdAt time.Time) error {
	_, err := q.Exec(ctx, `
		INSERT INTO rate_entries (id, credit_id, rate, effective_date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), creditID, e.Rate, e.EffectiveDate.Time(), e.Note, createdAt,
	)
	if pkgpostgres.IsUniqueViolation(err, "rate_entries_credit_date_key") {
		return fmt.Errorf("%w: %s", model.ErrDuplicateRateDate, e.EffectiveDate)
	}
	if err != nil {
		return fmt.Errorf("insert rate entry %s: %w", e.EffectiveDate, err)
	}
	return nil
}

func loadRates(ctx context.Context, q pkgpostgres.Querier, creditID string) ([]model.RateEntry, error) {
	rows, err := q.Query(ctx, `
		SELECT rate, effective_date, note
		FROM rate_entries
		WHERE credit_id = $1
		ORDER BY effective_date`, creditID)
	if err != nil {
		return nil, fmt.Errorf("query rate entries: %w", err)
	}
	defer rows.Close()

	var out []model.RateEntry
	for rows.Next() {
		var (
			e         model.RateEntry
			effective time.Time
		)
		if err := rows.Scan(&e.Rate, &effective, &e.Note); err != nil {
			return nil, fmt.Errorf("scan rate entry: %w", err)
		}
		e.EffectiveDate = dateOf(effective)
		out = append(out, e)
	}
	return out, rows.Err()
}
