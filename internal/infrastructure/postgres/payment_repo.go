package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	pkgpostgres "github.com/bibbank/credit-schedule-service/pkg/postgres"
)

// PaymentRepo implements port.PaymentRepository.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new PostgreSQL-backed payment repository.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// CreateBatch inserts SCHEDULED payments in one transaction. A period that
// already holds a non-canceled payment is left alone and not counted.
func (r *PaymentRepo) CreateBatch(ctx context.Context, creditID string, payloads []model.BulkPaymentPayload, createdAt time.Time) (int, error) {
	if len(payloads) == 0 {
		return 0, nil
	}

	created := 0
	err := pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, p := range payloads {
			batch.Queue(`
				INSERT INTO payments (
					id, credit_id, period_number, due_date,
					principal_due, interest_due, total_due, status, created_at
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
				ON CONFLICT (credit_id, period_number) WHERE status <> 'CANCELED' DO NOTHING`,
				uuid.New().String(), creditID, p.Period, p.DueDate.Time(),
				p.PrincipalDue, p.InterestDue, p.TotalDue,
				valueobject.PaymentStatusScheduled.String(), createdAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for _, p := range payloads {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return fmt.Errorf("insert payment for period %d: %w", p.Period, err)
			}
			created += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func loadPayments(ctx context.Context, q pkgpostgres.Querier, creditID string) ([]model.Payment, error) {
	rows, err := q.Query(ctx, `
		SELECT id, credit_id, period_number, due_date,
		       principal_due, interest_due, total_due, status, created_at
		FROM payments
		WHERE credit_id = $1
		ORDER BY period_number, created_at`, creditID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var (
			p         model.Payment
			due       time.Time
			statusStr string
		)
		err := rows.Scan(
			&p.ID, &p.CreditID, &p.Period, &due,
			&p.PrincipalDue, &p.InterestDue, &p.TotalDue, &statusStr, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if p.Status, err = valueobject.NewPaymentStatus(statusStr); err != nil {
			return nil, fmt.Errorf("parse payment status: %w", err)
		}
		p.DueDate = dateOf(due)
		out = append(out, p)
	}
	return out, rows.Err()
}
