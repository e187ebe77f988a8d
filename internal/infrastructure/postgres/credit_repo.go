package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
	pkgpostgres "github.com/bibbank/credit-schedule-service/pkg/postgres"
)

const creditColumns = `
	id, tenant_id, number,
	principal, currency, calculation_method,
	start_date, payment_day, term_months, deferment_months,
	status, notes, version, created_at, updated_at`

// CreditRepo implements port.CreditRepository.
type CreditRepo struct {
	pool *pgxpool.Pool
}

// NewCreditRepo creates a new PostgreSQL-backed credit repository.
func NewCreditRepo(pool *pgxpool.Pool) *CreditRepo {
	return &CreditRepo{pool: pool}
}

// Create inserts the credit and its initial rate entries in one transaction.
func (r *CreditRepo) Create(ctx context.Context, credit model.Credit, rates []model.RateEntry) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		t := credit.Terms()
		_, err := tx.Exec(ctx, `
			INSERT INTO credits (`+creditColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			credit.ID(), credit.TenantID(), credit.Number(),
			t.Principal, t.Currency.Code(), t.Method.String(),
			t.StartDate.Time(), t.PaymentDay, t.TermMonths, t.DefermentMonths,
			credit.Status().String(), credit.Notes(), credit.Version(),
			credit.CreatedAt(), credit.UpdatedAt(),
		)
		if pkgpostgres.IsUniqueViolation(err, "credits_tenant_number_key") {
			return fmt.Errorf("%w: %s", model.ErrDuplicateCreditNumber, credit.Number())
		}
		if err != nil {
			return fmt.Errorf("insert credit: %w", err)
		}

		for _, e := range rates {
			if err := insertRate(ctx, tx, credit.ID(), e, credit.CreatedAt()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update saves amended terms when the stored version still matches the
// credit's version, and bumps it.
func (r *CreditRepo) Update(ctx context.Context, credit model.Credit) error {
	return updateCredit(ctx, r.pool, credit)
}

// UpdateWithRates saves amended terms and swaps the credit's rate entries for
// rates, all under the same version check.
func (r *CreditRepo) UpdateWithRates(ctx context.Context, credit model.Credit, rates []model.RateEntry) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := updateCredit(ctx, tx, credit); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM rate_entries WHERE credit_id = $1`, credit.ID()); err != nil {
			return fmt.Errorf("delete rate entries: %w", err)
		}
		for _, e := range rates {
			if err := insertRate(ctx, tx, credit.ID(), e, credit.UpdatedAt()); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a credit by tenant and ID.
func (r *CreditRepo) FindByID(ctx context.Context, tenantID, id string) (model.Credit, error) {
	return findCredit(ctx, r.pool, tenantID, id)
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func updateCredit(ctx context.Context, q pkgpostgres.Querier, credit model.Credit) error {
	t := credit.Terms()
	tag, err := q.Exec(ctx, `
		UPDATE credits SET
			principal          = $3,
			calculation_method = $4,
			start_date         = $5,
			payment_day        = $6,
			term_months        = $7,
			deferment_months   = $8,
			status             = $9,
			notes              = $10,
			version            = version + 1,
			updated_at         = $11
		WHERE tenant_id = $1 AND id = $2 AND version = $12`,
		credit.TenantID(), credit.ID(),
		t.Principal, t.Method.String(), t.StartDate.Time(),
		t.PaymentDay, t.TermMonths, t.DefermentMonths,
		credit.Status().String(), credit.Notes(), credit.UpdatedAt(),
		credit.Version(),
	)
	if err != nil {
		return fmt.Errorf("update credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("credit %s at version %d: %w", credit.ID(), credit.Version(), model.ErrConcurrentModification)
	}
	return nil
}

func findCredit(ctx context.Context, q pkgpostgres.Querier, tenantID, id string) (model.Credit, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Credit{}, fmt.Errorf("credit %q: %w", id, model.ErrCreditNotFound)
	}
	row := q.QueryRow(ctx, `SELECT `+creditColumns+` FROM credits WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	c, err := scanCredit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Credit{}, fmt.Errorf("credit %s: %w", id, model.ErrCreditNotFound)
	}
	return c, err
}

func scanCredit(s scannable) (model.Credit, error) {
	var (
		id, tenantID, number     string
		principal                decimal.Decimal
		currencyCode, methodStr  string
		startDate                time.Time
		paymentDay, termMonths   int
		defermentMonths, version int
		statusStr, notes         string
		createdAt, updatedAt     time.Time
	)
	err := s.Scan(
		&id, &tenantID, &number,
		&principal, &currencyCode, &methodStr,
		&startDate, &paymentDay, &termMonths, &defermentMonths,
		&statusStr, &notes, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Credit{}, fmt.Errorf("scan credit: %w", err)
	}

	cur, err := money.NewCurrency(currencyCode)
	if err != nil {
		return model.Credit{}, fmt.Errorf("parse currency: %w", err)
	}
	method, err := valueobject.NewCalculationMethod(methodStr)
	if err != nil {
		return model.Credit{}, fmt.Errorf("parse calculation method: %w", err)
	}
	status, err := valueobject.NewCreditStatus(statusStr)
	if err != nil {
		return model.Credit{}, fmt.Errorf("parse credit status: %w", err)
	}

	return model.ReconstructCredit(
		id, tenantID, number,
		model.CreditTerms{
			Principal:       principal,
			Currency:        cur,
			Method:          method,
			StartDate:       dateOf(startDate),
			PaymentDay:      paymentDay,
			TermMonths:      termMonths,
			DefermentMonths: defermentMonths,
		},
		status, notes, version, createdAt, updatedAt,
	), nil
}
