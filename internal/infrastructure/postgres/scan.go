package postgres

import (
	"time"

	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// scannable is satisfied by both pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// dateOf converts a DATE column, which pgx returns as midnight UTC.
func dateOf(t time.Time) valueobject.Date {
	return valueobject.DateOf(t, time.UTC)
}
