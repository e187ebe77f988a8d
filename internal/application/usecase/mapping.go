package usecase

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/credit-schedule-service/internal/application/dto"
	"github.com/bibbank/credit-schedule-service/internal/domain/model"
	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
	"github.com/bibbank/credit-schedule-service/pkg/money"
)

var tracer = otel.Tracer("github.com/bibbank/credit-schedule-service/internal/application/usecase")

// Clock returns the current instant. Use cases take it as a dependency so
// "today" is never read from ambient state inside the domain.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time { return time.Now().UTC() }

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func creditAttrs(tenantID, creditID string) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("tenant_id", tenantID),
		attribute.String("credit_id", creditID),
	)
}

// ---------------------------------------------------------------------------
// Request parsing
// ---------------------------------------------------------------------------

func parseDate(field, raw string) (valueobject.Date, error) {
	d, err := valueobject.ParseDate(raw)
	if err != nil {
		return valueobject.Date{}, fmt.Errorf("%w: %s %q", model.ErrInvalidDate, field, raw)
	}
	return d, nil
}

func parseRateEntry(in dto.RateEntryInput) (model.RateEntry, error) {
	d, err := parseDate("effectiveDate", in.EffectiveDate)
	if err != nil {
		return model.RateEntry{}, err
	}
	return model.RateEntry{Rate: in.Rate, EffectiveDate: d, Note: in.Note}, nil
}

// parseCreditInput normalizes a credit-like record into terms and a validated
// rate timeline.
func parseCreditInput(in dto.CreditInput) (model.CreditTerms, model.RateTimeline, error) {
	method, err := dto.NormalizeMethod(in.CalculationMethod)
	if err != nil {
		return model.CreditTerms{}, model.RateTimeline{}, err
	}
	cur, err := money.NewCurrency(in.Currency)
	if err != nil {
		return model.CreditTerms{}, model.RateTimeline{}, fmt.Errorf("%w: %q", model.ErrInvalidCurrency, in.Currency)
	}
	if in.StartDate == "" {
		return model.CreditTerms{}, model.RateTimeline{}, model.ErrMissingStartDate
	}
	start, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return model.CreditTerms{}, model.RateTimeline{}, err
	}

	terms := model.CreditTerms{
		Principal:       in.Principal,
		Currency:        cur,
		Method:          method,
		StartDate:       start,
		PaymentDay:      in.PaymentDay,
		TermMonths:      in.TermMonths,
		DefermentMonths: in.DefermentMonths,
	}
	if err := terms.Validate(); err != nil {
		return model.CreditTerms{}, model.RateTimeline{}, err
	}

	var tl model.RateTimeline
	switch {
	case !method.IsFloating() && in.Rate != nil:
		if len(in.Rates) > 0 {
			return model.CreditTerms{}, model.RateTimeline{}, fmt.Errorf("%w: give either rate or rates", model.ErrFixedRateChange)
		}
		tl, err = model.FixedRateTimeline(start, *in.Rate)
	case !method.IsFloating():
		if len(in.Rates) != 1 {
			return model.CreditTerms{}, model.RateTimeline{}, fmt.Errorf("%w: got %d entries", model.ErrFixedRateChange, len(in.Rates))
		}
		// The synthetic entry of a classic credit is always dated at start.
		tl, err = model.FixedRateTimeline(start, in.Rates[0].Rate)
	default:
		if in.Rate != nil && len(in.Rates) == 0 {
			tl, err = model.FixedRateTimeline(start, *in.Rate)
			break
		}
		entries := make([]model.RateEntry, 0, len(in.Rates))
		for _, r := range in.Rates {
			e, perr := parseRateEntry(r)
			if perr != nil {
				return model.CreditTerms{}, model.RateTimeline{}, perr
			}
			entries = append(entries, e)
		}
		tl, err = model.NewRateTimeline(start, entries)
	}
	if err != nil {
		return model.CreditTerms{}, model.RateTimeline{}, err
	}
	return terms, tl, nil
}

// ---------------------------------------------------------------------------
// Response mapping
// ---------------------------------------------------------------------------

func toScheduleResponse(number string, terms model.CreditTerms, sched model.Schedule) dto.ScheduleResponse {
	rows := make([]dto.ScheduleItemResponse, len(sched.Items))
	for i, it := range sched.Items {
		rows[i] = dto.ScheduleItemResponse{
			PeriodNumber:     it.Period,
			DueDate:          it.DueDate.String(),
			PrincipalDue:     it.PrincipalDue,
			InterestDue:      it.InterestDue,
			TotalDue:         it.TotalDue,
			RemainingBalance: it.RemainingBalance,
			AverageRate:      it.AverageRate.Round(6),
		}
	}
	return dto.ScheduleResponse{
		Loan: dto.LoanSummary{
			Number:            number,
			Principal:         terms.Principal,
			CalculationMethod: terms.Method.String(),
		},
		Schedule: rows,
		Totals: dto.TotalsResponse{
			TotalPayments: sched.Totals.TotalPayments,
			TotalInterest: sched.Totals.TotalInterest,
			Overpayment:   sched.Totals.Overpayment,
		},
	}
}

func toCreditResponse(c model.Credit, sched dto.ScheduleResponse) dto.CreditResponse {
	t := c.Terms()
	return dto.CreditResponse{
		ID:                c.ID(),
		TenantID:          c.TenantID(),
		Number:            c.Number(),
		Principal:         t.Principal,
		Currency:          t.Currency.Code(),
		CalculationMethod: t.Method.String(),
		StartDate:         t.StartDate.String(),
		PaymentDay:        t.PaymentDay,
		TermMonths:        t.TermMonths,
		DefermentMonths:   t.DefermentMonths,
		Status:            c.Status().String(),
		Notes:             c.Notes(),
		Version:           c.Version(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
		Schedule:          sched,
	}
}

func toUnprocessedResponse(creditID string, today valueobject.Date, periods []model.UnprocessedPeriod) dto.UnprocessedPeriodsResponse {
	out := make([]dto.UnprocessedPeriodResponse, len(periods))
	for i, p := range periods {
		out[i] = dto.UnprocessedPeriodResponse{
			PeriodNumber:     p.Period,
			DueDate:          p.DueDate.String(),
			PrincipalDue:     p.PrincipalDue,
			InterestDue:      p.InterestDue,
			TotalDue:         p.TotalDue,
			RemainingBalance: p.RemainingBalance,
			Status:           p.Status.String(),
		}
	}
	return dto.UnprocessedPeriodsResponse{CreditID: creditID, Today: today.String(), Periods: out}
}

// snapshotTimeline rebuilds the stored timeline. Entries come back ordered by
// effective date; the engine validates them against the credit start.
func snapshotTimeline(c model.Credit, rates []model.RateEntry) model.RateTimeline {
	return model.RateTimelineFromOrdered(c.StartDate(), rates)
}
