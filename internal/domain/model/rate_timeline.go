package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-schedule-service/internal/domain/valueobject"
)

// RateEntry is one annual rate, expressed as a fraction (0.125 for 12.5%),
// that applies from EffectiveDate until the next entry takes over.
type RateEntry struct {
	Rate          decimal.Decimal
	EffectiveDate valueobject.Date
	Note          string
}

// RateSegment is a run of consecutive days [From, To) charged at one rate.
type RateSegment struct {
	From valueobject.Date
	To   valueobject.Date
	Rate decimal.Decimal
}

// Days returns the number of days covered by the segment.
func (s RateSegment) Days() int {
	return s.To.DaysSince(s.From)
}

// RateSource answers which rate applies on a given day.
type RateSource interface {
	RateOn(d valueobject.Date) (decimal.Decimal, error)
	Segments(from, to valueobject.Date) ([]RateSegment, error)
}

// RateTimeline is an ordered, non-overlapping history of rate entries for one
// credit. It is immutable; WithEntry returns a new timeline.
type RateTimeline struct {
	creditStart valueobject.Date
	entries     []RateEntry
}

// NewRateTimeline sorts entries by effective date and validates them against
// the credit start date. Duplicate dates are rejected rather than merged.
func NewRateTimeline(creditStart valueobject.Date, entries []RateEntry) (RateTimeline, error) {
	sorted := make([]RateEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate)
	})

	tl := RateTimeline{creditStart: creditStart, entries: sorted}
	if err := tl.Validate(); err != nil {
		return RateTimeline{}, err
	}
	return tl, nil
}

// RateTimelineFromOrdered builds a timeline that keeps the caller's order, for
// sources that already guarantee ordering. Call Validate before use.
func RateTimelineFromOrdered(creditStart valueobject.Date, entries []RateEntry) RateTimeline {
	cp := make([]RateEntry, len(entries))
	copy(cp, entries)
	return RateTimeline{creditStart: creditStart, entries: cp}
}

// FixedRateTimeline returns the single synthetic entry timeline used by
// classic methods.
func FixedRateTimeline(creditStart valueobject.Date, rate decimal.Decimal) (RateTimeline, error) {
	return NewRateTimeline(creditStart, []RateEntry{{Rate: rate, EffectiveDate: creditStart}})
}

// Validate checks ordering, rate sign and the credit start bound.
func (t RateTimeline) Validate() error {
	if len(t.entries) == 0 {
		return ErrEmptyRateTimeline
	}
	for i, e := range t.entries {
		if !e.Rate.IsPositive() {
			return fmt.Errorf("%w: entry %d (%s) has rate %s", ErrNonPositiveRate, i+1, e.EffectiveDate, e.Rate)
		}
		if e.EffectiveDate.Before(t.creditStart) {
			return fmt.Errorf("%w: entry %d effective %s, credit starts %s",
				ErrRateBeforeCreditStart, i+1, e.EffectiveDate, t.creditStart)
		}
		if i == 0 {
			continue
		}
		prev := t.entries[i-1].EffectiveDate
		switch {
		case e.EffectiveDate.Equal(prev):
			return fmt.Errorf("%w: %s", ErrDuplicateRateDate, e.EffectiveDate)
		case e.EffectiveDate.Before(prev):
			return fmt.Errorf("%w: %s follows %s", ErrInvalidRateOrder, e.EffectiveDate, prev)
		}
	}
	return nil
}

// Restarted rebinds the timeline to a new credit start date. Entries effective
// on the old start move with it; every other entry must still fall after the
// new start.
func (t RateTimeline) Restarted(start valueobject.Date) (RateTimeline, error) {
	entries := t.Entries()
	for i := range entries {
		if entries[i].EffectiveDate.Equal(t.creditStart) {
			entries[i].EffectiveDate = start
		}
	}
	tl, err := NewRateTimeline(start, entries)
	if err != nil {
		return RateTimeline{}, fmt.Errorf("restart at %s: %w", start, err)
	}
	return tl, nil
}

// Entries returns a copy of the ordered entries.
func (t RateTimeline) Entries() []RateEntry {
	out := make([]RateEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t RateTimeline) Len() int { return len(t.entries) }

// CreditStart returns the lower bound for effective dates.
func (t RateTimeline) CreditStart() valueobject.Date { return t.creditStart }

// Last returns the most recent entry.
func (t RateTimeline) Last() (RateEntry, bool) {
	if len(t.entries) == 0 {
		return RateEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// RateOn returns the rate of the latest entry effective on or before d.
func (t RateTimeline) RateOn(d valueobject.Date) (decimal.Decimal, error) {
	idx := t.indexOn(d)
	if idx < 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoApplicableRate, d)
	}
	return t.entries[idx].Rate, nil
}

// Segments splits [from, to) into rate-homogeneous runs of days. An empty or
// inverted interval yields nil. Days before the first entry are charged at the
// first entry's rate.
func (t RateTimeline) Segments(from, to valueobject.Date) ([]RateSegment, error) {
	if !from.Before(to) {
		return nil, nil
	}
	if len(t.entries) == 0 {
		return nil, ErrEmptyRateTimeline
	}

	var out []RateSegment
	cursor := from
	idx := t.indexOn(from)
	if idx < 0 {
		first := t.entries[0]
		if !first.EffectiveDate.Before(to) {
			return []RateSegment{{From: from, To: to, Rate: first.Rate}}, nil
		}
		out = append(out, RateSegment{From: from, To: first.EffectiveDate, Rate: first.Rate})
		cursor = first.EffectiveDate
		idx = 0
	}
	for ; idx < len(t.entries); idx++ {
		end := to
		if idx+1 < len(t.entries) && t.entries[idx+1].EffectiveDate.Before(to) {
			end = t.entries[idx+1].EffectiveDate
		}
		out = append(out, RateSegment{From: cursor, To: end, Rate: t.entries[idx].Rate})
		if !end.Before(to) {
			break
		}
		cursor = end
	}
	return out, nil
}

// WithEntry returns a new timeline that also contains e.
func (t RateTimeline) WithEntry(e RateEntry) (RateTimeline, error) {
	next := make([]RateEntry, 0, len(t.entries)+1)
	next = append(next, t.entries...)
	next = append(next, e)
	return NewRateTimeline(t.creditStart, next)
}

// indexOn returns the index of the entry in effect on d, or -1.
func (t RateTimeline) indexOn(d valueobject.Date) int {
	// First entry effective strictly after d; the one before it applies.
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].EffectiveDate.After(d)
	})
	return i - 1
}
