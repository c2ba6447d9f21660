package driverrate

import (
	"time"

	"github.com/google/uuid"

	driverrateerrors "fleetpay/internal/driverrate/errors"
)

// openEnd is the internal sentinel for an open-ended rate. Mapping nil to a
// max date keeps interval intersection arithmetic free of null checks.
var openEnd = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Interval is an inclusive day range. To is openEnd for open-ended rates.
type Interval struct {
	From time.Time
	To   time.Time
}

func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NewInterval(from time.Time, to *time.Time) Interval {
	iv := Interval{From: Day(from), To: openEnd}
	if to != nil {
		iv.To = Day(*to)
	}
	return iv
}

func (iv Interval) OpenEnded() bool {
	return iv.To.Equal(openEnd)
}

func (iv Interval) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(iv.From) && !d.After(iv.To)
}

func (iv Interval) Overlaps(other Interval) bool {
	return !iv.To.Before(other.From) && !other.To.Before(iv.From)
}

func intervalOf(r DriverRate) Interval {
	return NewInterval(r.EffectiveFrom, r.EffectiveTo)
}

// Truncation shrinks an existing rate so the candidate interval can take over
// from NewEnd+1 onward. History is truncated, never deleted.
type Truncation struct {
	RateID uuid.UUID
	NewEnd time.Time
}

// PlanTimeline classifies every rate that overlaps the candidate interval and
// returns the set of truncations that resolves all conflicts, or an error if
// any overlap cannot be resolved. All-or-nothing: on error no truncation from
// the returned plan may be applied.
//
// Classification per overlapping rate:
//   - starts strictly before the candidate: truncate its end to the day before
//     the candidate starts. If that leaves the rate ending before it starts
//     there is no room to shrink (two rates cannot share a single day).
//   - starts on or after the candidate start: rejected. Future rates are never
//     edited implicitly; the caller must edit them first.
func PlanTimeline(candidate Interval, others []DriverRate) ([]Truncation, error) {
	var plan []Truncation

	for _, other := range others {
		iv := intervalOf(other)
		if !iv.Overlaps(candidate) {
			continue
		}

		if iv.From.Before(candidate.From) {
			newEnd := candidate.From.AddDate(0, 0, -1)
			if newEnd.Before(iv.From) {
				return nil, driverrateerrors.ErrSameDayBoundary
			}
			plan = append(plan, Truncation{RateID: other.ID, NewEnd: newEnd})
			continue
		}

		return nil, driverrateerrors.ErrFutureRateExists
	}

	return plan, nil
}
