package payrollconfig

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PeriodMetrics are the per-driver, per-period aggregates bonus rules are
// evaluated against. They are computed once per driver from the eligible
// routes of the period, never per route.
type PeriodMetrics struct {
	RoutesCompleted int
	StopsDelivered  int
	PackagesMoved   int
	FailedStops     int
	NightRoutes     int
}

// bonusMetric maps each bonus type to the metric it thresholds on.
// ZERO_FAILED_STOPS inverts: the "metric" is 1 when no stop failed, so a
// threshold of 1 (or none) pays the bonus only on a clean period.
var bonusMetric = map[string]func(PeriodMetrics) decimal.Decimal{
	BonusTypeRoutesCompleted: func(m PeriodMetrics) decimal.Decimal {
		return decimal.NewFromInt(int64(m.RoutesCompleted))
	},
	BonusTypeStopsDelivered: func(m PeriodMetrics) decimal.Decimal {
		return decimal.NewFromInt(int64(m.StopsDelivered))
	},
	BonusTypeNightRoutes: func(m PeriodMetrics) decimal.Decimal {
		return decimal.NewFromInt(int64(m.NightRoutes))
	},
	BonusTypeZeroFailedStops: func(m PeriodMetrics) decimal.Decimal {
		if m.FailedStops == 0 && m.RoutesCompleted > 0 {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	},
}

// WeightExtra returns the extra amount for one package weight: rules sorted
// by priority ascending, first active match wins. Zero when nothing matches.
func WeightExtra(weight decimal.Decimal, rules []WeightRule) decimal.Decimal {
	sorted := make([]WeightRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	for _, rule := range sorted {
		if !rule.IsActive {
			continue
		}
		if weight.LessThan(rule.MinWeight) {
			continue
		}
		if rule.MaxWeight != nil && !weight.LessThan(*rule.MaxWeight) {
			continue
		}
		return rule.ExtraAmount
	}

	return decimal.Zero
}

// PenaltyAmount returns the positive magnitude to charge for the given
// occurrence count. The caller applies the sign and the weekly cap.
func PenaltyAmount(occurrences int, rule PenaltyRule) decimal.Decimal {
	if !rule.IsActive || occurrences <= 0 {
		return decimal.Zero
	}

	if !rule.ApplyPerOccurrence {
		return rule.Amount
	}

	charged := occurrences
	if rule.MaxOccurrencesPerWeek != nil && charged > *rule.MaxOccurrencesPerWeek {
		charged = *rule.MaxOccurrencesPerWeek
	}

	return rule.Amount.Mul(decimal.NewFromInt(int64(charged)))
}

// BonusAmount returns the bonus for a metric value: the full amount when the
// threshold is unset or met, zero otherwise.
func BonusAmount(metricValue decimal.Decimal, rule BonusRule) decimal.Decimal {
	if !rule.IsActive {
		return decimal.Zero
	}
	if rule.Threshold != nil && metricValue.LessThan(*rule.Threshold) {
		return decimal.Zero
	}
	return rule.Amount
}

// MetricFor resolves the metric value a bonus rule thresholds on. Unknown
// types evaluate to zero.
func MetricFor(ruleType string, m PeriodMetrics) decimal.Decimal {
	if fn, ok := bonusMetric[ruleType]; ok {
		return fn(m)
	}
	return decimal.Zero
}
