package payrollconfig

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int { return &v }

func TestWeightExtraFirstMatchWinsByPriority(t *testing.T) {
	rules := []WeightRule{
		{MinWeight: dec("0"), MaxWeight: decPtr("50"), ExtraAmount: dec("1.00"), Priority: 10, IsActive: true},
		{MinWeight: dec("20"), MaxWeight: decPtr("50"), ExtraAmount: dec("3.00"), Priority: 5, IsActive: true},
	}

	// 25kg matches both; the priority-5 rule is evaluated first.
	assert.True(t, WeightExtra(dec("25"), rules).Equal(dec("3.00")))
	// 10kg only matches the priority-10 rule.
	assert.True(t, WeightExtra(dec("10"), rules).Equal(dec("1.00")))
}

func TestWeightExtraBoundsInclusiveExclusive(t *testing.T) {
	rules := []WeightRule{
		{MinWeight: dec("20"), MaxWeight: decPtr("30"), ExtraAmount: dec("2.00"), IsActive: true},
	}

	assert.True(t, WeightExtra(dec("20"), rules).Equal(dec("2.00")), "min is inclusive")
	assert.True(t, WeightExtra(dec("30"), rules).IsZero(), "max is exclusive")
	assert.True(t, WeightExtra(dec("29.99"), rules).Equal(dec("2.00")))
}

func TestWeightExtraOpenEndedMaxAndInactiveRules(t *testing.T) {
	rules := []WeightRule{
		{MinWeight: dec("50"), ExtraAmount: dec("5.00"), Priority: 1, IsActive: false},
		{MinWeight: dec("50"), ExtraAmount: dec("4.00"), Priority: 2, IsActive: true},
	}

	assert.True(t, WeightExtra(dec("120"), rules).Equal(dec("4.00")), "inactive rule skipped, no upper bound")
	assert.True(t, WeightExtra(dec("49"), rules).IsZero())
}

func TestPenaltyAmountPerOccurrence(t *testing.T) {
	rule := PenaltyRule{Amount: dec("5.00"), ApplyPerOccurrence: true, IsActive: true}

	assert.True(t, PenaltyAmount(3, rule).Equal(dec("15.00")))
	assert.True(t, PenaltyAmount(0, rule).IsZero())
}

func TestPenaltyAmountCappedByMaxOccurrences(t *testing.T) {
	rule := PenaltyRule{
		Amount:                dec("5.00"),
		ApplyPerOccurrence:    true,
		MaxOccurrencesPerWeek: intPtr(2),
		IsActive:              true,
	}

	assert.True(t, PenaltyAmount(7, rule).Equal(dec("10.00")))
}

func TestPenaltyAmountFlatWhenNotPerOccurrence(t *testing.T) {
	rule := PenaltyRule{Amount: dec("25.00"), ApplyPerOccurrence: false, IsActive: true}

	assert.True(t, PenaltyAmount(1, rule).Equal(dec("25.00")))
	assert.True(t, PenaltyAmount(9, rule).Equal(dec("25.00")))
	assert.True(t, PenaltyAmount(0, rule).IsZero())
}

func TestPenaltyAmountInactiveRule(t *testing.T) {
	rule := PenaltyRule{Amount: dec("5.00"), ApplyPerOccurrence: true, IsActive: false}

	assert.True(t, PenaltyAmount(4, rule).IsZero())
}

func TestBonusAmountThreshold(t *testing.T) {
	rule := BonusRule{Threshold: decPtr("100"), Amount: dec("50.00"), IsActive: true}

	assert.True(t, BonusAmount(dec("99"), rule).IsZero())
	assert.True(t, BonusAmount(dec("100"), rule).Equal(dec("50.00")), "threshold is inclusive")
	assert.True(t, BonusAmount(dec("250"), rule).Equal(dec("50.00")))
}

func TestBonusAmountNoThresholdAlwaysPays(t *testing.T) {
	rule := BonusRule{Amount: dec("10.00"), IsActive: true}

	assert.True(t, BonusAmount(decimal.Zero, rule).Equal(dec("10.00")))
}

func TestMetricForZeroFailedStops(t *testing.T) {
	clean := PeriodMetrics{RoutesCompleted: 5, FailedStops: 0}
	dirty := PeriodMetrics{RoutesCompleted: 5, FailedStops: 2}
	empty := PeriodMetrics{}

	assert.True(t, MetricFor(BonusTypeZeroFailedStops, clean).Equal(decimal.NewFromInt(1)))
	assert.True(t, MetricFor(BonusTypeZeroFailedStops, dirty).IsZero())
	assert.True(t, MetricFor(BonusTypeZeroFailedStops, empty).IsZero(), "no routes means no clean-period bonus")
}

func TestMetricForCountMetrics(t *testing.T) {
	m := PeriodMetrics{RoutesCompleted: 12, StopsDelivered: 340, NightRoutes: 3}

	assert.True(t, MetricFor(BonusTypeRoutesCompleted, m).Equal(decimal.NewFromInt(12)))
	assert.True(t, MetricFor(BonusTypeStopsDelivered, m).Equal(decimal.NewFromInt(340)))
	assert.True(t, MetricFor(BonusTypeNightRoutes, m).Equal(decimal.NewFromInt(3)))
	assert.True(t, MetricFor("UNKNOWN", m).IsZero())
}
