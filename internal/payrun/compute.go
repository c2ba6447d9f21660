package payrun

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleetpay/internal/driverrate"
	"fleetpay/internal/payrollconfig"
	"fleetpay/internal/route"
)

// LineDraft is a pay line before persistence. The computer emits drafts; the
// service attaches run IDs and stores them.
type LineDraft struct {
	SourceType  string
	SourceID    string
	Description string

	Qty    decimal.Decimal
	Rate   decimal.Decimal
	Amount decimal.Decimal

	RouteDate *time.Time
	ZoneID    *uuid.UUID
}

// ComputeInput is everything the computer needs for one driver in one period:
// the rate resolved at the period start, the driver's eligible routes, and the
// warehouse payroll config (nil when no active config exists).
type ComputeInput struct {
	Rate   driverrate.DriverRate
	Routes []route.CompletedRoute
	Config *payrollconfig.PayrollConfig
}

type ComputeResult struct {
	Lines   []LineDraft
	Gross   decimal.Decimal
	Metrics payrollconfig.PeriodMetrics
}

// baseLine produces the route's primary earning line for a rate type:
// quantity, unit rate, and amount. A zero quantity yields no line.
var baseLine = map[string]func(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string){
	driverrate.RateTypePerRoute: func(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string) {
		return decimal.NewFromInt(1), rate.BaseAmount, "Route completed"
	},
	driverrate.RateTypePerStop: func(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string) {
		return decimal.NewFromInt(int64(rt.DeliveryStops)), rate.BaseAmount, "Delivery stops"
	},
	driverrate.RateTypePerPackage: func(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string) {
		return decimal.NewFromInt(int64(rt.PackageVolume)), rate.BaseAmount, "Packages delivered"
	},
	driverrate.RateTypePerMile: func(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string) {
		return rt.DistanceMiles, rate.BaseAmount, "Miles driven"
	},
	driverrate.RateTypeHourly: func(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string) {
		return rt.HoursWorked, rate.BaseAmount, "Hours worked"
	},
	driverrate.RateTypeMixed: func(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string) {
		return decimal.NewFromInt(1), rate.BaseAmount, "Route base pay"
	},
}

// ComputePayLines turns one driver's routes into itemized pay lines. It is
// pure: no clock, no storage, deterministic for a given input. Per-route
// lines come first in route order, period-level bonus lines last.
func ComputePayLines(in ComputeInput) ComputeResult {
	var (
		result    ComputeResult
		penalties []int // indexes of penalty lines, for the weekly cap
	)

	for _, rt := range in.Routes {
		result.Metrics.RoutesCompleted++
		result.Metrics.StopsDelivered += rt.DeliveryStops
		result.Metrics.PackagesMoved += rt.PackageVolume
		result.Metrics.FailedStops += rt.CNLCount
		if rt.IsNightRoute {
			result.Metrics.NightRoutes++
		}

		routeDate := rt.RouteDate
		appendLine := func(d LineDraft) {
			d.SourceID = rt.ID.String()
			d.RouteDate = &routeDate
			d.ZoneID = rt.ZoneID
			result.Lines = append(result.Lines, d)
		}

		if qty, unit, desc := baseLineFor(in.Rate, rt); qty.IsPositive() {
			amount := qty.Mul(unit)
			if in.Rate.RateType == driverrate.RateTypePerStop &&
				in.Rate.MinPayPerRoute != nil && amount.LessThan(*in.Rate.MinPayPerRoute) {
				amount = *in.Rate.MinPayPerRoute
				desc += " (minimum pay applied)"
			}
			appendLine(LineDraft{
				SourceType:  SourceTypeRoute,
				Description: desc,
				Qty:         qty,
				Rate:        unit,
				Amount:      amount,
			})
		}

		if in.Rate.OverStopBonusThreshold != nil && in.Rate.OverStopBonusPerStop != nil &&
			rt.DeliveryStops > *in.Rate.OverStopBonusThreshold {
			extra := decimal.NewFromInt(int64(rt.DeliveryStops - *in.Rate.OverStopBonusThreshold))
			appendLine(LineDraft{
				SourceType:  SourceTypeBonus,
				Description: fmt.Sprintf("Over-stop bonus above %d stops", *in.Rate.OverStopBonusThreshold),
				Qty:         extra,
				Rate:        *in.Rate.OverStopBonusPerStop,
				Amount:      extra.Mul(*in.Rate.OverStopBonusPerStop),
			})
		}

		if in.Rate.RescueStopRate != nil && rt.RescueStops > 0 {
			qty := decimal.NewFromInt(int64(rt.RescueStops))
			appendLine(LineDraft{
				SourceType:  SourceTypeRoute,
				Description: "Rescue stops",
				Qty:         qty,
				Rate:        *in.Rate.RescueStopRate,
				Amount:      qty.Mul(*in.Rate.RescueStopRate),
			})
		}

		if in.Rate.NightDeliveryBonus != nil && rt.IsNightRoute {
			appendLine(LineDraft{
				SourceType:  SourceTypeBonus,
				Description: "Night route bonus",
				Qty:         decimal.NewFromInt(1),
				Rate:        *in.Rate.NightDeliveryBonus,
				Amount:      *in.Rate.NightDeliveryBonus,
			})
		}

		if penaltiesEnabled(in.Config) && in.Rate.FailedStopPenalty != nil && rt.CNLCount > 0 {
			qty := decimal.NewFromInt(int64(rt.CNLCount))
			penalties = append(penalties, len(result.Lines))
			appendLine(LineDraft{
				SourceType:  SourceTypePenalty,
				Description: "Failed stops (CNL)",
				Qty:         qty,
				Rate:        in.Rate.FailedStopPenalty.Neg(),
				Amount:      qty.Mul(*in.Rate.FailedStopPenalty).Neg(),
			})
		}

		if in.Config != nil && in.Config.EnableWeightExtra {
			extra := decimal.Zero
			matched := 0
			for _, pkg := range rt.Packages {
				if amt := payrollconfig.WeightExtra(pkg.WeightKg, in.Config.WeightRules); amt.IsPositive() {
					extra = extra.Add(amt)
					matched++
				}
			}
			if extra.IsPositive() {
				appendLine(LineDraft{
					SourceType:  SourceTypeWeight,
					Description: fmt.Sprintf("Heavy package extra (%d packages)", matched),
					Qty:         decimal.NewFromInt(1),
					Rate:        extra,
					Amount:      extra,
				})
			}
		}
	}

	// Period-level rule evaluation. FAILED_STOP penalty rules apply only
	// when the rate carries no failed-stop terms of its own, so a driver is
	// never charged twice for the same CNL.
	if in.Config != nil && penaltiesEnabled(in.Config) && in.Rate.FailedStopPenalty == nil {
		for _, rule := range in.Config.PenaltyRules {
			if rule.Type != payrollconfig.PenaltyTypeFailedStop {
				continue
			}
			amt := payrollconfig.PenaltyAmount(result.Metrics.FailedStops, rule)
			if !amt.IsPositive() {
				continue
			}
			// Qty is the charged occurrence count (the rule may cap it below
			// the observed failed stops), so amount stays qty x rate.
			qty := decimal.NewFromInt(1)
			unit := amt.Neg()
			if rule.ApplyPerOccurrence {
				qty = amt.Div(rule.Amount)
				unit = rule.Amount.Neg()
			}
			penalties = append(penalties, len(result.Lines))
			result.Lines = append(result.Lines, LineDraft{
				SourceType:  SourceTypePenalty,
				SourceID:    rule.ID.String(),
				Description: "Failed stops (CNL)",
				Qty:         qty,
				Rate:        unit,
				Amount:      amt.Neg(),
			})
		}
	}

	if in.Config != nil && in.Config.EnableBonuses {
		for _, rule := range in.Config.BonusRules {
			metric := payrollconfig.MetricFor(rule.Type, result.Metrics)
			amt := payrollconfig.BonusAmount(metric, rule)
			if !amt.IsPositive() {
				continue
			}
			result.Lines = append(result.Lines, LineDraft{
				SourceType:  SourceTypeBonus,
				SourceID:    rule.ID.String(),
				Description: fmt.Sprintf("Bonus: %s", rule.Type),
				Qty:         decimal.NewFromInt(1),
				Rate:        amt,
				Amount:      amt,
			})
		}
	}

	if in.Config != nil && in.Config.PenaltyCapPerWeek != nil {
		capPenalties(result.Lines, penalties, *in.Config.PenaltyCapPerWeek)
	}

	for _, line := range result.Lines {
		result.Gross = result.Gross.Add(line.Amount)
	}
	return result
}

func baseLineFor(rate driverrate.DriverRate, rt route.CompletedRoute) (decimal.Decimal, decimal.Decimal, string) {
	fn, ok := baseLine[rate.RateType]
	if !ok {
		return decimal.Zero, decimal.Zero, ""
	}
	return fn(rate, rt)
}

func penaltiesEnabled(cfg *payrollconfig.PayrollConfig) bool {
	return cfg != nil && cfg.EnablePenalties
}

// capPenalties bounds the total penalty magnitude: lines are clamped in
// emission order, so later penalties shrink to zero once the cap is spent.
func capPenalties(lines []LineDraft, penaltyIdx []int, weeklyCap decimal.Decimal) {
	if weeklyCap.IsNegative() {
		return
	}
	remaining := weeklyCap
	for _, i := range penaltyIdx {
		magnitude := lines[i].Amount.Neg()
		if magnitude.GreaterThan(remaining) {
			lines[i].Amount = remaining.Neg()
			if remaining.IsZero() {
				lines[i].Description += " (capped)"
			} else {
				lines[i].Description += " (weekly cap applied)"
			}
			remaining = decimal.Zero
			continue
		}
		remaining = remaining.Sub(magnitude)
	}
}
