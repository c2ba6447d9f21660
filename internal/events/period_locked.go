package events

import "time"

const PayrollPeriodLockedTopic = "fleet.payroll.period.locked.v1"

type PayrollPeriodLockedEvent struct {
	EventType   string    `json:"event_type"`
	PayPeriodID string    `json:"pay_period_id"`
	CompanyID   string    `json:"company_id"`
	LockedBy    string    `json:"locked_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
