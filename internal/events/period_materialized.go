package events

import "time"

const PayrollPeriodMaterializedTopic = "fleet.payroll.period.materialized.v1"

type PayrollPeriodMaterializedEvent struct {
	EventType   string    `json:"event_type"`
	PayPeriodID string    `json:"pay_period_id"`
	CompanyID   string    `json:"company_id"`
	Computed    int       `json:"computed"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
