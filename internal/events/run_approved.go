package events

import "time"

const PayrollRunApprovedTopic = "fleet.payroll.run.approved.v1"

type PayrollRunApprovedEvent struct {
	EventType   string    `json:"event_type"`
	PayRunID    string    `json:"pay_run_id"`
	PayPeriodID string    `json:"pay_period_id"`
	CompanyID   string    `json:"company_id"`
	DriverID    string    `json:"driver_id"`
	NetAmount   string    `json:"net_amount"`
	ApprovedBy  string    `json:"approved_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
