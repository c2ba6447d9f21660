package payrollconfig

import "github.com/shopspring/decimal"

type CreateConfigRequest struct {
	WarehouseID          string           `json:"warehouse_id" binding:"required,uuid"`
	EnableWeightExtra    bool             `json:"enable_weight_extra"`
	EnablePenalties      bool             `json:"enable_penalties"`
	EnableBonuses        bool             `json:"enable_bonuses"`
	DefaultPenaltyAmount decimal.Decimal  `json:"default_penalty_amount"`
	PenaltyCapPerWeek    *decimal.Decimal `json:"penalty_cap_per_week"`
	IsActive             *bool            `json:"is_active"`
}

type UpdateConfigRequest struct {
	EnableWeightExtra    bool             `json:"enable_weight_extra"`
	EnablePenalties      bool             `json:"enable_penalties"`
	EnableBonuses        bool             `json:"enable_bonuses"`
	DefaultPenaltyAmount decimal.Decimal  `json:"default_penalty_amount"`
	PenaltyCapPerWeek    *decimal.Decimal `json:"penalty_cap_per_week"`
	IsActive             *bool            `json:"is_active"`
}

type CreateWeightRuleRequest struct {
	MinWeight   decimal.Decimal  `json:"min_weight"`
	MaxWeight   *decimal.Decimal `json:"max_weight"`
	ExtraAmount decimal.Decimal  `json:"extra_amount"`
	Priority    int              `json:"priority"`
	IsActive    *bool            `json:"is_active"`
}

type CreatePenaltyRuleRequest struct {
	Type                  string          `json:"type" binding:"required"`
	Amount                decimal.Decimal `json:"amount"`
	ApplyPerOccurrence    bool            `json:"apply_per_occurrence"`
	MaxOccurrencesPerWeek *int            `json:"max_occurrences_per_week"`
	IsActive              *bool            `json:"is_active"`
}

type CreateBonusRuleRequest struct {
	Type      string           `json:"type" binding:"required"`
	Threshold *decimal.Decimal `json:"threshold"`
	Amount    decimal.Decimal  `json:"amount"`
	IsActive  *bool            `json:"is_active"`
}

type WeightRuleResponse struct {
	ID          string           `json:"id"`
	MinWeight   decimal.Decimal  `json:"min_weight"`
	MaxWeight   *decimal.Decimal `json:"max_weight,omitempty"`
	ExtraAmount decimal.Decimal  `json:"extra_amount"`
	Priority    int              `json:"priority"`
	IsActive    bool             `json:"is_active"`
}

type PenaltyRuleResponse struct {
	ID                    string          `json:"id"`
	Type                  string          `json:"type"`
	Amount                decimal.Decimal `json:"amount"`
	ApplyPerOccurrence    bool            `json:"apply_per_occurrence"`
	MaxOccurrencesPerWeek *int            `json:"max_occurrences_per_week,omitempty"`
	IsActive              bool            `json:"is_active"`
}

type BonusRuleResponse struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	Threshold *decimal.Decimal `json:"threshold,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
	IsActive  bool             `json:"is_active"`
}

type ConfigResponse struct {
	ID                   string                `json:"id"`
	CompanyID            string                `json:"company_id"`
	WarehouseID          string                `json:"warehouse_id"`
	EnableWeightExtra    bool                  `json:"enable_weight_extra"`
	EnablePenalties      bool                  `json:"enable_penalties"`
	EnableBonuses        bool                  `json:"enable_bonuses"`
	DefaultPenaltyAmount decimal.Decimal       `json:"default_penalty_amount"`
	PenaltyCapPerWeek    *decimal.Decimal      `json:"penalty_cap_per_week,omitempty"`
	IsActive             bool                  `json:"is_active"`
	WeightRules          []WeightRuleResponse  `json:"weight_rules"`
	PenaltyRules         []PenaltyRuleResponse `json:"penalty_rules"`
	BonusRules           []BonusRuleResponse   `json:"bonus_rules"`
}

func mapToResponse(cfg PayrollConfig) ConfigResponse {
	resp := ConfigResponse{
		ID:                   cfg.ID.String(),
		CompanyID:            cfg.CompanyID.String(),
		WarehouseID:          cfg.WarehouseID.String(),
		EnableWeightExtra:    cfg.EnableWeightExtra,
		EnablePenalties:      cfg.EnablePenalties,
		EnableBonuses:        cfg.EnableBonuses,
		DefaultPenaltyAmount: cfg.DefaultPenaltyAmount,
		PenaltyCapPerWeek:    cfg.PenaltyCapPerWeek,
		IsActive:             cfg.IsActive,
		WeightRules:          make([]WeightRuleResponse, 0, len(cfg.WeightRules)),
		PenaltyRules:         make([]PenaltyRuleResponse, 0, len(cfg.PenaltyRules)),
		BonusRules:           make([]BonusRuleResponse, 0, len(cfg.BonusRules)),
	}

	for _, r := range cfg.WeightRules {
		resp.WeightRules = append(resp.WeightRules, WeightRuleResponse{
			ID:          r.ID.String(),
			MinWeight:   r.MinWeight,
			MaxWeight:   r.MaxWeight,
			ExtraAmount: r.ExtraAmount,
			Priority:    r.Priority,
			IsActive:    r.IsActive,
		})
	}
	for _, r := range cfg.PenaltyRules {
		resp.PenaltyRules = append(resp.PenaltyRules, PenaltyRuleResponse{
			ID:                    r.ID.String(),
			Type:                  r.Type,
			Amount:                r.Amount,
			ApplyPerOccurrence:    r.ApplyPerOccurrence,
			MaxOccurrencesPerWeek: r.MaxOccurrencesPerWeek,
			IsActive:              r.IsActive,
		})
	}
	for _, r := range cfg.BonusRules {
		resp.BonusRules = append(resp.BonusRules, BonusRuleResponse{
			ID:        r.ID.String(),
			Type:      r.Type,
			Threshold: r.Threshold,
			Amount:    r.Amount,
			IsActive:  r.IsActive,
		})
	}

	return resp
}
