package payrun

import (
	"bytes"
	"context"
	"encoding/csv"
)

var csvHeader = []string{"section", "source_type", "source_id", "description", "quantity", "rate", "amount"}

// ExportRunCSV renders a run as a payout statement: earning lines, then
// adjustments, then the gross/adjustments/net totals.
func (s *service) ExportRunCSV(ctx context.Context, companyID, runID string) ([]byte, error) {
	run, err := s.findRun(ctx, companyID, runID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, line := range run.Lines {
		record := []string{
			"earnings",
			line.SourceType,
			line.SourceID,
			line.Description,
			line.Qty.StringFixed(2),
			line.Rate.StringFixed(2),
			line.Amount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	for _, adj := range run.AdjustmentEntries {
		record := []string{
			"adjustments",
			SourceTypeManual,
			adj.ID.String(),
			adj.Type + ": " + adj.Reason,
			"1.00",
			adj.Amount.StringFixed(2),
			adj.Amount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	totals := [][]string{
		{"totals", "", "", "Gross", "", "", run.GrossAmount.StringFixed(2)},
		{"totals", "", "", "Adjustments", "", "", run.Adjustments.StringFixed(2)},
		{"totals", "", "", "Net", "", "", run.NetAmount.StringFixed(2)},
	}
	for _, record := range totals {
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
