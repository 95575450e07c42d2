package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

const sheetName = "Aggregates"

// WriteWorkbook saves the aggregate rows as a single-sheet xlsx workbook.
func WriteWorkbook(path string, rows []domain.AggregateRow) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // best-effort cleanup

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{
		"Category", "Record count", "Fatalities", "Injuries",
		"Property damage (USD)", "Crop damage (USD)", "Total cost (USD)", "Casualty rate",
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			string(row.Category), row.RecordCount, row.Fatalities, row.Injuries,
			row.PropDamageUSD, row.CropDamageUSD, row.TotalCostUSD, row.CasualtyRate,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
