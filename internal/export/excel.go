package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "학생주간요약"

var excelHeaders = []any{"학생 이름", "숙제 평균(%)", "100% 미만 사유", "이번 주 이슈"}

// Excel builds the weekly summary workbook: one sheet, Korean headers,
// one row per student. A nil average is exported as the literal 0 and
// empty text columns as "-", matching the sheet layout users already
// pass around. An empty row set produces a single placeholder row.
func Excel(weekKey string, rows []SummaryRow) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), excelSheet); err != nil {
		return nil, fmt.Errorf("naming summary sheet: %w", err)
	}
	if err := f.SetSheetRow(excelSheet, "A1", &excelHeaders); err != nil {
		return nil, fmt.Errorf("writing header row: %w", err)
	}

	if len(rows) == 0 {
		rows = []SummaryRow{{Name: "데이터 없음", ReasonBelow100: "-", WeeklyIssue: "-"}}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("locating row %d: %w", i+2, err)
		}
		avg := 0
		if row.Avg != nil {
			avg = *row.Avg
		}
		values := []any{row.Name, avg, orDash(row.ReasonBelow100), orDash(row.WeeklyIssue)}
		if err := f.SetSheetRow(excelSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return f, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
