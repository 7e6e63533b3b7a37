// Package export renders weekly student summaries to spreadsheet and
// PDF form. It is a consumer of the aggregator: all numbers and text
// come from internal/record, this package only lays them out.
package export

import (
	"strings"

	"github.com/daeun-lee/hakwonlog/internal/record"
	"github.com/daeun-lee/hakwonlog/internal/week"
)

// SummaryRow is one student's line in an exported weekly summary. A nil
// Avg means the student had no numeric scores in scope; the renderers
// decide how to print that.
type SummaryRow struct {
	Name           string `json:"name"`
	Avg            *int   `json:"avg"`
	ReasonBelow100 string `json:"reasonBelow100"`
	WeeklyIssue    string `json:"weeklyIssue"`
}

// Rows derives summary rows from the per-entry aggregation for one
// scope: one row per distinct student name, sorted ascending.
func Rows(rec record.WeekRecord, scope record.Scope) []SummaryRow {
	names := record.StudentNamesIn(rec, scope)
	rows := make([]SummaryRow, 0, len(names))
	for _, name := range names {
		notes := record.StudentNotes(rec, name, scope)
		rows = append(rows, SummaryRow{
			Name:           name,
			Avg:            record.StudentAverage(rec, name, scope),
			ReasonBelow100: notes.ReasonBelow100,
			WeeklyIssue:    notes.WeeklyIssue,
		})
	}
	return rows
}

// ExcelFilename returns the download filename for a week's workbook.
func ExcelFilename(weekKey string) string {
	return filenameBase(weekKey) + ".xlsx"
}

// PDFFilename returns the download filename for a week's summary
// document.
func PDFFilename(weekKey string) string {
	return filenameBase(weekKey) + ".pdf"
}

func filenameBase(weekKey string) string {
	label := week.Label(weekKey)
	if label == "" {
		label = weekKey
	}
	return strings.ReplaceAll(label, " ", "_") + "_학생주간요약"
}
