package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/daeun-lee/hakwonlog/internal/record"
	"github.com/daeun-lee/hakwonlog/internal/week"
)

const (
	pdfMargin     = 18.0
	pdfLineHeight = 6.0
	pdfBreakY     = 270.0
	pdfCellRunes  = 25
)

// PDF renders the weekly student summary document for one week: a
// four-column table with one row per student, paginated on A4. The
// reason and issue columns come from the curated studentSummary
// overlay, not the per-entry notes aggregation; the average comes from
// the aggregator.
func PDF(weekKey string, rec record.WeekRecord) ([]byte, error) {
	rec = record.Normalize(rec)
	label := week.Label(weekKey)
	if label == "" {
		label = weekKey
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	y := pdfMargin

	doc.SetFont("Helvetica", "", 16)
	doc.Text(pdfMargin, y, label+" 학생 주간 요약")
	y += pdfLineHeight * 2

	writeHeader := func() {
		doc.SetFont("Helvetica", "B", 11)
		doc.Text(pdfMargin, y, "학생 이름")
		doc.Text(pdfMargin+45, y, "숙제 평균(%)")
		doc.Text(pdfMargin+85, y, "100% 미만 사유")
		doc.Text(pdfMargin+135, y, "이번 주 이슈")
		y += pdfLineHeight
		doc.SetFont("Helvetica", "", 11)
	}
	writeHeader()

	for _, name := range record.StudentNames(rec) {
		avg := record.StudentAverage(rec, name, record.WeekScope())
		avgText := "-"
		if avg != nil {
			avgText = fmt.Sprintf("%d%%", *avg)
		}
		entry := rec.StudentSummary[name]

		doc.Text(pdfMargin, y, name)
		doc.Text(pdfMargin+45, y, avgText)
		doc.Text(pdfMargin+85, y, truncateRunes(entry.ReasonBelow100, pdfCellRunes))
		doc.Text(pdfMargin+135, y, truncateRunes(entry.WeeklyIssue, pdfCellRunes))
		y += pdfLineHeight

		if y > pdfBreakY {
			doc.AddPage()
			y = pdfMargin
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// truncateRunes caps s at n runes, matching the fixed column widths.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
