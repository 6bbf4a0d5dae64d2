package reports

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// WriteEvaluationPDF renders a one-page evaluation summary straight to w so
// handlers can stream it without touching disk.
func (s *Service) WriteEvaluationPDF(ctx context.Context, w io.Writer, tenantID, evaluationID string) error {
	sum, err := s.Store.EvaluationSummary(ctx, tenantID, evaluationID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Evaluation Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", sum.EmployeeName))
	pdf.Ln(7)
	if sum.Position != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", sum.Position))
		pdf.Ln(7)
	}
	if sum.Department != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", sum.Department))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s (ends %s)", sum.CycleName, sum.CycleEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Type: %s", sum.Type))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Category scores")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)

	categories := make([]string, 0, len(sum.SubScores))
	for cat := range sum.SubScores {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %.1f", cat, sum.SubScores[cat]))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	if sum.Composite != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Composite score: %.1f", *sum.Composite))
	} else {
		pdf.Cell(0, 8, "Composite score: not finalized")
	}

	return pdf.Output(w)
}
