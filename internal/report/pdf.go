// Package report renders the final interview report as a PDF document.
package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/spigell/ai-interviewer/internal/interview"
)

const DefaultFilename = "interview_report.pdf"

var now = time.Now

type Renderer struct {
	filename string
	logger   *zap.Logger
}

func NewRenderer(filename string, logger *zap.Logger) *Renderer {
	if filename == "" {
		filename = DefaultFilename
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{filename: filename, logger: logger}
}

func (r *Renderer) Filename() string {
	return r.filename
}

// Render writes the report to the configured file. When scored is false the
// overall score is printed as unavailable instead of a number.
func (r *Renderer) Render(results *interview.Results, candidate string, avgScore float64, scored bool) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Candidate Interview Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(100, 10, fmt.Sprintf("Candidate: %s", candidate), "", 1, "", false, 0, "")
	pdf.CellFormat(100, 10, fmt.Sprintf("Date: %s", now().Format("January 2, 2006")), "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	overall := "Overall Score: unavailable (no answers recorded)"
	if scored {
		overall = fmt.Sprintf("Overall Score: %.2f/10", avgScore)
	}
	pdf.CellFormat(100, 10, overall, "", 1, "", false, 0, "")
	pdf.Ln(8)

	for i, result := range results.Items {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 128)
		pdf.MultiCell(0, 10, fmt.Sprintf("Q%d: %s", i+1, result.Question), "", "", false)

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 10, fmt.Sprintf("Answer: %s", result.Answer), "", "", false)
		pdf.CellFormat(0, 10, fmt.Sprintf("Score: %d/10", result.Score), "", 1, "", false, 0, "")
		pdf.MultiCell(0, 10, fmt.Sprintf("Comment: %s", result.Comment), "", "", false)

		pdf.SetTextColor(105, 105, 105)
		pdf.MultiCell(0, 10, fmt.Sprintf("Summary: %s", result.Summary), "", "", false)
		pdf.SetTextColor(0, 0, 0)

		if result.FollowUp != "" {
			pdf.SetTextColor(34, 139, 34)
			pdf.MultiCell(0, 10, fmt.Sprintf("Follow-up: %s", result.FollowUp), "", "", false)
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.Ln(5)
	}

	if err := pdf.OutputFileAndClose(r.filename); err != nil {
		return fmt.Errorf("writing report to %q: %w", r.filename, err)
	}

	r.logger.Info("report saved",
		zap.String("filename", r.filename),
		zap.Int("questions", results.Len()),
	)

	return nil
}
