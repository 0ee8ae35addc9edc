package report

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/ai-interviewer/internal/interview"
)

func sampleResults() *interview.Results {
	results := &interview.Results{}
	results.Append(&interview.QuestionResult{
		Question: "Tell me about your Go experience",
		Answer:   "I built services in Go for five years",
		Score:    8,
		Comment:  "Strong answer.",
		FollowUp: "Which service are you most proud of?",
		Summary:  "The candidate has long production Go experience.",
	})
	results.Append(&interview.QuestionResult{
		Question: "How do you test concurrent code?",
		Answer:   "With the race detector and careful synchronization",
		Score:    6,
		Comment:  "Reasonable.",
		Summary:  "The candidate relies on the race detector.",
	})
	return results
}

func TestRendererWritesReport(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "report.pdf")
	renderer := NewRenderer(filename, zap.NewNop())

	if err := renderer.Render(sampleResults(), "Jane Doe", 7.0, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("expected report file: %v", err)
	}

	if info.Size() == 0 {
		t.Fatal("expected non-empty report file")
	}
}

func TestRendererHandlesEmptyResults(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.pdf")
	renderer := NewRenderer(filename, zap.NewNop())

	if err := renderer.Render(&interview.Results{}, "Jane Doe", 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filename); err != nil {
		t.Fatalf("expected report file even without answers: %v", err)
	}
}

func TestRendererDefaultFilename(t *testing.T) {
	renderer := NewRenderer("", nil)
	if renderer.Filename() != DefaultFilename {
		t.Fatalf("unexpected default filename: %q", renderer.Filename())
	}
}
