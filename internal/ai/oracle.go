// Package ai defines the provider-neutral contracts for the language-model
// collaborators used during an interview.
package ai

import "context"

// Verdict is the structured outcome of one answer evaluation. FollowUp is
// empty when no further exchange is requested.
type Verdict struct {
	Score    int
	Comment  string
	FollowUp string
}

// Evaluator scores a candidate answer. Implementations must always return a
// usable verdict: provider failures and malformed replies are absorbed into a
// deterministic fallback, never surfaced to the turn.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string) *Verdict
}

// Summarizer produces a short neutral summary of a candidate answer. Unlike
// Evaluate, a failure is returned to the caller.
type Summarizer interface {
	Summarize(ctx context.Context, question, answer string) (string, error)
}

// Preparer covers the pre-session oracle calls: distilling a job description
// into requirements and generating the ordered question list.
type Preparer interface {
	ExtractRequirements(ctx context.Context, jobDescription string) (string, error)
	GenerateQuestions(ctx context.Context, requirements, resume string) ([]string, error)
}
