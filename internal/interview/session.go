package interview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ai-interviewer/internal/logger"
)

const (
	greetingLine   = "Hi there! I'm your AI interviewer for today. How are you feeling before we get started?"
	transitionLine = "Great! Let's begin with your interview questions."
)

var now = time.Now

// Session drives one interview end to end: questions are dispatched in order
// through turns, the wall-clock budget is checked between questions, and the
// results are accumulated in ask order.
type Session struct {
	cfg  *Config
	deps Deps
}

func NewSession(cfg *Config, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Session{cfg: cfg.withDefaults(), deps: deps}
}

// Greet warms the candidate up before the questions. The greeting response is
// collected and logged but never scored.
func (s *Session) Greet(ctx context.Context) {
	turn := NewTurn(s.cfg, s.deps)

	turn.speak(ctx, greetingLine)

	response := turn.listen(ctx)
	s.deps.Logger.Info("greeting response", zap.String("response", response))

	turn.speak(ctx, transitionLine)
}

// Run asks the questions in order until the list or the time budget is
// exhausted. Skipped questions leave no trace in the results.
func (s *Session) Run(ctx context.Context, questions []string) *Results {
	start := now()
	results := &Results{}

	for i, question := range questions {
		elapsed := now().Sub(start)
		if elapsed > s.cfg.TimeBudget {
			s.deps.Logger.Info("time budget reached, ending early",
				zap.Duration("elapsed", elapsed),
				zap.Duration("budget", s.cfg.TimeBudget),
				zap.Int("questions_asked", i),
				zap.Int("questions_dropped", len(questions)-i),
			)
			NewTurn(s.cfg, s.deps).speak(ctx, OutOfTimeLine)
			break
		}

		s.deps.Logger.Info("asking question",
			zap.Int("number", i+1),
			zap.Int("total", len(questions)),
			zap.String(logger.FieldQuestion, question),
		)

		result := NewTurn(s.cfg, s.deps).Run(ctx, question)
		if result == nil {
			continue
		}

		results.Append(result)
	}

	if avg, ok := results.Average(); ok {
		s.deps.Logger.Info("session finished",
			zap.Int("answers", results.Len()),
			zap.Float64("average_score", avg),
		)
	} else {
		s.deps.Logger.Warn("session finished with no answers recorded")
	}

	return results
}
