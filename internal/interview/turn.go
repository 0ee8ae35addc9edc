package interview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ai-interviewer/internal/ai"
	"github.com/spigell/ai-interviewer/internal/classify"
	"github.com/spigell/ai-interviewer/internal/logger"
)

// Spoken lines used by the turn and session control flow.
const (
	ClarifyUncertainLine = "Could you take a guess or share any related thoughts?"
	ClarifyShortLine     = "Could you elaborate a little more?"
	FollowUpCapLine      = "Thanks! Let's move to the next question."
	OutOfTimeLine        = "We're out of time for this interview. Thank you so much!"

	summaryUnavailable = "Summary unavailable."
)

const (
	DefaultTimeBudget   = 5 * time.Minute
	DefaultMaxFollowUps = 1
)

// Voice is the speech collaborator. Speak is fire-and-forget; Transcribe
// blocks until speech is captured and returns an empty string on
// silence or timeout.
type Voice interface {
	Speak(ctx context.Context, text string) error
	Transcribe(ctx context.Context) (string, error)
}

// RetryPrompt asks the operator whether to listen once more after silence.
type RetryPrompt func(question string) bool

// Deps aggregates the collaborators shared by the turn and session logic.
type Deps struct {
	Voice      Voice
	Evaluator  ai.Evaluator
	Summarizer ai.Summarizer
	Retry      RetryPrompt
	Logger     *zap.Logger
}

// Config bounds a session and its turns.
type Config struct {
	TimeBudget   time.Duration
	MaxFollowUps int
	MinWords     int
}

func (c *Config) withDefaults() *Config {
	cfg := Config{}
	if c != nil {
		cfg = *c
	}
	if cfg.TimeBudget <= 0 {
		cfg.TimeBudget = DefaultTimeBudget
	}
	if cfg.MaxFollowUps <= 0 {
		cfg.MaxFollowUps = DefaultMaxFollowUps
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = classify.DefaultMinWords
	}
	return &cfg
}

// Turn drives the full exchange for one question: response collection, a
// single operator-confirmed retry on silence, one clarification on uncertain
// or too-short answers, and the bounded follow-up loop.
type Turn struct {
	cfg  *Config
	deps Deps
}

func NewTurn(cfg *Config, deps Deps) *Turn {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Turn{cfg: cfg.withDefaults(), deps: deps}
}

// Run conducts the exchange. A nil result means the question was skipped after
// repeated silence and must not appear in the session results.
func (t *Turn) Run(ctx context.Context, question string) *QuestionResult {
	log := logger.WithFields(t.deps.Logger, zap.String(logger.FieldQuestion, question))

	t.speak(ctx, question)
	response := t.listen(ctx)

	if classify.IsEmpty(response) {
		log.Info("no speech detected")

		if t.deps.Retry == nil || !t.deps.Retry(question) {
			log.Info("skipping question", zap.String("reason", "operator declined retry"))
			return nil
		}

		response = t.listen(ctx)
		if classify.IsEmpty(response) {
			log.Info("skipping question", zap.String("reason", "still silent after retry"))
			return nil
		}
	}

	switch {
	case classify.IsUncertain(response):
		log.Info("candidate expressed uncertainty, asking for a guess")
		t.speak(ctx, ClarifyUncertainLine)
		response = t.listen(ctx)
	case classify.IsTooShort(response, t.cfg.MinWords):
		log.Info("response too short, asking to elaborate")
		t.speak(ctx, ClarifyShortLine)
		response = t.listen(ctx)
	}

	return t.evaluate(ctx, log, question, response)
}

// evaluate runs the bounded follow-up loop and finalizes the result. The
// score and comment are pinned on the first verdict; later evaluations only
// decide whether another exchange happens.
func (t *Turn) evaluate(ctx context.Context, log *zap.Logger, question, response string) *QuestionResult {
	result := &QuestionResult{Question: question, Answer: response}
	scored := false
	followUps := 0

	for {
		verdict := t.deps.Evaluator.Evaluate(ctx, question, result.Answer)

		if !scored {
			result.Score = verdict.Score
			result.Comment = verdict.Comment
			scored = true
		}

		if verdict.FollowUp == "" {
			t.speak(ctx, verdict.Comment)
			break
		}

		if followUps >= t.cfg.MaxFollowUps {
			log.Info("follow-up limit reached, moving on", zap.Int("limit", t.cfg.MaxFollowUps))
			t.speak(ctx, FollowUpCapLine)
			break
		}

		followUps++
		result.FollowUp = verdict.FollowUp
		t.speak(ctx, verdict.FollowUp)
		result.Answer += " " + t.listen(ctx)
	}

	summary, err := t.deps.Summarizer.Summarize(ctx, question, result.Answer)
	if err != nil {
		log.Warn("summarization failed", zap.Error(err))
		summary = summaryUnavailable
	}
	result.Summary = summary

	log.Info("turn finalized",
		zap.Int("score", result.Score),
		zap.Int("follow_ups", followUps),
	)

	return result
}

func (t *Turn) speak(ctx context.Context, text string) {
	if text == "" {
		return
	}
	if err := t.deps.Voice.Speak(ctx, text); err != nil {
		t.deps.Logger.Warn("speech output failed", zap.Error(err))
	}
}

// listen degrades any transcription failure to an empty response, which the
// classifier treats as silence.
func (t *Turn) listen(ctx context.Context) string {
	text, err := t.deps.Voice.Transcribe(ctx)
	if err != nil {
		t.deps.Logger.Warn("transcription failed", zap.Error(err))
		return ""
	}
	return text
}
