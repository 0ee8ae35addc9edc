package voice

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultPhraseLimit bounds the maximum duration of one captured answer.
const DefaultPhraseLimit = 15 * time.Second

// SystemConfig describes the external commands the System voice shells out to.
type SystemConfig struct {
	// SpeakCommand synthesizes and plays its final argument, e.g.
	// ["espeak"] or ["say"].
	SpeakCommand []string
	// ListenCommand captures one phrase from the microphone and writes the
	// transcript to stdout.
	ListenCommand []string
	// ListenTimeout is the wait for speech to start; PhraseLimit caps one
	// answer. Together they bound a Transcribe call.
	ListenTimeout time.Duration
	PhraseLimit   time.Duration
}

// System drives external speech tools, the same way the usual audio stacks are
// wired on a workstation: one command to play a line, one to capture and
// transcribe a phrase.
type System struct {
	cfg    *SystemConfig
	logger *zap.Logger
}

func NewSystem(cfg *SystemConfig, logger *zap.Logger) (*System, error) {
	if cfg == nil || len(cfg.SpeakCommand) == 0 || len(cfg.ListenCommand) == 0 {
		return nil, errors.New("speak and listen commands are required for system voice")
	}

	if cfg.ListenTimeout <= 0 {
		cfg.ListenTimeout = DefaultListenTimeout
	}

	if cfg.PhraseLimit <= 0 {
		cfg.PhraseLimit = DefaultPhraseLimit
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &System{cfg: cfg, logger: logger}, nil
}

func (s *System) Speak(ctx context.Context, text string) error {
	args := append([]string{}, s.cfg.SpeakCommand[1:]...)
	args = append(args, text)

	if err := exec.CommandContext(ctx, s.cfg.SpeakCommand[0], args...).Run(); err != nil {
		return fmt.Errorf("speak command: %w", err)
	}

	return nil
}

// Transcribe runs the capture command within the bounded listen window and
// returns its stdout. An elapsed window is silence, not an error.
func (s *System) Transcribe(ctx context.Context) (string, error) {
	window := s.cfg.ListenTimeout + s.cfg.PhraseLimit
	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	out, err := exec.CommandContext(ctx, s.cfg.ListenCommand[0], s.cfg.ListenCommand[1:]...).Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.logger.Debug("listen window elapsed, treating as silence", zap.Duration("window", window))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("listen command: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}
