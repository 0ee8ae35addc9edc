// Package voice provides implementations of the interview speech collaborator:
// a stdio-based console mode and a mode driving external audio commands.
package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultListenTimeout bounds the wait for speech (or typing) to start.
const DefaultListenTimeout = 5 * time.Second

// Console implements the speech collaborator over stdio: spoken lines are
// printed and answers are typed. Used when no audio toolchain is configured.
type Console struct {
	out     io.Writer
	lines   chan string
	timeout time.Duration
	logger  *zap.Logger
}

func NewConsole(in io.Reader, out io.Writer, listenTimeout time.Duration, logger *zap.Logger) *Console {
	if listenTimeout <= 0 {
		listenTimeout = DefaultListenTimeout
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return &Console{
		out:     out,
		lines:   lines,
		timeout: listenTimeout,
		logger:  logger,
	}
}

func (c *Console) Speak(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "Bot: %s\n", text)
	return err
}

// Transcribe waits for one typed line. Timeout and closed input behave like
// silence, matching the transcription contract.
func (c *Console) Transcribe(ctx context.Context) (string, error) {
	fmt.Fprint(c.out, "You: ")

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", nil
		}
		return strings.TrimSpace(line), nil
	case <-timer.C:
		c.logger.Debug("listen timeout, treating as silence", zap.Duration("timeout", c.timeout))
		fmt.Fprintln(c.out)
		return "", nil
	}
}
