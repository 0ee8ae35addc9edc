// Package meeting simulates scheduling and joining a video call. No real
// conferencing protocol is involved; the delays and log lines stand in for the
// external flow.
package meeting

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ai-interviewer/internal/utils"
)

const (
	// Simulated lead time before the interview slot.
	scheduleLead = 5 * time.Minute
	stepDelay    = time.Second
)

type Scheduler struct {
	link   string
	logger *zap.Logger
}

func NewScheduler(link string, logger *zap.Logger) (*Scheduler, error) {
	if link == "" {
		return nil, errors.New("meeting link is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{link: link, logger: logger}, nil
}

// Schedule pretends to book the meeting and returns the join link.
func (s *Scheduler) Schedule(ctx context.Context) (string, error) {
	s.logger.Info("scheduling interview meeting")

	if err := utils.WaitFor(ctx, stepDelay); err != nil {
		return "", err
	}

	s.logger.Info("meeting scheduled",
		zap.Time("start", time.Now().Add(scheduleLead)),
		zap.String("link", s.link),
	)

	return s.link, nil
}

// Join pretends to connect to the meeting at the given link.
func (s *Scheduler) Join(ctx context.Context, link string) error {
	s.logger.Info("joining meeting", zap.String("link", link))

	if err := utils.WaitFor(ctx, stepDelay); err != nil {
		return err
	}

	s.logger.Info("joined meeting (simulated)")
	return nil
}
