// Package clock samples the wall clock at a fixed period.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DefaultPeriod is the sampling interval
const DefaultPeriod = time.Second

// Sampler calls a handler with the current time once per period.
// Missed ticks are not replayed.
type Sampler struct {
	Now    func() time.Time
	Period time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSampler creates a Sampler ticking every second on the local clock
func NewSampler() *Sampler {
	return &Sampler{
		Now:    time.Now,
		Period: DefaultPeriod,
	}
}

// Run starts sampling in the background, firing once right away.
// It stops when ctx is done or Interrupt is called.
func (s *Sampler) Run(ctx context.Context, handler func(time.Time)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		// Already running
		return nil
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx, handler, s.done)
	return nil
}

// Interrupt stops the sampler and waits for the loop to exit
func (s *Sampler) Interrupt() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (s *Sampler) run(ctx context.Context, handler func(time.Time), done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()

	s.tick(handler)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(handler)
		}
	}
}

// tick runs the handler once; a panic is logged and sampling continues
func (s *Sampler) tick(handler func(time.Time)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithFields(logrus.Fields{"func": "sampler_tick"}).Errorf("Tick handler panicked: %v", r)
		}
	}()
	handler(s.Now())
}
