//go:build darwin

package main

import (
	"sync"

	"github.com/borgmon/alarm-clock/pkg/logger"
	"golang.design/x/hotkey"
)

// quitGuard swallows Cmd+Q while an alarm is ringing so the popup has to be
// answered
type quitGuard struct {
	mu         sync.Mutex
	hk         *hotkey.Hotkey
	registered bool
	done       chan struct{}
}

func newQuitGuard() *quitGuard {
	return &quitGuard{}
}

// Hold starts blocking Cmd+Q. Calling it again while held is a no-op.
func (g *quitGuard) Hold() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.hk != nil {
		return
	}
	g.hk = hotkey.New([]hotkey.Modifier{hotkey.ModCmd}, hotkey.KeyQ)
	g.done = make(chan struct{})
	go g.listen(g.hk, g.done)
}

func (g *quitGuard) listen(hk *hotkey.Hotkey, done chan struct{}) {
	if err := hk.Register(); err != nil {
		logger.Log.WithError(err).Warn("Failed to register Cmd+Q hotkey prevention")
		g.mu.Lock()
		if g.hk == hk {
			g.hk = nil
			g.done = nil
		}
		g.mu.Unlock()
		return
	}

	g.mu.Lock()
	if g.hk != hk {
		// Released while registering
		g.mu.Unlock()
		hk.Unregister()
		return
	}
	g.registered = true
	g.mu.Unlock()

	for {
		select {
		case <-done:
			return
		case <-hk.Keydown():
			logger.Log.Info("Cmd+Q blocked - hold Snooze or Dismiss to answer the alarm")
		}
	}
}

// Release lets Cmd+Q through again
func (g *quitGuard) Release() {
	g.mu.Lock()
	hk, registered, done := g.hk, g.registered, g.done
	g.hk, g.registered, g.done = nil, false, nil
	g.mu.Unlock()

	if done != nil {
		close(done)
	}
	if hk != nil && registered {
		if err := hk.Unregister(); err != nil {
			logger.Log.WithError(err).Warn("Failed to unregister Cmd+Q hotkey")
		}
	}
}
