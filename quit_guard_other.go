//go:build !darwin

package main

// quitGuard only exists on macOS, where Cmd+Q would quit past a ringing alarm
type quitGuard struct{}

func newQuitGuard() *quitGuard {
	return &quitGuard{}
}

func (g *quitGuard) Hold() {}

func (g *quitGuard) Release() {}
