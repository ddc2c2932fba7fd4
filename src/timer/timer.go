package timer

import (
	"context"
	"log/slog"
	"time"
)

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

// Timer sends on timeout each time duration passes after a Start. Stop
// cancels a pending timeout. It returns when ctx is done.
func Timer(ctx context.Context, duration time.Duration, timeout chan<- bool, action <-chan TimerAction) {
	t := time.NewTimer(duration)
	t.Stop()
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case a := <-action:
			switch a {
			case Start:
				resetTimer(t, duration)
			case Stop:
				t.Stop()
			}
		case <-t.C:
			slog.Debug("Timer timed out")
			select {
			case timeout <- true:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, duration time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(duration)
}
