package executor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"liftkata/src/elev"
	"liftkata/src/timer"
	"liftkata/src/types"
)

var ErrMaintenance = errors.New("car requires maintenance")

// Run is the control loop of the car.
//   - Floor requests from requestCh are queued as they arrive
//   - While the car is moving it advances one stop every stepInterval
//   - Every state change is offered on statusCh, dropped if nobody is listening
//
// Run returns ErrMaintenance when the car faults, nil once requestCh is closed
// and the car is back in Waiting, and ctx.Err() when ctx is done.
func Run(ctx context.Context,
	elevMgr *elev.StateMgr,
	stepInterval time.Duration,
	requestCh <-chan int,
	statusCh chan<- types.Snapshot,
) error {
	timerCtx, stopTimer := context.WithCancel(ctx)
	defer stopTimer()
	stepTimeoutCh := make(chan bool)
	stepActionCh := make(chan timer.TimerAction, 1)
	go timer.Timer(timerCtx, stepInterval, stepTimeoutCh, stepActionCh)

	stepping := false
	inputClosed := false

	for {
		var snap types.Snapshot

		select {
		case <-ctx.Done():
			return ctx.Err()

		case floor, ok := <-requestCh:
			if ok {
				snap = elevMgr.RequestFloor(floor)
			} else {
				slog.Debug("Request input closed")
				requestCh = nil
				inputClosed = true
				snap, _ = elevMgr.GetState()
			}

		case <-stepTimeoutCh:
			stepping = false
			snap = elevMgr.Advance()
		}

		publish(statusCh, snap)

		switch snap.Direction {
		case types.RequiresMaintenance:
			slog.Error("Car out of service",
				"floor", snap.CurrentFloor,
				"pending", snap.PendingFloors)
			return ErrMaintenance
		case types.Waiting:
			if inputClosed {
				if len(snap.PendingFloors) > 0 {
					// A request for the floor the car stands on is never visited.
					slog.Warn("Input closed with requests left",
						"floor", snap.CurrentFloor,
						"pending", snap.PendingFloors)
				} else {
					slog.Info("All requests served", "floor", snap.CurrentFloor)
				}
				return nil
			}
		default:
			if !stepping {
				stepActionCh <- timer.Start
				stepping = true
			}
		}
	}
}

func publish(statusCh chan<- types.Snapshot, snap types.Snapshot) {
	select {
	case statusCh <- snap:
	default:
	}
}
