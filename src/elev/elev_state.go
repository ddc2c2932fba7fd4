package elev

import (
	"context"
	"log/slog"

	"liftkata/src/dispatcher"
	"liftkata/src/types"
)

// StateCmd is run on the goroutine that owns the dispatcher. Done receives
// whether Exec ran.
type StateCmd struct {
	Exec func(d *dispatcher.Dispatcher)
	Done chan bool
}

// StateMgr serializes access to a dispatcher from any number of goroutines.
type StateMgr struct {
	cmds chan StateCmd
	done <-chan struct{}
}

// StartStateMgr starts the goroutine that owns d. It stops when ctx is done,
// after which every call returns without touching d.
func StartStateMgr(ctx context.Context, d *dispatcher.Dispatcher) *StateMgr {
	elevMgr := &StateMgr{
		cmds: make(chan StateCmd),
		done: ctx.Done(),
	}
	go func() {
		for {
			select {
			case cmd := <-elevMgr.cmds:
				ran := ctx.Err() == nil
				if ran {
					cmd.Exec(d)
				}
				cmd.Done <- ran
				if !ran {
					return
				}
			case <-ctx.Done():
				slog.Debug("State manager stopped")
				return
			}
		}
	}()
	return elevMgr
}

// exec runs fn on the owner goroutine and waits for it to finish.
func (elevMgr *StateMgr) exec(fn func(d *dispatcher.Dispatcher)) bool {
	cmd := StateCmd{Exec: fn, Done: make(chan bool, 1)}
	select {
	case elevMgr.cmds <- cmd:
		return <-cmd.Done
	case <-elevMgr.done:
		return false
	}
}

func (elevMgr *StateMgr) RequestFloor(floor int) types.Snapshot {
	var snap types.Snapshot
	elevMgr.exec(func(d *dispatcher.Dispatcher) {
		d.RequestFloor(floor)
		snap = d.Snapshot()
	})
	return snap
}

func (elevMgr *StateMgr) Advance() types.Snapshot {
	var snap types.Snapshot
	elevMgr.exec(func(d *dispatcher.Dispatcher) {
		d.AdvanceToNextFloor()
		snap = d.Snapshot()
	})
	return snap
}

// GetState returns a copy of the dispatcher state. ok is false once the manager has stopped.
func (elevMgr *StateMgr) GetState() (snap types.Snapshot, ok bool) {
	ok = elevMgr.exec(func(d *dispatcher.Dispatcher) {
		snap = d.Snapshot()
	})
	return snap, ok
}

func (elevMgr *StateMgr) PlanRoute() []int {
	var route []int
	elevMgr.exec(func(d *dispatcher.Dispatcher) {
		route = d.PlanRoute()
	})
	return route
}
