// Package dispatcher decides which floor a single car visits next.
//
// The Dispatcher is not safe for concurrent use. Callers that share one
// between goroutines go through elev.StateMgr.
package dispatcher

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/tiendc/go-deepcopy"

	"liftkata/src/types"
)

// Machine is the door, engine and sensor hardware of the car.
type Machine interface {
	OpenDoors()
	CloseDoors()
	StartEngine()
	StopEngine()
	EngineIsOk() bool
	CheckSensor(floor int) bool
}

type Dispatcher struct {
	machine Machine
	state   State
}

func New(machine Machine) *Dispatcher {
	d := &Dispatcher{
		machine: machine,
		state:   newState(),
	}
	slog.Debug("Dispatcher initialized", "floor", d.state.Floor)
	return d
}

// RequestFloor queues floor for a visit. Any integer is accepted.
// An idle car closes its doors and starts the engine.
func (d *Dispatcher) RequestFloor(floor int) {
	if d.CheckHealth() && !d.state.Pending[floor] {
		d.state = withRequest(d.state, floor)
		slog.Debug("Floor requested", "floor", floor, "pending", d.PendingFloors())
	}

	if d.state.Dir != types.Waiting {
		return
	}
	next, cmds, ok := depart(d.state)
	if !ok {
		return
	}
	d.apply(cmds)
	d.setDirection(next.Dir)
}

// AdvanceToNextFloor travels to the next floor and opens the doors there.
// With nothing left to visit the car goes back to Waiting.
func (d *Dispatcher) AdvanceToNextFloor() {
	if !d.CheckHealth() {
		return
	}
	if len(d.state.Pending) == 0 {
		d.setDirection(types.Waiting)
		return
	}

	visit, ok := planVisit(d.state)
	if !ok {
		d.setDirection(types.Waiting)
		return
	}
	d.setDirection(visit.Dir)

	// The visit completes even when a sensor fails on the way.
	for floor := range passingFloors(d.state.Floor, visit.Target) {
		if !d.machine.CheckSensor(floor) {
			slog.Warn("Floor sensor failed", "floor", floor, "target", visit.Target)
			d.setDirection(types.RequiresMaintenance)
		}
	}

	next, cmds := arrive(d.state, visit.Target)
	d.apply(cmds)
	d.state = next
	slog.Debug("Visited floor",
		"floor", visit.Target,
		"direction", d.state.Dir,
		"pending", d.PendingFloors())
}

// CheckHealth probes the engine. A failed probe puts the car in
// RequiresMaintenance for good.
func (d *Dispatcher) CheckHealth() bool {
	if !d.machine.EngineIsOk() {
		if d.state.Dir != types.RequiresMaintenance {
			slog.Warn("Engine fault detected", "floor", d.state.Floor)
		}
		d.setDirection(types.RequiresMaintenance)
	}
	return d.state.Dir != types.RequiresMaintenance
}

func (d *Dispatcher) CurrentFloor() int {
	return d.state.Floor
}

func (d *Dispatcher) Direction() types.Direction {
	return d.state.Dir
}

// PendingFloors returns the floors waiting for a visit in ascending order.
func (d *Dispatcher) PendingFloors() []int {
	return slices.Sorted(maps.Keys(d.state.Pending))
}

func (d *Dispatcher) Snapshot() types.Snapshot {
	return types.Snapshot{
		CurrentFloor:  d.state.Floor,
		Direction:     d.state.Dir,
		PendingFloors: d.PendingFloors(),
	}
}

// PlanRoute returns the order the pending floors would be visited in if no
// further requests arrive. The machine is not touched.
func (d *Dispatcher) PlanRoute() []int {
	// The simulated car drains its own copy of the pending set.
	simCar := new(State)
	if err := deepcopy.Copy(simCar, &d.state); err != nil {
		panic(err)
	}

	route := make([]int, 0, len(simCar.Pending))
	for {
		visit, ok := planVisit(*simCar)
		if !ok {
			return route
		}
		route = append(route, visit.Target)
		simCar.Floor = visit.Target
		simCar.Dir = visit.Dir
		delete(simCar.Pending, visit.Target)
	}
}

func (d *Dispatcher) apply(cmds []types.Command) {
	for _, cmd := range cmds {
		switch cmd {
		case types.CloseDoors:
			d.machine.CloseDoors()
		case types.StartEngine:
			d.machine.StartEngine()
		case types.StopEngine:
			d.machine.StopEngine()
		case types.OpenDoors:
			d.machine.OpenDoors()
		}
	}
}

func (d *Dispatcher) setDirection(dir types.Direction) {
	if d.state.Dir == dir {
		return
	}
	if d.state.Dir == types.RequiresMaintenance {
		return
	}
	slog.Info("Direction changed", "from", d.state.Dir, "to", dir, "floor", d.state.Floor)
	d.state.Dir = dir
}
