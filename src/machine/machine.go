// Package machine holds an in-process stand-in for the door, engine and
// floor sensor hardware of a car.
package machine

import (
	"log/slog"
	"sync"

	"liftkata/src/config"
	"liftkata/src/types"
)

// Probe names used in the call log next to the command names.
const (
	EngineProbe = "EngineIsOk"
	SensorProbe = "CheckSensor"
)

// Call is one entry in the call log. Floor is only set for sensor probes.
type Call struct {
	Name  string
	Floor int
}

// Sim records every call it receives and fails on demand.
type Sim struct {
	mu               sync.Mutex
	calls            []Call
	probes           int
	engineOk         bool
	engineFailsAfter int
	faultySensors    map[int]bool
	doorsOpen        bool
	engineRunning    bool
}

func NewSim(cfg config.MachineConfig) *Sim {
	sim := &Sim{
		engineOk:         true,
		engineFailsAfter: cfg.EngineFailsAfter,
		faultySensors:    make(map[int]bool),
		doorsOpen:        true,
	}
	for _, floor := range cfg.FaultySensors {
		sim.faultySensors[floor] = true
	}
	return sim
}

func (s *Sim) OpenDoors() {
	s.command(types.OpenDoors, func() { s.doorsOpen = true })
}

func (s *Sim) CloseDoors() {
	s.command(types.CloseDoors, func() { s.doorsOpen = false })
}

func (s *Sim) StartEngine() {
	s.command(types.StartEngine, func() { s.engineRunning = true })
}

func (s *Sim) StopEngine() {
	s.command(types.StopEngine, func() { s.engineRunning = false })
}

func (s *Sim) command(cmd types.Command, update func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Name: cmd.String()})
	update()
	slog.Debug("Machine command", "command", cmd)
}

func (s *Sim) EngineIsOk() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.probes++
	s.calls = append(s.calls, Call{Name: EngineProbe})
	if s.engineFailsAfter > 0 && s.probes >= s.engineFailsAfter {
		s.engineOk = false
	}
	if !s.engineOk {
		slog.Warn("Engine probe failed", "probe", s.probes)
	}
	return s.engineOk
}

func (s *Sim) CheckSensor(floor int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Name: SensorProbe, Floor: floor})
	ok := !s.faultySensors[floor]
	if !ok {
		slog.Warn("Floor sensor probe failed", "floor", floor)
	}
	return ok
}

// SetEngineOk overrides the engine health. A configured failure still applies.
func (s *Sim) SetEngineOk(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engineOk = ok
}

func (s *Sim) SetSensor(floor int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		delete(s.faultySensors, floor)
	} else {
		s.faultySensors[floor] = true
	}
}

// Calls returns a copy of the call log.
func (s *Sim) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Commands returns the door and engine commands in the order they were issued.
func (s *Sim) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for _, call := range s.calls {
		if call.Name != EngineProbe && call.Name != SensorProbe {
			names = append(names, call.Name)
		}
	}
	return names
}

func (s *Sim) Count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, call := range s.calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

func (s *Sim) DoorsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doorsOpen
}

func (s *Sim) EngineRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engineRunning
}
