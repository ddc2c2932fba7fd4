package dispatcher

import (
	"iter"
	"maps"

	"liftkata/src/types"
)

// State is the dispatcher state the transition functions below operate on.
// The functions never modify the State they are given.
type State struct {
	Floor   int
	Dir     types.Direction
	Pending map[int]bool
}

// Visit is a planned move to Target, travelling in Dir.
type Visit struct {
	Target int
	Dir    types.Direction
}

func newState() State {
	return State{
		Floor:   types.GroundFloor,
		Dir:     types.Waiting,
		Pending: make(map[int]bool),
	}
}

func (s State) clone() State {
	s.Pending = maps.Clone(s.Pending)
	if s.Pending == nil {
		s.Pending = make(map[int]bool)
	}
	return s
}

// withRequest adds floor to the pending set. Requests already pending are ignored.
func withRequest(s State, floor int) State {
	if s.Pending[floor] {
		return s
	}
	next := s.clone()
	next.Pending[floor] = true
	return next
}

// depart leaves the Waiting mode: doors close, engine starts, and the initial
// direction is picked from the lowest pending floor.
func depart(s State) (State, []types.Command, bool) {
	lowest, ok := lowestPending(s)
	if !ok {
		return s, nil, false
	}
	next := s.clone()
	if lowest > s.Floor {
		next.Dir = types.GoingUp
	} else {
		next.Dir = types.GoingDown
	}
	return next, []types.Command{types.CloseDoors, types.StartEngine}, true
}

// planVisit picks the next floor to stop at without reversing while there is
// still work in the current direction.
func planVisit(s State) (Visit, bool) {
	var (
		target int
		dir    types.Direction
		ok     bool
	)
	switch s.Dir {
	case types.GoingDown:
		if target, ok = highestBelow(s); ok {
			dir = types.GoingDown
		} else if target, ok = lowestAbove(s); ok {
			dir = types.GoingUp
		}
	case types.GoingUp:
		if target, ok = lowestAbove(s); ok {
			dir = types.GoingUp
		} else if target, ok = highestBelow(s); ok {
			dir = types.GoingDown
		}
	}
	if !ok {
		return Visit{}, false
	}
	return Visit{Target: target, Dir: dir}, true
}

// arrive stops at floor: engine stops, doors open, floor leaves the pending set.
func arrive(s State, floor int) (State, []types.Command) {
	next := s.clone()
	next.Floor = floor
	delete(next.Pending, floor)
	return next, []types.Command{types.StopEngine, types.OpenDoors}
}

// passingFloors yields the floors strictly between from and to, in travel order.
// Floors are produced one at a time, so far apart floors cost no memory.
func passingFloors(from, to int) iter.Seq[int] {
	step := 1
	if to < from {
		step = -1
	}
	return func(yield func(int) bool) {
		if from == to {
			return
		}
		for floor := from + step; floor != to; floor += step {
			if !yield(floor) {
				return
			}
		}
	}
}

func lowestPending(s State) (int, bool) {
	lowest, found := 0, false
	for floor := range s.Pending {
		if !found || floor < lowest {
			lowest, found = floor, true
		}
	}
	return lowest, found
}

func lowestAbove(s State) (int, bool) {
	best, found := 0, false
	for floor := range s.Pending {
		if floor > s.Floor && (!found || floor < best) {
			best, found = floor, true
		}
	}
	return best, found
}

func highestBelow(s State) (int, bool) {
	best, found := 0, false
	for floor := range s.Pending {
		if floor < s.Floor && (!found || floor > best) {
			best, found = floor, true
		}
	}
	return best, found
}
