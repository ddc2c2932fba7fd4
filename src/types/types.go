package types

import "fmt"

// GroundFloor is where a new car starts.
const GroundFloor = 0

// Direction is the operating mode of the car.
type Direction int

const (
	Waiting Direction = iota
	GoingUp
	GoingDown
	RequiresMaintenance
)

func (d Direction) String() string {
	switch d {
	case Waiting:
		return "Waiting"
	case GoingUp:
		return "GoingUp"
	case GoingDown:
		return "GoingDown"
	case RequiresMaintenance:
		return "RequiresMaintenance"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Command is a door or engine action issued to the machine.
type Command int

const (
	CloseDoors Command = iota
	StartEngine
	StopEngine
	OpenDoors
)

func (c Command) String() string {
	switch c {
	case CloseDoors:
		return "CloseDoors"
	case StartEngine:
		return "StartEngine"
	case StopEngine:
		return "StopEngine"
	case OpenDoors:
		return "OpenDoors"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Snapshot is a read-only copy of the car state. PendingFloors is sorted ascending.
type Snapshot struct {
	CurrentFloor  int
	Direction     Direction
	PendingFloors []int
}

// Idle reports whether the car has nothing left to do.
func (s Snapshot) Idle() bool {
	return s.Direction == Waiting && len(s.PendingFloors) == 0
}
