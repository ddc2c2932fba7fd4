package utils

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"liftkata/src/types"
)

// FormatFloors renders floors as "[1 3 5]", or "[]" when there are none.
func FormatFloors(floors []int) string {
	parts := make([]string, len(floors))
	for i, floor := range floors {
		parts[i] = strconv.Itoa(floor)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// StatusLine is the one-line summary printed on every status update.
func StatusLine(snap types.Snapshot, route []int) string {
	line := fmt.Sprintf("Floor: %d | %-19s | Pending: %s", snap.CurrentFloor, snap.Direction, FormatFloors(snap.PendingFloors))
	if len(route) > 0 {
		line += " | Route: " + FormatFloors(route)
	}
	return line
}

// PrintStatus overwrites the current terminal line with the status.
func PrintStatus(w io.Writer, snap types.Snapshot, route []int) {
	fmt.Fprintf(w, "\r%s    ", StatusLine(snap, route))
	if snap.Direction == types.RequiresMaintenance {
		fmt.Fprintln(w)
	}
}
