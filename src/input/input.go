// Package input turns floor button presses into floor requests.
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/eiannone/keyboard"
)

// Keyboard reads single key presses until q, Esc or Ctrl-C. Digit keys
// request the matching floor.
func Keyboard(ctx context.Context, requestCh chan<- int) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if key == keyboard.KeyCtrlC || key == keyboard.KeyEsc || char == 'q' || char == 'Q' {
			return nil
		}
		floor, ok := KeyToFloor(char)
		if !ok {
			slog.Debug("Ignoring key", "char", string(char), "key", key)
			continue
		}
		select {
		case requestCh <- floor:
		case <-ctx.Done():
			return nil
		}
	}
}

func KeyToFloor(char rune) (int, bool) {
	if char < '0' || char > '9' {
		return 0, false
	}
	return int(char - '0'), true
}

// ParseScript reads one request per line, either "request <floor>" or a bare
// floor number. Blank lines and lines starting with # are skipped.
func ParseScript(r io.Reader) ([]int, error) {
	var floors []int
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 2 && strings.EqualFold(fields[0], "request") {
			fields = fields[1:]
		}
		if len(fields) != 1 {
			return nil, fmt.Errorf("line %d: malformed command %q", lineNum, line)
		}
		floor, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		floors = append(floors, floor)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return floors, nil
}

// Script sends every request in r on requestCh and closes it.
func Script(ctx context.Context, r io.Reader, requestCh chan<- int) error {
	defer close(requestCh)

	floors, err := ParseScript(r)
	if err != nil {
		return err
	}
	for _, floor := range floors {
		select {
		case requestCh <- floor:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
