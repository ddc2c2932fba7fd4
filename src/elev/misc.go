package elev

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const logTimeLayout = "15:04:05"

// InitLogger installs the default logger. Records below level are dropped.
// A non-empty logPath gets a copy of everything written to stdout.
func InitLogger(level slog.Level, logPath string) {
	var out io.Writer = os.Stdout
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			panic(err)
		}
		out = io.MultiWriter(os.Stdout, logFile)
	}
	slog.SetDefault(slog.New(newLogHandler(out, level)))
}

func newLogHandler(out io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       level,
		AddSource:   true,
		ReplaceAttr: compactAttr,
	})
}

// compactAttr prints the time as a wall clock and the source as file:line.
func compactAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			return slog.String(a.Key, a.Value.Time().Format(logTimeLayout))
		}
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			return slog.String(a.Key, filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
		}
	}
	return a
}
