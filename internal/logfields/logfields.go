package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyPhase      = "phase"
	KeyError      = "error"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyDir        = "directory"
	KeyFile       = "file"
	KeyRunID      = "run_id"
	KeyAddr       = "addr"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func Phase(name string) slog.Attr { return slog.String(KeyPhase, name) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Dir(d string) slog.Attr      { return slog.String(KeyDir, d) }
func File(f string) slog.Attr     { return slog.String(KeyFile, f) }
func RunID(id string) slog.Attr   { return slog.String(KeyRunID, id) }
func Addr(a string) slog.Attr     { return slog.String(KeyAddr, a) }

func DurationMS(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000.0)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
