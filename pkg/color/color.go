// Package color provides terminal color output support for stockcheck.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"os"
	"sync"
	"sync/atomic"
)

var state struct {
	once    sync.Once
	enabled atomic.Bool
}

// Init initializes the color system based on environment and flags.
// Only the first call has an effect.
func Init(noColorFlag bool) {
	state.once.Do(func() {
		disabled := noColorFlag
		if _, exists := os.LookupEnv("NO_COLOR"); exists {
			disabled = true
		}
		if os.Getenv("TERM") == "dumb" {
			disabled = true
		}
		state.enabled.Store(!disabled)
	})
}

// Enabled returns true if color output is enabled.
func Enabled() bool {
	Init(false)
	return state.enabled.Load()
}

// Disable turns off color output.
func Disable() {
	Init(false)
	state.enabled.Store(false)
}

// Enable turns on color output.
func Enable() {
	Init(false)
	state.enabled.Store(true)
}

// ANSI color codes
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	DimCode = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

func wrap(code, s string) string {
	if !Enabled() {
		return s
	}
	return code + s + Reset
}

// Success formats a success message in green.
func Success(s string) string { return wrap(Green, s) }

// Error formats an error message in red.
func Error(s string) string { return wrap(Red, s) }

// Warning formats a warning message in yellow.
func Warning(s string) string { return wrap(Yellow, s) }

// Path formats a canonical resource path.
func Path(s string) string { return wrap(Cyan, s) }

// Header formats a header in bold.
func Header(s string) string { return wrap(Bold, s) }

// Dim formats dimmed text (for secondary information).
func Dim(s string) string { return wrap(DimCode, s) }

// Verdict colors a verdict name: green when stock, red when modified,
// yellow when added, magenta when the file could not be decoded.
func Verdict(s string) string {
	switch s {
	case "unmodified":
		return wrap(Green, s)
	case "modified":
		return wrap(Red, s)
	case "added":
		return wrap(Yellow, s)
	case "corrupt":
		return wrap(Magenta, s)
	default:
		return s
	}
}
