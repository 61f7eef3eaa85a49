package alerts

import "fmt"

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure.
	LevelError Level = iota
	// LevelWarning indicates a run that finished with problems to review.
	LevelWarning
	// LevelSuccess indicates a clean run.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelSuccess:
		return "✓"
	default:
		return "?"
	}
}

// Color returns ANSI color codes for terminal output.
func (l Level) Color() string {
	switch l {
	case LevelError:
		return "\033[31m" // Red
	case LevelWarning:
		return "\033[33m" // Yellow
	case LevelSuccess:
		return "\033[32m" // Green
	default:
		return resetColor
	}
}

const resetColor = "\033[0m"
