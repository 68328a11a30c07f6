package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Correlation strength labels.
const (
	StrongValue   = "Strong"
	ModerateValue = "Moderate"
	WeakValue     = "Weak"
	NoneValue     = "None"
)

// Color variables for console output.
var (
	PositiveColor = color.New(color.FgRed, color.Bold)  // strong positive correlation
	NegativeColor = color.New(color.FgBlue, color.Bold) // strong negative correlation
	ModerateColor = color.New(color.FgYellow)
	WeakColor     = color.New(color.FgCyan)
)

// GetPlainLabel returns the strength label of a correlation coefficient.
func GetPlainLabel(r float64) string {
	a := math.Abs(r)
	switch {
	case a >= 0.7:
		return StrongValue
	case a >= 0.4:
		return ModerateValue
	case a >= 0.1:
		return WeakValue
	default:
		return NoneValue
	}
}

// GetColorValue formats r with precision decimals, colored by strength and sign.
func GetColorValue(r float64, precision int) string {
	text := fmt.Sprintf("%.*f", precision, r)
	switch GetPlainLabel(r) {
	case StrongValue:
		if r < 0 {
			return NegativeColor.Sprint(text)
		}
		return PositiveColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the telemetry store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".voltview_telemetry.db"
	}
	return filepath.Join(homeDir, ".voltview_telemetry.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
