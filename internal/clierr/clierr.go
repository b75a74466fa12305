// Package clierr formats command failures for the terminal and maps them to
// process exit codes.
package clierr

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes.
const (
	ExitGeneral    = 1
	ExitConfig     = 2 // Configuration could not be resolved
	ExitInput      = 3 // Bad flags, arguments or inventory
	ExitGeneration = 4 // Rendering, writing or vetting the output failed
)

// UserError is a failure with enough context for the user to act on it.
type UserError struct {
	Message  string // What went wrong
	Cause    string // Why, when known
	Fix      string // What to try next
	ExitCode int
	Err      error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Config returns a configuration error.
func Config(msg, fix string, err error) *UserError {
	return &UserError{Message: msg, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// Input returns an input error.
func Input(msg, fix string, err error) *UserError {
	return &UserError{Message: msg, Fix: fix, ExitCode: ExitInput, Err: err}
}

// Stage returns a generation error naming the pipeline stage that failed.
func Stage(stage string, err error) *UserError {
	return &UserError{
		Message:  fmt.Sprintf("generate: %s stage failed", stage),
		ExitCode: ExitGeneration,
		Err:      err,
	}
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format renders err for the terminal. A UserError shows its cause and fix
// on separate lines; empty sections are omitted. Color is disabled when
// noColor is set or NO_COLOR is present in the environment.
func Format(err error, noColor bool) string {
	if err == nil {
		return ""
	}

	saved := color.NoColor
	defer func() { color.NoColor = saved }()
	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var ue *UserError
	if !errors.As(err, &ue) {
		return colorError.Sprint("Error: ") + err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(colorError.Sprint("Error: "))
	b.WriteString(ue.Message)
	b.WriteString("\n")
	cause := ue.Cause
	if cause == "" && ue.Err != nil {
		cause = ue.Err.Error()
	}
	if cause != "" {
		b.WriteString(colorCause.Sprint("Cause: "))
		b.WriteString(cause)
		b.WriteString("\n")
	}
	if ue.Fix != "" {
		b.WriteString(colorFix.Sprint("Fix:   "))
		b.WriteString(ue.Fix)
		b.WriteString("\n")
	}
	return b.String()
}

// Code returns the exit code for err: 0 for nil, the UserError code when
// one is in the chain, ExitGeneral otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var ue *UserError
	if errors.As(err, &ue) && ue.ExitCode != 0 {
		return ue.ExitCode
	}
	return ExitGeneral
}
