package demo

import (
	"errors"
	"fmt"

	"github.com/tinyrange/glcube/internal/display"
	"github.com/tinyrange/glcube/internal/window"
)

// ExitError carries the process exit status for a failed run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("demo exited with code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps a setup failure to the process exit status. A display that
// cannot be opened or initialized exits cleanly; every later failure exits
// with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, display.ErrNoDisplay) || errors.Is(err, window.ErrNoDisplay) {
		return 0
	}
	return 1
}
