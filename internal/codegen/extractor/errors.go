package extractor

import (
	"fmt"
	"strings"
)

// LaunchError is returned when the preprocessor binary could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch preprocessor %q: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// PreprocessError is returned when the preprocessor ran but exited with a
// non-success status. Output and Stderr hold whatever it printed.
type PreprocessError struct {
	Path   string
	Output string
	Stderr string
	Err    error
}

func (e *PreprocessError) Error() string {
	msg := fmt.Sprintf("preprocessor %q failed: %v", e.Path, e.Err)
	if diag := strings.TrimSpace(e.Stderr); diag != "" {
		msg += "\n" + diag
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *PreprocessError) Unwrap() error { return e.Err }

// EncodingError is returned when the preprocessor output is not valid UTF-8.
type EncodingError struct {
	Path   string
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("preprocessor %q produced invalid UTF-8 at byte %d", e.Path, e.Offset)
}
