// Package extractor runs an external C preprocessor and captures the list of
// macro definitions it has in effect after including a header.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Alia5/fourccgen/internal/log"
)

// DefaultPreprocessor is the binary used when none is configured.
const DefaultPreprocessor = "clang"

// Preprocessor turns a short C program into preprocessed text.
// Implementations return *LaunchError, *PreprocessError or *EncodingError.
type Preprocessor interface {
	Preprocess(ctx context.Context, program string) (string, error)
}

// IncludeProgram returns the one-line program that includes header from the
// system search path.
func IncludeProgram(header string) string {
	return fmt.Sprintf("#include <%s>\n", header)
}

// Command drives a clang/gcc compatible preprocessor as a subprocess.
// It runs "<Path> -E -dM <Args...> -" and feeds the program on stdin.
type Command struct {
	Path   string
	Args   []string
	Logger *slog.Logger

	// Raw, when set, receives the program sent and the output received.
	Raw log.RawLogger
}

// NewCommand returns a Command for path. An empty path selects DefaultPreprocessor.
func NewCommand(path string, args []string, logger *slog.Logger) *Command {
	if path == "" {
		path = DefaultPreprocessor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Command{Path: path, Args: args, Logger: logger}
}

func (c *Command) argv() []string {
	argv := make([]string, 0, len(c.Args)+3)
	argv = append(argv, "-E", "-dM")
	argv = append(argv, c.Args...)
	return append(argv, "-")
}

// Preprocess runs the preprocessor once. The subprocess is always waited on
// before returning. When ctx ends first the process is killed and the
// context's error is returned instead of a PreprocessError.
func (c *Command) Preprocess(ctx context.Context, program string) (string, error) {
	argv := c.argv()
	c.Logger.Debug("Running preprocessor", "path", c.Path, "args", argv)

	cmd := exec.CommandContext(ctx, c.Path, argv...)
	cmd.Stdin = strings.NewReader(program)
	if c.Raw != nil {
		c.Raw.Log(true, []byte(program))
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		return "", &LaunchError{Path: c.Path, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("preprocessor %s interrupted: %w", c.Path, ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", &LaunchError{Path: c.Path, Err: err}
		}
		return "", &PreprocessError{
			Path:   c.Path,
			Output: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	out := stdout.Bytes()
	if c.Raw != nil {
		c.Raw.Log(false, out)
	}
	if off := invalidUTF8Offset(out); off >= 0 {
		return "", &EncodingError{Path: c.Path, Offset: off}
	}

	c.Logger.Debug("Preprocessor finished", "bytes", len(out))
	return string(out), nil
}

// invalidUTF8Offset returns the byte offset of the first invalid sequence in
// b, or -1 if b is valid UTF-8.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// Extract includes header through p and returns the preprocessor output.
func Extract(ctx context.Context, p Preprocessor, header string) (string, error) {
	return p.Preprocess(ctx, IncludeProgram(header))
}
