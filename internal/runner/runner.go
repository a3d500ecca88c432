// Package runner executes external pipeline tools and captures their output.
//
// Every step the pipeline shells out to (SIENA, preparation tools, scoring
// tools) goes through Runner.Run so that diagnostics are uniform and any
// failure halts the pipeline instead of silently continuing with missing
// output.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/bennet/sienapipe/internal/logger"
)

// Command describes a single external tool invocation.
// Argv holds the executable and its arguments in order. StepName is a
// human-readable label used only for diagnostics. Dir is the working
// directory; empty means the process's current directory.
type Command struct {
	Argv     []string
	StepName string
	Dir      string
}

// Result holds the captured output of a completed invocation.
// ExitCode is always 0: non-zero exits are reported as *ExitError instead.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands synchronously, blocking the caller until the
// child process exits. There is no timeout and no retry; failures propagate
// to the caller after being logged.
type Runner struct {
	log logger.Logger
}

// New creates a Runner logging through the given logger.
// A nil logger is replaced with a NoOpLogger.
func New(log logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Runner{log: log}
}

// Run executes the command and captures its standard streams as text.
//
// On success it returns a Result with exit code 0 and the full stdout and
// stderr. On failure it returns one of three error kinds, each logged at
// error level before propagation:
//   - *ExitError when the child exits with a non-zero code
//   - *NotFoundError when the executable cannot be located
//   - *RunError for any other spawn or capture failure
func (r *Runner) Run(cmd Command) (*Result, error) {
	if len(cmd.Argv) == 0 {
		runErr := &RunError{StepName: cmd.StepName, Err: errors.New("empty command")}
		r.log.Error(fmt.Sprintf("An unexpected error occurred during %s: %v", cmd.StepName, runErr.Err))
		return nil, runErr
	}

	r.log.Info(fmt.Sprintf("Running %s...", cmd.StepName))
	r.log.Debug(fmt.Sprintf("Executing command: %s", strings.Join(cmd.Argv, " ")))

	effectiveDir := cmd.Dir
	if effectiveDir == "" {
		if wd, err := os.Getwd(); err == nil {
			effectiveDir = wd
		}
	}
	r.log.Debug(fmt.Sprintf("Working directory: %s", effectiveDir))

	child := exec.Command(cmd.Argv[0], cmd.Argv[1:]...)
	child.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	child.Stdout = &stdout
	child.Stderr = &stderr

	if err := child.Run(); err != nil {
		return nil, r.classify(cmd, err, stdout.String(), stderr.String())
	}

	r.log.Info(fmt.Sprintf("%s completed successfully.", cmd.StepName))
	if out := strings.TrimSpace(stdout.String()); out != "" {
		r.log.Debug(fmt.Sprintf("%s stdout:\n%s", cmd.StepName, out))
	}
	if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
		r.log.Debug(fmt.Sprintf("%s stderr:\n%s", cmd.StepName, errOut))
	}

	return &Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// classify maps a child process failure onto the runner error taxonomy
// and logs it at error level.
func (r *Runner) classify(cmd Command, err error, stdout, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e := &ExitError{
			StepName: cmd.StepName,
			Argv:     cmd.Argv,
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdout,
			Stderr:   stderr,
		}
		r.log.Error(fmt.Sprintf("%s failed with exit code %d.", cmd.StepName, e.ExitCode))
		r.log.Error(fmt.Sprintf("Command: %s", strings.Join(cmd.Argv, " ")))
		if out := strings.TrimSpace(stdout); out != "" {
			r.log.Error(fmt.Sprintf("Stdout:\n%s", out))
		}
		if errOut := strings.TrimSpace(stderr); errOut != "" {
			r.log.Error(fmt.Sprintf("Stderr:\n%s", errOut))
		}
		return e
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		e := &NotFoundError{
			StepName:   cmd.StepName,
			Executable: cmd.Argv[0],
			Err:        err,
		}
		r.log.Error(fmt.Sprintf("Error: Executable not found for %s at '%s'", cmd.StepName, cmd.Argv[0]))
		r.log.Error("Please ensure the path to the executable is correct and it has execute permissions.")
		return e
	}

	e := &RunError{StepName: cmd.StepName, Err: err}
	r.log.Error(fmt.Sprintf("An unexpected error occurred during %s: %v", cmd.StepName, err))
	return e
}
