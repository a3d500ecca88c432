package runner

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordLogger captures log lines for assertions.
type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+msg)
}

func (l *recordLogger) Debug(msg string) { l.add("DEBUG", msg) }
func (l *recordLogger) Info(msg string)  { l.add("INFO", msg) }
func (l *recordLogger) Warn(msg string)  { l.add("WARN", msg) }
func (l *recordLogger) Error(msg string) { l.add("ERROR", msg) }

func (l *recordLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestRunSuccess(t *testing.T) {
	requireTool(t, "echo")
	r := New(nil)

	res, err := r.Run(Command{Argv: []string{"echo", "hello"}, StepName: "echo step"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestRunCapturesStderr(t *testing.T) {
	requireTool(t, "sh")
	r := New(nil)

	res, err := r.Run(Command{Argv: []string{"sh", "-c", "echo oops >&2"}, StepName: "stderr step"})
	require.NoError(t, err)
	assert.Equal(t, "oops\n", res.Stderr)
	assert.Empty(t, res.Stdout)
}

func TestRunNonZeroExit(t *testing.T) {
	requireTool(t, "sh")
	r := New(nil)

	_, err := r.Run(Command{
		Argv:     []string{"sh", "-c", "echo out; echo err >&2; exit 3"},
		StepName: "failing step",
	})
	require.Error(t, err)
	require.True(t, IsExitError(err))

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Equal(t, "out\n", exitErr.Stdout)
	assert.Equal(t, "err\n", exitErr.Stderr)
	assert.Equal(t, []string{"sh", "-c", "echo out; echo err >&2; exit 3"}, exitErr.Argv)
}

func TestRunExecutableNotFound(t *testing.T) {
	r := New(nil)

	_, err := r.Run(Command{
		Argv:     []string{"sienapipe-no-such-binary"},
		StepName: "missing step",
	})
	require.Error(t, err)
	require.True(t, IsNotFoundError(err), "want NotFoundError, got %T: %v", err, err)
	assert.False(t, IsExitError(err))

	var nfErr *NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "sienapipe-no-such-binary", nfErr.Executable)
}

func TestRunExplicitPathNotFound(t *testing.T) {
	r := New(nil)

	_, err := r.Run(Command{
		Argv:     []string{filepath.Join(t.TempDir(), "tool")},
		StepName: "missing path step",
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err), "want NotFoundError, got %T: %v", err, err)
}

func TestRunEmptyArgv(t *testing.T) {
	r := New(nil)

	_, err := r.Run(Command{StepName: "empty step"})
	require.Error(t, err)

	var runErr *RunError
	assert.True(t, errors.As(err, &runErr))
}

func TestRunWorkingDirectory(t *testing.T) {
	requireTool(t, "sh")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0644))

	r := New(nil)
	res, err := r.Run(Command{
		Argv:     []string{"sh", "-c", "ls"},
		StepName: "ls step",
		Dir:      dir,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "marker.txt")
}

func TestRunLogsLifecycle(t *testing.T) {
	requireTool(t, "echo")
	log := &recordLogger{}
	r := New(log)

	_, err := r.Run(Command{Argv: []string{"echo", "hi"}, StepName: "greeting"})
	require.NoError(t, err)

	assert.True(t, log.contains("INFO: Running greeting..."))
	assert.True(t, log.contains("DEBUG: Executing command: echo hi"))
	assert.True(t, log.contains("INFO: greeting completed successfully."))
	assert.True(t, log.contains("greeting stdout:\nhi"))
}

func TestRunLogsFailure(t *testing.T) {
	requireTool(t, "sh")
	log := &recordLogger{}
	r := New(log)

	_, err := r.Run(Command{
		Argv:     []string{"sh", "-c", "echo bad >&2; exit 1"},
		StepName: "doomed",
	})
	require.Error(t, err)

	assert.True(t, log.contains("ERROR: doomed failed with exit code 1."))
	assert.True(t, log.contains("ERROR: Stderr:\nbad"))
}

func TestRunIdempotentOnSameCommand(t *testing.T) {
	requireTool(t, "echo")
	r := New(nil)
	cmd := Command{Argv: []string{"echo", "same"}, StepName: "repeat"}

	first, err := r.Run(cmd)
	require.NoError(t, err)
	second, err := r.Run(cmd)
	require.NoError(t, err)

	assert.Equal(t, first.Stdout, second.Stdout)
}
