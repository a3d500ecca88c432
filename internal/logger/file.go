package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileLogger logs pipeline events to files in the configured log directory.
// It creates a timestamped per-run log file and maintains a latest.log
// symlink pointing to the most recent run. It is thread-safe and supports
// log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger writing into logDir.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Timestamped filename: run-YYYYMMDD-HHMMSS.log
	ts := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", ts))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Create/update latest.log symlink
	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLevel(logLevel),
		mu:       sync.Mutex{},
	}

	fl.writeRaw(fmt.Sprintf("=== sienapipe run log ===\nStarted at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// RunFile returns the path of the current run log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return levelToInt(messageLevel) >= levelToInt(fl.logLevel)
}

// Debug logs a debug-level message to the run log.
func (fl *FileLogger) Debug(msg string) {
	fl.logWithLevel("DEBUG", msg)
}

// Info logs an info-level message to the run log.
func (fl *FileLogger) Info(msg string) {
	fl.logWithLevel("INFO", msg)
}

// Warn logs a warning-level message to the run log.
func (fl *FileLogger) Warn(msg string) {
	fl.logWithLevel("WARN", msg)
}

// Error logs an error-level message to the run log.
func (fl *FileLogger) Error(msg string) {
	fl.logWithLevel("ERROR", msg)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRaw(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// writeRaw writes directly to the run log with mutex protection.
func (fl *FileLogger) writeRaw(s string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}
	fl.runLog.WriteString(s)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}
