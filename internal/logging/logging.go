// internal/logging/logging.go

// Package logging tees the standard logger to stdout and an optional logfile.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes log output to stdout, and additionally to logPath if non-empty.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the logfile and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent writes a single formatted log line.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogCase writes one structured line per evaluated case so a run's sequential
// order is visible in the log.
func LogCase(phase, caseID, domain string, detail any) {
	parts := []string{fmt.Sprintf("[%s]", strings.ToUpper(strings.TrimSpace(phase)))}
	if caseID != "" {
		parts = append(parts, fmt.Sprintf("case=%s", caseID))
	}
	if domain != "" {
		parts = append(parts, fmt.Sprintf("domain=%s", domain))
	}
	if detail != nil {
		parts = append(parts, fmt.Sprintf("detail=%v", detail))
	}
	log.Println(strings.Join(parts, " "))
}
