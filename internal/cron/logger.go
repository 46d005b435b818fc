package cron

import (
	"fmt"
	"log"
	"os"
)

// NewFileLogger opens (or creates) the job's append-only log file.
func NewFileLogger(path string, flags int) (*log.Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return log.New(f, "", flags), nil
}
