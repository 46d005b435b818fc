package graph

import (
	"errors"
	"fmt"
	"strings"

	"crm-service/internal/repository"
)

// publicError rewrites repository sentinels into the messages the API
// promises to callers, stripping internal sentinel prefixes.
func publicError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errors.New("Email already exists")
	case errors.Is(err, repository.ErrEmptyProductSet):
		return errors.New("At least one product is required")
	case errors.Is(err, repository.ErrInvalidInput):
		return fmt.Errorf("Validation error: %s", stripSentinel(err, repository.ErrInvalidInput))
	case errors.Is(err, repository.ErrNotFound):
		return errors.New(stripSentinel(err, repository.ErrNotFound))
	}
	return err
}

func stripSentinel(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}
