package probe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExecution marks a source that panicked or returned an error during
	// either stage. Recorded per component, never propagated past the loader.
	ErrExecution = errors.New("probe execution error")
	// ErrTimeout marks a deferred source whose continuation did not settle
	// within its bound. Recorded exactly like ErrExecution.
	ErrTimeout = errors.New("probe timeout")
)

// Wrap tags err with the provided marker and source context so failures can
// be classified later with errors.Is. The marker should be one of the
// sentinel errors above.
func Wrap(marker error, source, message string, err error) error {
	detail := buildDetail(source, message)
	if marker == nil {
		marker = ErrExecution
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(source, message string) string {
	parts := make([]string, 0, 2)
	if source = strings.TrimSpace(source); source != "" {
		parts = append(parts, source)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "source failure"
	}
	return strings.Join(parts, ": ")
}
