package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOpen          = errors.New("open error")
	ErrDecode        = errors.New("decode error")
	ErrEncode        = errors.New("encode error")
	ErrMetadata      = errors.New("metadata error")
	ErrFilesystem    = errors.New("filesystem error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to its taxonomy label for status strings and the
// run ledger. Untagged errors report as "error".
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOpen):
		return "open error"
	case errors.Is(err, ErrDecode):
		return "decode error"
	case errors.Is(err, ErrEncode):
		return "encode error"
	case errors.Is(err, ErrMetadata):
		return "metadata error"
	case errors.Is(err, ErrFilesystem):
		return "filesystem error"
	case errors.Is(err, ErrValidation):
		return "validation error"
	case errors.Is(err, ErrConfiguration):
		return "configuration error"
	default:
		return "error"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
