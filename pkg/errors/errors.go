package errors

import (
	"fmt"
	"strings"
)

// ErrConfiguration is returned when required settings are missing at startup
type ErrConfiguration struct {
	Missing []string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// ErrValidation is returned when an import row or order payload is malformed.
// It is scoped to a single unit of work and never aborts the surrounding batch.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrTransport is returned when a network call or request construction fails
type ErrTransport struct {
	Op  string
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrShopify carries GraphQL protocol errors and mutation user errors merged
// into a single message list.
type ErrShopify struct {
	Messages []string
}

func (e *ErrShopify) Error() string {
	return fmt.Sprintf("graphQL errors: %s", strings.Join(e.Messages, ", "))
}
