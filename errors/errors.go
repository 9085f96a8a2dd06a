// Package errors defines the sentinel errors shared across pipelines,
// repositories and handlers.
package errors

import (
	"fmt"
)

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrNotFound          = fmt.Errorf("not found")
	ErrEmailTaken        = fmt.Errorf("employee with this email already exists")
	ErrInvalidAccessCode = fmt.Errorf("invalid access code")
	ErrMissingField      = fmt.Errorf("missing required field")
	ErrTokenGeneration   = fmt.Errorf("token generation failed")
	ErrStoreTimeout      = fmt.Errorf("store call timed out")
	ErrSlowConsumer      = fmt.Errorf("connection buffer full")
)
