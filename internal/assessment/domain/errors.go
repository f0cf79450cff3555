package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

// ValidationError reports required intake fields that are absent. Surfaced
// to the caller before any store write happens.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// PersistenceError wraps a failed assessment write. An assessment that cannot
// be durably recorded has no value, so these always surface to the caller.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// StageError names the pipeline stage an optional dependency failed in. Only
// ever logged; degraded stages do not fail the run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s degraded: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
