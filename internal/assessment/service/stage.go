package service

import (
	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

// StageResult carries one optional stage's output through the pipeline: a
// value, or the stage failure that left it absent. Keeps the degraded-mode
// contract explicit instead of threading bare nils around.
type StageResult[T any] struct {
	value    T
	degraded *domain.StageError
}

// StageOK wraps a successful stage output.
func StageOK[T any](v T) StageResult[T] {
	return StageResult[T]{value: v}
}

// StageDegraded records a stage failure. The pipeline continues with the
// output absent.
func StageDegraded[T any](stage string, err error) StageResult[T] {
	return StageResult[T]{degraded: &domain.StageError{Stage: stage, Err: err}}
}

// Ok reports whether the stage produced a value.
func (r StageResult[T]) Ok() bool {
	return r.degraded == nil
}

// Value returns the stage output and whether it is present.
func (r StageResult[T]) Value() (T, bool) {
	return r.value, r.degraded == nil
}

// Cause returns the stage failure, or nil for a successful stage.
func (r StageResult[T]) Cause() *domain.StageError {
	return r.degraded
}
