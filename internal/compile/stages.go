package compile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// StageName identifies a discrete unit of work in the compile pipeline.
type StageName string

const (
	StageSetup       StageName = "setup"
	StageCompileMain StageName = "compile-main"
	StageCompileTest StageName = "compile-test"
)

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

type stageDef struct {
	Name StageName
	Fn   func(ctx context.Context) error
}

// runStages executes stages in order, recording timing into the report and
// stopping on the first error. Any error not already classified is fatal.
func runStages(ctx context.Context, report *Report, stages []stageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			report.recordError(st.Name, se)
			return se
		default:
		}
		t0 := time.Now()
		err := st.Fn(ctx)
		report.recordDuration(st.Name, time.Since(t0))
		if err == nil {
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		report.recordError(st.Name, se)
		slog.Error("Stage failed", "stage", string(st.Name), "error", se.Err)
		return se
	}
	return nil
}
