package compile

// Sentinel errors for the compile pipeline. User-facing messages stay
// descriptive via wrapping.

import "errors"

var (
	// ErrNoProject indicates the operation was executed without a project.
	ErrNoProject = errors.New("no project configured")
	// ErrInvalidBaseDir indicates the project base directory is absent or not a directory.
	ErrInvalidBaseDir = errors.New("invalid project base directory")
	// ErrExitStatus indicates the compiler process failed to launch or
	// returned a non-zero exit status.
	ErrExitStatus = errors.New("compiler exited with a non-zero status")
)
