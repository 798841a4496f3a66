package dokka

import "errors"

var (
	// ErrNoProject indicates the operation was executed without a project.
	ErrNoProject = errors.New("no project configured")
	// ErrNoSourceSets indicates no non-empty source set was configured.
	ErrNoSourceSets = errors.New("no source sets configured")
	// ErrCliJarNotFound indicates no dokka-cli jar exists in the libs directory.
	ErrCliJarNotFound = errors.New("dokka-cli jar not found")
	// ErrCliJarAmbiguous indicates more than one dokka-cli jar matched.
	ErrCliJarAmbiguous = errors.New("multiple dokka-cli jars found")
)
