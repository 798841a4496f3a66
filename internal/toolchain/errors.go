package toolchain

import "errors"

var (
	// ErrHomeHasNoCompiler indicates an explicitly configured Kotlin home
	// directory does not contain the compiler launcher.
	ErrHomeHasNoCompiler = errors.New("kotlin home does not contain the compiler")
)
