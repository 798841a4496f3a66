package toolchain

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform is a typed enumeration of the operating systems the locator
// distinguishes between. Anything that is not Windows or macOS is treated
// as Linux for discovery purposes.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformDarwin  Platform = "darwin"
	PlatformWindows Platform = "windows"
)

// Environment abstracts the process environment so discovery logic can be
// exercised in tests without mutating real environment variables.
type Environment interface {
	// Getenv returns the value of the named environment variable, or "" if unset.
	Getenv(key string) string
	// PathEntries returns the directories on the process PATH, in PATH order.
	PathEntries() []string
	// Platform identifies the operating system.
	Platform() Platform
	// HomeDir returns the current user's home directory, or "" if unknown.
	HomeDir() string
}

// OSEnvironment is the production Environment backed by the real process state.
type OSEnvironment struct{}

func (OSEnvironment) Getenv(key string) string { return os.Getenv(key) }

func (OSEnvironment) PathEntries() []string {
	raw := os.Getenv("PATH")
	if raw == "" {
		return nil
	}
	entries := strings.Split(raw, string(os.PathListSeparator))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func (OSEnvironment) Platform() Platform {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformLinux
	}
}

func (OSEnvironment) HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// ExecutableName returns the compiler launcher filename for the platform.
func ExecutableName(p Platform) string {
	if p == PlatformWindows {
		return "kotlinc.bat"
	}
	return "kotlinc"
}

// isExecutable reports whether path exists, is a regular file, and carries an
// execute bit (any execute bit on Unix; existence suffices on Windows where
// the filesystem has no execute permission).
func isExecutable(path string, p Platform) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if p == PlatformWindows {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// probeHome checks the two conventional locations of the launcher inside a
// candidate home directory and returns the first that is executable.
func probeHome(home, exe string, p Platform) (string, bool) {
	for _, candidate := range []string{filepath.Join(home, exe), filepath.Join(home, "bin", exe)} {
		if isExecutable(candidate, p) {
			return candidate, true
		}
	}
	return "", false
}
