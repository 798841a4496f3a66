package toolchain

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

// DetectVersion attempts to detect the version of the given kotlinc launcher.
// Returns the version string (e.g., "2.1.20") or empty string if detection
// fails. Best-effort; never errors when the compiler is unavailable.
func DetectVersion(ctx context.Context, executable string) string {
	if executable == "" {
		return ""
	}
	// kotlinc prints its banner on stderr.
	// #nosec G204 -- executable comes from discovery, not arbitrary user input.
	out, err := exec.CommandContext(ctx, executable, "-version").CombinedOutput()
	if err != nil {
		return ""
	}
	return parseVersion(string(out))
}

// parseVersion extracts the semantic version from kotlinc -version output.
// Expected format examples:
//
//	info: kotlinc-jvm 2.1.20 (JRE 21.0.2+13)
//	Kotlin version 1.9.24
func parseVersion(output string) string {
	versionRegex := regexp.MustCompile(`(\d+\.\d+\.\d+)`)
	if m := versionRegex.FindStringSubmatch(output); len(m) >= 2 {
		return m[1]
	}
	return strings.TrimSpace(output)
}
