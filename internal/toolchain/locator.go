package toolchain

import (
	"bufio"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// KotlinHomeVar is the environment variable naming a Kotlin installation root.
const KotlinHomeVar = "KOTLIN_HOME"

// Discovery is the outcome of a compiler search: the executable to launch and
// the Kotlin home directory it was found under, when one could be inferred.
type Discovery struct {
	Executable string
	Home       string
}

// Locator finds a runnable kotlinc executable for the current environment.
type Locator struct {
	env Environment
}

func NewLocator(env Environment) *Locator {
	if env == nil {
		env = OSEnvironment{}
	}
	return &Locator{env: env}
}

// Find resolves the compiler executable using a strict priority order:
//
//  1. explicitExe, used verbatim (launch errors surface later);
//  2. explicitHome, probed at <home>/<exe> then <home>/bin/<exe> — a miss
//     here is fatal because the caller opted out of auto-discovery;
//  3. the KOTLIN_HOME environment variable, same probe, misses tolerated;
//  4. each PATH entry in order, same probe;
//  5. platform-specific well-known install locations;
//  6. a which/where subprocess, accepted only if its answer is executable;
//  7. the bare executable name, leaving resolution to the OS at launch time.
func (l *Locator) Find(explicitExe, explicitHome string) (Discovery, error) {
	platform := l.env.Platform()
	exe := ExecutableName(platform)

	if explicitExe != "" {
		return Discovery{Executable: explicitExe, Home: HomeFromExecutable(explicitExe)}, nil
	}

	if explicitHome != "" {
		if found, ok := probeHome(explicitHome, exe, platform); ok {
			return Discovery{Executable: found, Home: explicitHome}, nil
		}
		return Discovery{}, fmt.Errorf("%w: %s", ErrHomeHasNoCompiler, explicitHome)
	}

	if envHome := l.env.Getenv(KotlinHomeVar); envHome != "" {
		if found, ok := probeHome(envHome, exe, platform); ok {
			return Discovery{Executable: found, Home: envHome}, nil
		}
		slog.Debug("Kotlin home from environment has no compiler, continuing search",
			"var", KotlinHomeVar, "dir", envHome)
	}

	for _, dir := range l.env.PathEntries() {
		if found, ok := probeHome(dir, exe, platform); ok {
			return Discovery{Executable: found, Home: HomeFromExecutable(found)}, nil
		}
	}

	for _, dir := range wellKnownDirs(l.env) {
		if found, ok := probeHome(dir, exe, platform); ok {
			return Discovery{Executable: found, Home: HomeFromExecutable(found)}, nil
		}
	}

	if found, ok := l.shellLookup(exe, platform); ok {
		return Discovery{Executable: found, Home: HomeFromExecutable(found)}, nil
	}

	slog.Debug("Compiler not located, falling back to bare executable name", "executable", exe)
	return Discovery{Executable: exe}, nil
}

// shellLookup runs which/where and returns its first output line when that
// path is executable. Best-effort: any failure means "not found".
func (l *Locator) shellLookup(exe string, p Platform) (string, bool) {
	tool := "which"
	if p == PlatformWindows {
		tool = "where"
	}
	// #nosec G204 -- tool name and executable name are fixed constants.
	out, err := exec.Command(tool, exe).Output()
	if err != nil {
		return "", false
	}
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	if !scanner.Scan() {
		return "", false
	}
	line := strings.TrimSpace(scanner.Text())
	if line == "" || !isExecutable(line, p) {
		return "", false
	}
	return line, true
}

// HomeFromExecutable derives an installation root from a launcher path by
// taking its parent directory and stripping a trailing bin segment.
func HomeFromExecutable(exe string) string {
	dir := filepath.Dir(exe)
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	if filepath.Base(dir) == "bin" {
		return filepath.Dir(dir)
	}
	return dir
}

// wellKnownDirs lists conventional install locations in discovery order:
// user-local tool-version managers first, system-wide locations next,
// IDE-bundled compilers last.
func wellKnownDirs(env Environment) []string {
	home := env.HomeDir()
	switch env.Platform() {
	case PlatformWindows:
		dirs := []string{}
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".sdkman", "candidates", "kotlin", "current"),
				filepath.Join(home, "scoop", "apps", "kotlin", "current"),
			)
		}
		dirs = append(dirs,
			`C:\tools\kotlinc`,
			`C:\Program Files\Kotlin`,
		)
		if local := env.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Programs", "IntelliJ IDEA Community Edition", "plugins", "Kotlin", "kotlinc"))
		}
		return dirs
	case PlatformDarwin:
		dirs := []string{}
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".sdkman", "candidates", "kotlin", "current"),
				filepath.Join(home, ".asdf", "shims"),
			)
		}
		dirs = append(dirs,
			"/opt/homebrew/opt/kotlin",
			"/usr/local/opt/kotlin",
			"/opt/homebrew",
			"/usr/local",
			"/Applications/IntelliJ IDEA.app/Contents/plugins/Kotlin/kotlinc",
			"/Applications/IntelliJ IDEA CE.app/Contents/plugins/Kotlin/kotlinc",
			"/Applications/Android Studio.app/Contents/plugins/Kotlin/kotlinc",
		)
		return dirs
	default:
		dirs := []string{}
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".sdkman", "candidates", "kotlin", "current"),
				filepath.Join(home, ".asdf", "shims"),
				filepath.Join(home, ".local", "share", "kotlin"),
			)
		}
		dirs = append(dirs,
			"/snap/kotlin/current",
			"/usr/local/kotlin",
			"/usr/share/kotlin",
			"/opt/kotlin",
			"/opt/kotlinc",
		)
		if home != "" {
			dirs = append(dirs,
				filepath.Join(home, ".local", "share", "JetBrains", "Toolbox", "apps", "intellij-idea-community", "plugins", "Kotlin", "kotlinc"),
			)
		}
		return dirs
	}
}
