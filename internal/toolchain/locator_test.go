package toolchain

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeEnv is a test Environment with fixed variables and PATH.
type fakeEnv struct {
	vars     map[string]string
	path     []string
	platform Platform
	home     string
}

func (f fakeEnv) Getenv(key string) string { return f.vars[key] }
func (f fakeEnv) PathEntries() []string    { return f.path }
func (f fakeEnv) Platform() Platform       { return f.platform }
func (f fakeEnv) HomeDir() string          { return f.home }

func installFakeCompiler(t *testing.T, dir string, inBin bool) string {
	t.Helper()
	target := dir
	if inBin {
		target = filepath.Join(dir, "bin")
	}
	require.NoError(t, os.MkdirAll(target, 0o755))
	exe := filepath.Join(target, "kotlinc")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	return exe
}

func TestFind_ExplicitExecutable_UsedVerbatim(t *testing.T) {
	loc := NewLocator(fakeEnv{platform: PlatformLinux})

	// The path does not exist; discovery must still trust it.
	d, err := loc.Find("/nowhere/kotlinc", "")
	require.NoError(t, err)
	require.Equal(t, "/nowhere/kotlinc", d.Executable)
	require.Equal(t, "/nowhere", d.Home)
}

func TestFind_ExplicitHomeWithCompiler_ProbesBinSubdir(t *testing.T) {
	home := t.TempDir()
	exe := installFakeCompiler(t, home, true)
	loc := NewLocator(fakeEnv{platform: PlatformLinux})

	d, err := loc.Find("", home)
	require.NoError(t, err)
	require.Equal(t, exe, d.Executable)
	require.Equal(t, home, d.Home)
}

func TestFind_ExplicitHomeWithoutCompiler_Fatal(t *testing.T) {
	// A populated PATH must not rescue an explicitly configured bad home.
	pathDir := t.TempDir()
	installFakeCompiler(t, pathDir, false)

	loc := NewLocator(fakeEnv{platform: PlatformLinux, path: []string{pathDir}})
	_, err := loc.Find("", t.TempDir())
	require.ErrorIs(t, err, ErrHomeHasNoCompiler)
}

func TestFind_EnvHome_WinsOverPath(t *testing.T) {
	envHome := t.TempDir()
	envExe := installFakeCompiler(t, envHome, true)
	pathDir := t.TempDir()
	installFakeCompiler(t, pathDir, false)

	loc := NewLocator(fakeEnv{
		platform: PlatformLinux,
		vars:     map[string]string{KotlinHomeVar: envHome},
		path:     []string{pathDir},
	})

	d, err := loc.Find("", "")
	require.NoError(t, err)
	require.Equal(t, envExe, d.Executable)
	require.Equal(t, envHome, d.Home)
}

func TestFind_EnvHomeMiss_FallsThroughToPath(t *testing.T) {
	pathDir := t.TempDir()
	exe := installFakeCompiler(t, pathDir, false)

	loc := NewLocator(fakeEnv{
		platform: PlatformLinux,
		vars:     map[string]string{KotlinHomeVar: t.TempDir()}, // empty dir
		path:     []string{pathDir},
	})

	d, err := loc.Find("", "")
	require.NoError(t, err)
	require.Equal(t, exe, d.Executable)
}

func TestFind_PathOrder_FirstHitWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	firstExe := installFakeCompiler(t, first, false)
	installFakeCompiler(t, second, false)

	loc := NewLocator(fakeEnv{platform: PlatformLinux, path: []string{first, second}})
	d, err := loc.Find("", "")
	require.NoError(t, err)
	require.Equal(t, firstExe, d.Executable)
}

func TestFind_WellKnownDir_UsedAfterPath(t *testing.T) {
	userHome := t.TempDir()
	sdkman := filepath.Join(userHome, ".sdkman", "candidates", "kotlin", "current")
	exe := installFakeCompiler(t, sdkman, true)

	loc := NewLocator(fakeEnv{platform: PlatformLinux, home: userHome})
	d, err := loc.Find("", "")
	require.NoError(t, err)
	require.Equal(t, exe, d.Executable)
}

func TestFind_NothingFound_ReturnsBareName(t *testing.T) {
	if _, err := exec.LookPath("kotlinc"); err == nil {
		t.Skip("kotlinc installed on this machine; which-fallback would find it")
	}
	// No env, no PATH entries, an empty home: discovery must not error out.
	loc := NewLocator(fakeEnv{platform: PlatformLinux, home: t.TempDir(), vars: map[string]string{"PATH": ""}})
	d, err := loc.Find("", "")
	require.NoError(t, err)
	require.Equal(t, "kotlinc", d.Executable)
	require.Empty(t, d.Home)
}

func TestHomeFromExecutable_StripsBinSegment(t *testing.T) {
	require.Equal(t, "/opt/kotlin", HomeFromExecutable("/opt/kotlin/bin/kotlinc"))
	require.Equal(t, "/opt/kotlin", HomeFromExecutable("/opt/kotlin/kotlinc"))
	require.Empty(t, HomeFromExecutable("kotlinc"))
}

func TestExecutableName_PerPlatform(t *testing.T) {
	require.Equal(t, "kotlinc", ExecutableName(PlatformLinux))
	require.Equal(t, "kotlinc", ExecutableName(PlatformDarwin))
	require.Equal(t, "kotlinc.bat", ExecutableName(PlatformWindows))
}
