package kotlinc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeKotlinHome(t *testing.T, jars ...string) string {
	t.Helper()
	home := t.TempDir()
	lib := filepath.Join(home, "lib")
	require.NoError(t, os.MkdirAll(lib, 0o755))
	for _, jar := range jars {
		require.NoError(t, os.WriteFile(filepath.Join(lib, jar), []byte("jar"), 0o644))
	}
	return home
}

func TestResolvePlugins_SymbolicWithJar_YieldsAbsolutePath(t *testing.T) {
	home := fakeKotlinHome(t, "allopen-compiler-plugin.jar")

	resolved := ResolvePlugins([]string{"all-open"}, home)
	require.Len(t, resolved, 1)
	require.True(t, filepath.IsAbs(resolved[0]))
	require.Equal(t, filepath.Join(home, "lib", "allopen-compiler-plugin.jar"), resolved[0])
}

func TestResolvePlugins_SymbolicWithoutHome_SkipsWithoutError(t *testing.T) {
	require.Empty(t, ResolvePlugins([]string{"all-open"}, ""))
}

func TestResolvePlugins_MissingJar_SkippedNotFatal(t *testing.T) {
	home := fakeKotlinHome(t, "allopen-compiler-plugin.jar")

	// One resolvable, one whose jar does not exist on disk.
	resolved := ResolvePlugins([]string{"all-open", "lombok"}, home)
	require.Len(t, resolved, 1)
}

func TestResolvePlugins_LiteralPath_CheckedForExistence(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "custom-plugin.jar")
	require.NoError(t, os.WriteFile(existing, []byte("jar"), 0o644))
	missing := filepath.Join(dir, "gone.jar")

	resolved := ResolvePlugins([]string{existing, missing}, "")
	require.Equal(t, []string{existing}, resolved)
}

func TestResolvePlugins_InputListUnmodified(t *testing.T) {
	home := fakeKotlinHome(t, "noarg-compiler-plugin.jar")
	refs := []string{"noarg"}

	first := ResolvePlugins(refs, home)
	second := ResolvePlugins(refs, home)
	require.Equal(t, first, second)
	require.Equal(t, []string{"noarg"}, refs)
}

func TestKnownPlugin_RecognizesTableEntries(t *testing.T) {
	require.True(t, KnownPlugin("kotlinx-serialization"))
	require.False(t, KnownPlugin("definitely-not-a-plugin"))
}
