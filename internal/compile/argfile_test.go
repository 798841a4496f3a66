package compile

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteArgFile_OneArgumentPerLine(t *testing.T) {
	path, err := WriteArgFile([]string{"-verbose", "-d", "/out"})
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "-verbose\n-d\n/out\n", string(data))
}

func TestQuoteArg_PlainArgumentUnchanged(t *testing.T) {
	require.Equal(t, "-nowarn", quoteArg("-nowarn"))
	require.Equal(t, "/plain/path.kt", quoteArg("/plain/path.kt"))
}

func TestQuoteArg_SpacesQuoted(t *testing.T) {
	require.Equal(t, `"/path with spaces/Main.kt"`, quoteArg("/path with spaces/Main.kt"))
}

func TestQuoteArg_BackslashesAndQuotesEscaped(t *testing.T) {
	require.Equal(t, `"C:\\kotlin\\Main.kt"`, quoteArg(`C:\kotlin\Main.kt`))
	require.Equal(t, `"say \"hi\""`, quoteArg(`say "hi"`))
}

func TestWriteArgFile_QuotesArgumentsWithSpaces(t *testing.T) {
	path, err := WriteArgFile([]string{"/a b/c.kt"})
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), `"`))
}
