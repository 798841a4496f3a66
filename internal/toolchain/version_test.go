package toolchain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVersion_KotlincJvmBanner(t *testing.T) {
	out := "info: kotlinc-jvm 2.1.20 (JRE 21.0.2+13-58)\n"
	require.Equal(t, "2.1.20", parseVersion(out))
}

func TestParseVersion_PlainVersionLine(t *testing.T) {
	require.Equal(t, "1.9.24", parseVersion("Kotlin version 1.9.24"))
}

func TestParseVersion_Unparseable_ReturnsTrimmedOutput(t *testing.T) {
	require.Equal(t, "garbage", parseVersion("  garbage \n"))
}
