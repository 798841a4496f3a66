package kotlinc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJvmOptionsArgs_Unset_RendersNothing(t *testing.T) {
	require.Empty(t, NewJvmOptions().Args())
}

func TestJvmOptionsArgs_Flags_GetPassthroughPrefix(t *testing.T) {
	args := NewJvmOptions().Add("--add-opens=java.base/java.util=ALL-UNNAMED").Args()
	require.Equal(t, []string{"-J--add-opens=java.base/java.util=ALL-UNNAMED"}, args)
}

func TestJvmOptionsArgs_NativeAccessModules_CommaJoined(t *testing.T) {
	args := NewJvmOptions().EnableNativeAccess("m1", "m2").Args()
	require.Equal(t, []string{"-J--enable-native-access=m1,m2"}, args)
}

// The launcher emits the native-access flag even with no module names; the
// empty right-hand side is intentional and must not fall under the usual
// omit-if-empty rule.
func TestJvmOptionsArgs_NativeAccessEmpty_StillEmitsFlag(t *testing.T) {
	args := NewJvmOptions().EnableNativeAccess().Args()
	require.Equal(t, []string{"-J--enable-native-access="}, args)
}

func TestJvmOptionsArgs_AllUnnamedConstant(t *testing.T) {
	args := NewJvmOptions().EnableNativeAccess(NativeAccessAllUnnamed).Args()
	require.Equal(t, []string{"-J--enable-native-access=ALL-UNNAMED"}, args)
}
