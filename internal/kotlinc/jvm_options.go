package kotlinc

import "strings"

// NativeAccessAllUnnamed grants native access to all code on the class path.
const NativeAccessAllUnnamed = "ALL-UNNAMED"

// JvmOptions are flags passed to the JVM running the compiler, rendered with
// the launcher's -J passthrough prefix ahead of the argument file.
type JvmOptions struct {
	flags           []string
	nativeAccess    []string
	hasNativeAccess bool
}

func NewJvmOptions() *JvmOptions { return &JvmOptions{} }

// Copy returns an independent copy.
func (o *JvmOptions) Copy() *JvmOptions {
	c := *o
	c.flags = append([]string(nil), o.flags...)
	c.nativeAccess = append([]string(nil), o.nativeAccess...)
	return &c
}

// Add appends raw JVM flags (e.g. --add-opens=...), passed through verbatim.
func (o *JvmOptions) Add(flags ...string) *JvmOptions {
	o.flags = append(o.flags, flags...)
	return o
}

// EnableNativeAccess names modules allowed to perform restricted native
// operations. Calling it with no modules still emits the flag with an empty
// value, matching the compiler launcher's own handling of the option; this is
// the one place an empty list-valued setting renders its flag.
func (o *JvmOptions) EnableNativeAccess(modules ...string) *JvmOptions {
	o.nativeAccess = append(o.nativeAccess, modules...)
	o.hasNativeAccess = true
	return o
}

// Args renders the JVM flags as launcher passthrough tokens.
func (o *JvmOptions) Args() []string {
	args := make([]string, 0, len(o.flags)+1)
	for _, f := range o.flags {
		args = append(args, "-J"+f)
	}
	if o.hasNativeAccess {
		args = append(args, "-J--enable-native-access="+strings.Join(o.nativeAccess, ","))
	}
	return args
}
