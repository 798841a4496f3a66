// Package kotlinc builds command-line invocations for the Kotlin/JVM
// compiler. Option containers accumulate typed settings through fluent
// setters and render them into ordered token lists; rendering is pure and
// repeatable, and unset options are omitted entirely.
package kotlinc

import (
	"os"
	"path/filepath"
	"strings"
)

// CompileOptions holds the settings passed to kotlinc for one compilation.
// Every field is optional; Args renders flags in a fixed declaration order
// regardless of the order setters were called, because downstream tooling
// asserts literal argument sequences.
type CompileOptions struct {
	apiVersion      string
	classpath       []string
	expression      string
	includeRuntime  bool
	javaParameters  bool
	jdkHome         string
	jdkRelease      string
	hasRelease      bool
	jvmTarget       string
	hasTarget       bool
	kotlinHome      string
	languageVersion string
	moduleName      string
	noJdk           bool
	noReflect       bool
	noStdLib        bool
	noWarn          bool
	optIn           []string
	destination     string
	pluginOptions   []PluginOption
	progressive     bool
	scriptTemplates []string
	verbose         bool
	wError          bool
	wExtra          bool
	advancedOptions []string
	argFiles        []string
	freeArgs        []string
}

// PluginOption is an option passed to a compiler plugin, rendered as
// plugin:<id>:<name>:<value> after a -P flag.
type PluginOption struct {
	Plugin string
	Name   string
	Value  string
}

func NewCompileOptions() *CompileOptions { return &CompileOptions{} }

// Copy returns an independent copy; list-valued fields are not shared.
func (o *CompileOptions) Copy() *CompileOptions {
	c := *o
	c.classpath = append([]string(nil), o.classpath...)
	c.optIn = append([]string(nil), o.optIn...)
	c.pluginOptions = append([]PluginOption(nil), o.pluginOptions...)
	c.scriptTemplates = append([]string(nil), o.scriptTemplates...)
	c.advancedOptions = append([]string(nil), o.advancedOptions...)
	c.argFiles = append([]string(nil), o.argFiles...)
	c.freeArgs = append([]string(nil), o.freeArgs...)
	return &c
}

func (o *CompileOptions) APIVersion(v string) *CompileOptions { o.apiVersion = v; return o }

// Classpath appends entries to the compile classpath.
func (o *CompileOptions) Classpath(paths ...string) *CompileOptions {
	o.classpath = append(o.classpath, paths...)
	return o
}

// ClasspathEntries returns the accumulated classpath, in insertion order.
func (o *CompileOptions) ClasspathEntries() []string {
	return append([]string(nil), o.classpath...)
}

// SetClasspath replaces the classpath entirely; nil clears it.
func (o *CompileOptions) SetClasspath(paths []string) *CompileOptions {
	o.classpath = append([]string(nil), paths...)
	return o
}

func (o *CompileOptions) Expression(e string) *CompileOptions { o.expression = e; return o }

func (o *CompileOptions) IncludeRuntime(b bool) *CompileOptions { o.includeRuntime = b; return o }

func (o *CompileOptions) JavaParameters(b bool) *CompileOptions { o.javaParameters = b; return o }

func (o *CompileOptions) JDKHome(path string) *CompileOptions { o.jdkHome = path; return o }

// JDKRelease compiles against the specified JDK API version. When no explicit
// JVM target was set, the target is derived from this value at render time;
// with an explicit target the release constraint is not rendered at all.
func (o *CompileOptions) JDKRelease(version string) *CompileOptions {
	o.jdkRelease = version
	o.hasRelease = true
	return o
}

func (o *CompileOptions) JVMTarget(version string) *CompileOptions {
	o.jvmTarget = version
	o.hasTarget = true
	return o
}

// HasRelease reports whether JDKRelease was called, independent of its value.
func (o *CompileOptions) HasRelease() bool { return o.hasRelease }

// HasTarget reports whether JVMTarget was called, independent of its value.
func (o *CompileOptions) HasTarget() bool { return o.hasTarget }

func (o *CompileOptions) KotlinHome(path string) *CompileOptions { o.kotlinHome = path; return o }

func (o *CompileOptions) GetKotlinHome() string { return o.kotlinHome }

func (o *CompileOptions) LanguageVersion(v string) *CompileOptions { o.languageVersion = v; return o }

func (o *CompileOptions) ModuleName(name string) *CompileOptions { o.moduleName = name; return o }

func (o *CompileOptions) NoJDK(b bool) *CompileOptions { o.noJdk = b; return o }

func (o *CompileOptions) NoReflect(b bool) *CompileOptions { o.noReflect = b; return o }

func (o *CompileOptions) NoStdLib(b bool) *CompileOptions { o.noStdLib = b; return o }

func (o *CompileOptions) NoWarn(b bool) *CompileOptions { o.noWarn = b; return o }

// OptIn enables usages of APIs requiring opt-in with the given annotation
// fully qualified names.
func (o *CompileOptions) OptIn(annotations ...string) *CompileOptions {
	o.optIn = append(o.optIn, annotations...)
	return o
}

// Destination sets the output directory (or .jar) for generated class files.
func (o *CompileOptions) Destination(path string) *CompileOptions { o.destination = path; return o }

func (o *CompileOptions) GetDestination() string { return o.destination }

// Plugin passes an option to a compiler plugin. Entries render in insertion
// order, one -P token pair each.
func (o *CompileOptions) Plugin(id, name, value string) *CompileOptions {
	o.pluginOptions = append(o.pluginOptions, PluginOption{Plugin: id, Name: name, Value: value})
	return o
}

func (o *CompileOptions) Progressive(b bool) *CompileOptions { o.progressive = b; return o }

// ScriptTemplates registers script definition template classes.
func (o *CompileOptions) ScriptTemplates(classes ...string) *CompileOptions {
	o.scriptTemplates = append(o.scriptTemplates, classes...)
	return o
}

func (o *CompileOptions) Verbose(b bool) *CompileOptions { o.verbose = b; return o }

func (o *CompileOptions) WError(b bool) *CompileOptions { o.wError = b; return o }

func (o *CompileOptions) WExtra(b bool) *CompileOptions { o.wExtra = b; return o }

// Advanced appends -X advanced options, passed through verbatim.
func (o *CompileOptions) Advanced(options ...string) *CompileOptions {
	o.advancedOptions = append(o.advancedOptions, options...)
	return o
}

// ArgFile references argument files whose absolute paths render as @<path>.
func (o *CompileOptions) ArgFile(files ...string) *CompileOptions {
	o.argFiles = append(o.argFiles, files...)
	return o
}

// Options appends free-form compiler arguments rendered last.
func (o *CompileOptions) Options(args ...string) *CompileOptions {
	o.freeArgs = append(o.freeArgs, args...)
	return o
}

// Args renders the accumulated settings into compiler tokens. Rendering has
// no side effects and always yields the same sequence for the same state.
func (o *CompileOptions) Args() []string {
	args := make([]string, 0, 32)

	if o.apiVersion != "" {
		args = append(args, "-api-version", o.apiVersion)
	}
	if len(o.classpath) > 0 {
		args = append(args, "-classpath", joinPaths(o.classpath))
	}
	if o.expression != "" {
		args = append(args, "-expression", o.expression)
	}
	if o.includeRuntime {
		args = append(args, "-include-runtime")
	}
	if o.javaParameters {
		args = append(args, "-java-parameters")
	}
	if o.jdkHome != "" {
		args = append(args, "-jdk-home", absPath(o.jdkHome))
	}
	// An explicit JVM target wins; kotlinc rejects the pair when they disagree.
	if o.jdkRelease != "" && !o.hasTarget {
		args = append(args, "-Xjdk-release="+o.jdkRelease)
	}
	if o.jvmTarget != "" {
		args = append(args, "-jvm-target", o.jvmTarget)
	}
	if o.kotlinHome != "" {
		args = append(args, "-kotlin-home", absPath(o.kotlinHome))
	}
	if o.languageVersion != "" {
		args = append(args, "-language-version", o.languageVersion)
	}
	if o.moduleName != "" {
		args = append(args, "-module-name", o.moduleName)
	}
	if o.noJdk {
		args = append(args, "-no-jdk")
	}
	if o.noReflect {
		args = append(args, "-no-reflect")
	}
	if o.noStdLib {
		args = append(args, "-no-stdlib")
	}
	if o.noWarn {
		args = append(args, "-nowarn")
	}
	if len(o.optIn) > 0 {
		args = append(args, "-opt-in", strings.Join(o.optIn, ","))
	}
	if o.destination != "" {
		args = append(args, "-d", absPath(o.destination))
	}
	for _, p := range o.pluginOptions {
		args = append(args, "-P", "plugin:"+p.Plugin+":"+p.Name+":"+p.Value)
	}
	if o.progressive {
		args = append(args, "-progressive")
	}
	if len(o.scriptTemplates) > 0 {
		args = append(args, "-script-templates", strings.Join(o.scriptTemplates, ","))
	}
	if o.verbose {
		args = append(args, "-verbose")
	}
	if o.wError {
		args = append(args, "-Werror")
	}
	if o.wExtra {
		args = append(args, "-Wextra")
	}
	args = append(args, o.advancedOptions...)
	for _, f := range o.argFiles {
		args = append(args, "@"+absPath(f))
	}
	args = append(args, o.freeArgs...)

	return args
}

// JoinClasspath joins classpath entries with the platform path-list
// separator, each entry rendered absolute. Splitting the result on the same
// separator reproduces the entries in order.
func JoinClasspath(paths []string) string { return joinPaths(paths) }

// joinPaths joins path entries with the platform path-list separator,
// each entry rendered absolute.
func joinPaths(paths []string) string {
	abs := make([]string, len(paths))
	for i, p := range paths {
		abs[i] = absPath(p)
	}
	return strings.Join(abs, string(os.PathListSeparator))
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
