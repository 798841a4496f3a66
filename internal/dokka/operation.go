// Package dokka builds and runs a single invocation of the Dokka CLI to
// generate API documentation for a Kotlin project.
package dokka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/ktbuild/internal/compile"
	"git.home.luguber.info/inful/ktbuild/internal/project"
)

// Operation assembles exactly one documentation-generator command from global
// options, one or more source sets, and the plugin classpath implied by the
// selected output format.
type Operation struct {
	proj   *project.Project
	runner compile.ProcessRunner

	libsDir string
	java    string

	delayTemplateSubstitution  bool
	failOnWarning              bool
	globalLinks                map[string]string
	globalPackageOptions       []string
	globalSrcLinks             []string
	includes                   []string
	loggingLevel               string
	moduleName                 string
	moduleVersion              string
	noSuppressObviousFunctions bool
	offlineMode                bool
	outputDir                  string
	pluginConfiguration        map[string]string
	pluginsClasspath           []string
	sourceSets                 []*SourceSet
	suppressInheritedMembers   bool
}

func NewOperation() *Operation {
	return &Operation{
		runner:              compile.ExecRunner{},
		java:                "java",
		globalLinks:         make(map[string]string),
		pluginConfiguration: make(map[string]string),
	}
}

// FromProject configures module name, output directory and the default libs
// directory from the project layout, and adds a source set covering the main
// source tree.
func (op *Operation) FromProject(p *project.Project) *Operation {
	op.proj = p
	op.moduleName = p.Name
	op.moduleVersion = p.Version
	op.outputDir = filepath.Join(p.BuildDirectory(), "dokka")
	op.libsDir = filepath.Join(p.BaseDir, "lib", "dokka")
	op.sourceSets = append(op.sourceSets, NewSourceSet().Src(p.SrcMainDirectory()))
	return op
}

func (op *Operation) Runner(r compile.ProcessRunner) *Operation { op.runner = r; return op }

// LibsDirectory sets where the Dokka CLI and plugin jars are installed.
// Set it before OutputFormat so format plugins resolve against it.
func (op *Operation) LibsDirectory(dir string) *Operation { op.libsDir = dir; return op }

// Java sets the JVM launcher used to run the CLI jar.
func (op *Operation) Java(path string) *Operation { op.java = path; return op }

// OutputFormat selects the documentation format. Side effect: the plugins
// classpath is cleared and repopulated with the format's plugin jars resolved
// against the libs directory; jars that cannot be resolved are skipped with a
// warning.
func (op *Operation) OutputFormat(format OutputFormat) *Operation {
	op.pluginsClasspath = op.pluginsClasspath[:0]
	for _, pattern := range formatPlugins[format] {
		matches, err := filepath.Glob(filepath.Join(op.libsDir, pattern))
		if err != nil || len(matches) == 0 {
			slog.Warn("Dokka plugin jar not found for format",
				"format", string(format), "pattern", pattern, "dir", op.libsDir)
			continue
		}
		sort.Strings(matches)
		op.pluginsClasspath = append(op.pluginsClasspath, matches[0])
	}
	return op
}

func (op *Operation) DelayTemplateSubstitution(b bool) *Operation {
	op.delayTemplateSubstitution = b
	return op
}

func (op *Operation) FailOnWarning(b bool) *Operation { op.failOnWarning = b; return op }

// GlobalLink registers an external documentation link applied to every
// source set: root URL to package-list URL.
func (op *Operation) GlobalLink(url, packageListURL string) *Operation {
	op.globalLinks[url] = packageListURL
	return op
}

func (op *Operation) GlobalPackageOptions(opts ...string) *Operation {
	op.globalPackageOptions = append(op.globalPackageOptions, opts...)
	return op
}

func (op *Operation) GlobalSrcLinks(links ...string) *Operation {
	op.globalSrcLinks = append(op.globalSrcLinks, links...)
	return op
}

func (op *Operation) Includes(files ...string) *Operation {
	op.includes = append(op.includes, files...)
	return op
}

func (op *Operation) LoggingLevel(level string) *Operation { op.loggingLevel = level; return op }

func (op *Operation) ModuleName(name string) *Operation { op.moduleName = name; return op }

func (op *Operation) ModuleVersion(v string) *Operation { op.moduleVersion = v; return op }

func (op *Operation) NoSuppressObviousFunctions(b bool) *Operation {
	op.noSuppressObviousFunctions = b
	return op
}

func (op *Operation) OfflineMode(b bool) *Operation { op.offlineMode = b; return op }

func (op *Operation) OutputDir(dir string) *Operation { op.outputDir = dir; return op }

// PluginConfiguration passes a JSON configuration fragment to the named
// plugin. The value is JSON-string-escaped into the composite token.
func (op *Operation) PluginConfiguration(fqPluginName, jsonCfg string) *Operation {
	op.pluginConfiguration[fqPluginName] = jsonCfg
	return op
}

// PluginsClasspath appends plugin jars beyond those implied by the format.
func (op *Operation) PluginsClasspath(jars ...string) *Operation {
	op.pluginsClasspath = append(op.pluginsClasspath, jars...)
	return op
}

// MainSourceSet returns the first configured source set (the one FromProject
// creates), or nil when none exists yet.
func (op *Operation) MainSourceSet() *SourceSet {
	if len(op.sourceSets) == 0 {
		return nil
	}
	return op.sourceSets[0]
}

func (op *Operation) SourceSets(sets ...*SourceSet) *Operation {
	op.sourceSets = append(op.sourceSets, sets...)
	return op
}

func (op *Operation) SuppressInheritedMembers(b bool) *Operation {
	op.suppressInheritedMembers = b
	return op
}

// Args renders the full CLI argument list (everything after `java -jar
// <dokka-cli.jar>`) in fixed order, omitting unset options.
func (op *Operation) Args() []string {
	args := make([]string, 0, 24)

	if op.delayTemplateSubstitution {
		args = append(args, "-delayTemplateSubstitution")
	}
	if op.failOnWarning {
		args = append(args, "-failOnWarning")
	}
	if len(op.globalLinks) > 0 {
		args = append(args, "-globalLinks", joinMap(op.globalLinks, "^", "^^"))
	}
	if len(op.globalPackageOptions) > 0 {
		args = append(args, "-globalPackageOptions", strings.Join(op.globalPackageOptions, ";"))
	}
	if len(op.globalSrcLinks) > 0 {
		args = append(args, "-globalSrcLinks_", strings.Join(op.globalSrcLinks, ";"))
	}
	if len(op.includes) > 0 {
		args = append(args, "-includes", joinAbs(op.includes, ";"))
	}
	if op.loggingLevel != "" {
		args = append(args, "-loggingLevel", op.loggingLevel)
	}
	if op.moduleName != "" {
		args = append(args, "-moduleName", op.moduleName)
	}
	if op.moduleVersion != "" {
		args = append(args, "-moduleVersion", op.moduleVersion)
	}
	if op.noSuppressObviousFunctions {
		args = append(args, "-noSuppressObviousFunctions")
	}
	if op.offlineMode {
		args = append(args, "-offlineMode")
	}
	if op.outputDir != "" {
		args = append(args, "-outputDir", absPath(op.outputDir))
	}
	if len(op.pluginConfiguration) > 0 {
		args = append(args, "-pluginsConfiguration", op.renderPluginConfiguration())
	}
	if len(op.pluginsClasspath) > 0 {
		args = append(args, "-pluginsClasspath", joinAbs(op.pluginsClasspath, ";"))
	}
	for _, ss := range op.sourceSets {
		args = append(args, "-sourceSet", strings.Join(ss.Args(), " "))
	}
	if op.suppressInheritedMembers {
		args = append(args, "-suppressInheritedMembers")
	}

	return args
}

// renderPluginConfiguration renders fqName={json} entries joined by "^^",
// sorted by plugin name, with the JSON value string-escaped.
func (op *Operation) renderPluginConfiguration() string {
	names := make([]string, 0, len(op.pluginConfiguration))
	for name := range op.pluginConfiguration {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + jsonEscape(op.pluginConfiguration[name])
	}
	return strings.Join(parts, "^^")
}

// jsonEscape escapes s the way a JSON encoder escapes string contents,
// without the surrounding quotes.
func jsonEscape(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	return string(b[1 : len(b)-1])
}

// Execute validates preconditions, locates the CLI jar, and runs the
// generator to completion.
func (op *Operation) Execute(ctx context.Context) error {
	if op.proj == nil {
		return ErrNoProject
	}
	hasSources := false
	for _, ss := range op.sourceSets {
		if ss.HasSources() {
			hasSources = true
			break
		}
	}
	if !hasSources {
		return ErrNoSourceSets
	}

	cliJar, err := op.findCliJar()
	if err != nil {
		return err
	}

	args := append([]string{"-jar", cliJar}, op.Args()...)
	slog.Debug("Dokka invocation assembled", "jar", cliJar, "args", args)
	return op.runner.Run(ctx, op.proj.BaseDir, op.java, args)
}

// findCliJar resolves dokka-cli-*.jar in the libs directory; anything other
// than exactly one match means a missing or ambiguous installation.
func (op *Operation) findCliJar() (string, error) {
	matches, err := filepath.Glob(filepath.Join(op.libsDir, "dokka-cli-*.jar"))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCliJarNotFound, op.libsDir)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrCliJarNotFound, op.libsDir)
	case 1:
		return absPath(matches[0]), nil
	default:
		return "", fmt.Errorf("%w: %s: %s", ErrCliJarAmbiguous, op.libsDir, strings.Join(matches, ", "))
	}
}
