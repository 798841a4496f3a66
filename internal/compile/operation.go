// Package compile orchestrates two-phase Kotlin compilation: main sources
// first, then test sources linked to main output via a friend path. Each
// phase assembles an argument file and launches the external compiler.
package compile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/ktbuild/internal/kotlinc"
	"git.home.luguber.info/inful/ktbuild/internal/project"
	"git.home.luguber.info/inful/ktbuild/internal/toolchain"
)

// Operation coordinates directory setup, source gathering, argument-file
// materialization and compiler invocation for the main and test phases.
// Configure with the fluent setters, then call Execute once.
type Operation struct {
	proj    *project.Project
	options *kotlinc.CompileOptions
	jvm     *kotlinc.JvmOptions
	env     toolchain.Environment
	runner  ProcessRunner

	executable string
	kotlinHome string
	plugins    []string

	mainSourceFiles []string
	mainSourceDirs  []string
	testSourceFiles []string
	testSourceDirs  []string

	compileMainClasspath []string
	compileTestClasspath []string

	buildMainDir string
	buildTestDir string

	skipTests bool

	report *Report
}

func NewOperation() *Operation {
	return &Operation{
		options: kotlinc.NewCompileOptions(),
		jvm:     kotlinc.NewJvmOptions(),
		env:     toolchain.OSEnvironment{},
		runner:  ExecRunner{},
	}
}

// FromProject configures source directories, output directories and the
// module name from a project's conventional layout. Explicit setters called
// afterwards override individual values.
func (op *Operation) FromProject(p *project.Project) *Operation {
	op.proj = p
	op.mainSourceDirs = []string{p.SrcMainDirectory()}
	op.testSourceDirs = []string{p.SrcTestDirectory()}
	op.buildMainDir = p.BuildMainDirectory()
	op.buildTestDir = p.BuildTestDirectory()
	if p.Name != "" {
		op.options.ModuleName(p.Name)
	}
	return op
}

func (op *Operation) CompileOptions(o *kotlinc.CompileOptions) *Operation {
	op.options = o
	return op
}

func (op *Operation) GetCompileOptions() *kotlinc.CompileOptions { return op.options }

func (op *Operation) JvmOptions(o *kotlinc.JvmOptions) *Operation {
	op.jvm = o
	return op
}

// Environment injects an alternative environment for compiler discovery.
func (op *Operation) Environment(env toolchain.Environment) *Operation {
	op.env = env
	return op
}

// Runner injects an alternative process runner.
func (op *Operation) Runner(r ProcessRunner) *Operation {
	op.runner = r
	return op
}

// Executable pins the compiler launcher path, bypassing discovery. The path
// is trusted verbatim; a bad path fails at launch time.
func (op *Operation) Executable(path string) *Operation {
	op.executable = path
	return op
}

// KotlinHome pins the Kotlin installation directory. A home that does not
// contain the compiler is a fatal error rather than a fall-through.
func (op *Operation) KotlinHome(path string) *Operation {
	op.kotlinHome = path
	return op
}

// Plugins adds compiler plugin references: bundled plugin ids or jar paths.
func (op *Operation) Plugins(refs ...string) *Operation {
	op.plugins = append(op.plugins, refs...)
	return op
}

func (op *Operation) MainSourceFiles(files ...string) *Operation {
	op.mainSourceFiles = append(op.mainSourceFiles, files...)
	return op
}

// MainSourceDirs replaces the main source directories from FromProject.
func (op *Operation) MainSourceDirs(dirs ...string) *Operation {
	op.mainSourceDirs = append([]string(nil), dirs...)
	return op
}

func (op *Operation) TestSourceFiles(files ...string) *Operation {
	op.testSourceFiles = append(op.testSourceFiles, files...)
	return op
}

// TestSourceDirs replaces the test source directories from FromProject.
func (op *Operation) TestSourceDirs(dirs ...string) *Operation {
	op.testSourceDirs = append([]string(nil), dirs...)
	return op
}

func (op *Operation) CompileMainClasspath(paths ...string) *Operation {
	op.compileMainClasspath = append(op.compileMainClasspath, paths...)
	return op
}

func (op *Operation) CompileTestClasspath(paths ...string) *Operation {
	op.compileTestClasspath = append(op.compileTestClasspath, paths...)
	return op
}

func (op *Operation) BuildMainDirectory(dir string) *Operation {
	op.buildMainDir = dir
	return op
}

func (op *Operation) BuildTestDirectory(dir string) *Operation {
	op.buildTestDir = dir
	return op
}

func (op *Operation) SkipTests(b bool) *Operation {
	op.skipTests = b
	return op
}

// Report returns the build report of the last Execute call.
func (op *Operation) Report() *Report { return op.report }

// Execute runs setup, the main phase and the test phase in order, stopping
// at the first fatal condition. A failed main phase prevents the test phase.
func (op *Operation) Execute(ctx context.Context) error {
	name := ""
	if op.proj != nil {
		name = op.proj.Name
	}
	op.report = newReport(name)

	stages := []stageDef{
		{Name: StageSetup, Fn: op.setup},
		{Name: StageCompileMain, Fn: op.compileMain},
	}
	if op.skipTests {
		slog.Info("Skipping test compilation")
	} else {
		stages = append(stages, stageDef{Name: StageCompileTest, Fn: op.compileTest})
	}

	err := runStages(ctx, op.report, stages)
	op.report.finish(err)
	return err
}

func (op *Operation) setup(_ context.Context) error {
	if op.proj == nil {
		return ErrNoProject
	}
	info, err := os.Stat(op.proj.BaseDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidBaseDir, op.proj.BaseDir)
	}
	for _, dir := range []string{op.buildMainDir, op.buildTestDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create build directory %s: %w", dir, err)
		}
	}
	return nil
}

func (op *Operation) compileMain(ctx context.Context) error {
	return op.compilePhase(ctx, StageCompileMain,
		op.mainSourceFiles, op.mainSourceDirs, op.compileMainClasspath, op.buildMainDir, "")
}

func (op *Operation) compileTest(ctx context.Context) error {
	classpath := append(append([]string(nil), op.compileTestClasspath...), op.buildMainDir)
	friend := ""
	// The friend path exposes internal declarations of main code to tests;
	// only meaningful once main output exists on disk.
	if info, err := os.Stat(op.buildMainDir); err == nil && info.IsDir() {
		friend = op.buildMainDir
	}
	return op.compilePhase(ctx, StageCompileTest,
		op.testSourceFiles, op.testSourceDirs, classpath, op.buildTestDir, friend)
}

// compilePhase gathers sources, renders the full argument list into a temp
// argfile, and runs `[executable] [jvm flags] @argfile` with inherited stdio.
func (op *Operation) compilePhase(ctx context.Context, stage StageName,
	files, dirs, classpath []string, destination, friendPath string) error {

	sources, err := project.GatherSources(files, dirs)
	if err != nil {
		return fmt.Errorf("gather sources: %w", err)
	}
	if len(sources) == 0 {
		slog.Info("No sources to compile, skipping phase", "stage", string(stage))
		op.report.recordPhase(stage, 0, true)
		return nil
	}
	op.report.recordPhase(stage, len(sources), false)

	discovery, err := toolchain.NewLocator(op.env).Find(op.executable, op.kotlinHome)
	if err != nil {
		return err
	}

	// The classpath and destination belong to the phase, not the option
	// container; clear them from the render copy so each appears exactly once.
	combined := append(append([]string(nil), classpath...), op.options.ClasspathEntries()...)
	opts := op.options.Copy().SetClasspath(nil).Destination("")

	args := make([]string, 0, len(sources)+32)
	if len(combined) > 0 {
		args = append(args, "-classpath", kotlinc.JoinClasspath(combined))
	}
	args = append(args, opts.Args()...)
	args = append(args, "-d", absPath(destination))
	if friendPath != "" {
		args = append(args, "-Xfriend-paths="+absPath(friendPath))
	}
	for _, jar := range kotlinc.ResolvePlugins(op.plugins, op.pluginHome(discovery)) {
		args = append(args, "-Xplugin="+jar)
	}
	args = append(args, sources...)

	argFile, err := WriteArgFile(args)
	if err != nil {
		return fmt.Errorf("write argument file: %w", err)
	}
	defer os.Remove(argFile)

	cmdArgs := append(op.jvm.Args(), "@"+argFile)
	slog.Debug("Compiler invocation assembled",
		"stage", string(stage), "executable", discovery.Executable,
		"args", cmdArgs, "argfile_entries", len(args))

	dir := ""
	if op.proj != nil {
		dir = op.proj.BaseDir
	}
	return op.runner.Run(ctx, dir, discovery.Executable, cmdArgs)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// pluginHome picks the Kotlin home used for bundled plugin resolution:
// explicit configuration wins, then the home inferred during discovery.
func (op *Operation) pluginHome(d toolchain.Discovery) string {
	if op.kotlinHome != "" {
		return op.kotlinHome
	}
	if home := op.options.GetKotlinHome(); home != "" {
		return home
	}
	return d.Home
}
