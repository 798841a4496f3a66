package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/ktbuild/internal/compile"
	"git.home.luguber.info/inful/ktbuild/internal/config"
	"git.home.luguber.info/inful/ktbuild/internal/kotlinc"
	"git.home.luguber.info/inful/ktbuild/internal/project"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"ktbuild.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build     BuildCmd     `cmd:"" help:"Compile main and test sources"`
	Doc       DocCmd       `cmd:"" help:"Generate API documentation with Dokka"`
	Watch     WatchCmd     `cmd:"" help:"Recompile automatically when sources change"`
	Clean     CleanCmd     `cmd:"" help:"Remove build output directories"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
	Toolchain ToolchainCmd `cmd:"" help:"Show the discovered Kotlin compiler"`
	History   HistoryCmd   `cmd:"" help:"Show recent build outcomes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadProject binds the configured project identity to the current working
// directory, which is the tree being built.
func loadProject(cfg *config.Config) (*project.Project, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	p := project.New(cfg.Project.Name, wd)
	p.Version = cfg.Project.Version
	return p, nil
}

// newCompileOperation maps the configuration onto a compile operation.
// Shared by build and watch.
func newCompileOperation(cfg *config.Config, proj *project.Project, skipTests bool) *compile.Operation {
	options := kotlinc.NewCompileOptions()
	cc := cfg.Compiler
	if cc.APIVersion != "" {
		options.APIVersion(cc.APIVersion)
	}
	if cc.LanguageVersion != "" {
		options.LanguageVersion(cc.LanguageVersion)
	}
	if cc.JVMTarget != "" {
		options.JVMTarget(cc.JVMTarget)
	}
	if cc.JDKRelease != "" {
		options.JDKRelease(cc.JDKRelease)
	}
	if len(cc.OptIn) > 0 {
		options.OptIn(cc.OptIn...)
	}
	options.Progressive(cc.Progressive)
	options.NoWarn(cc.NoWarn)
	options.WError(cc.WError)
	options.WExtra(cc.WExtra)
	options.Verbose(cc.Verbose)
	if len(cc.Advanced) > 0 {
		options.Advanced(cc.Advanced...)
	}

	jvm := kotlinc.NewJvmOptions()
	if len(cc.JVMFlags) > 0 {
		jvm.Add(cc.JVMFlags...)
	}

	// The container swap must precede FromProject so the module name derived
	// from the project lands on the container that is actually rendered.
	op := compile.NewOperation().
		CompileOptions(options).
		FromProject(proj).
		JvmOptions(jvm).
		Executable(cc.Executable).
		KotlinHome(cc.KotlinHome).
		Plugins(cc.Plugins...).
		CompileMainClasspath(cc.MainClasspath...).
		CompileTestClasspath(cc.TestClasspath...).
		SkipTests(skipTests)

	if len(cc.MainSourceDirs) > 0 {
		op.MainSourceDirs(cc.MainSourceDirs...)
	}
	if len(cc.TestSourceDirs) > 0 {
		op.TestSourceDirs(cc.TestSourceDirs...)
	}
	if cc.BuildMainDir != "" {
		op.BuildMainDirectory(cc.BuildMainDir)
	}
	if cc.BuildTestDir != "" {
		op.BuildTestDirectory(cc.BuildTestDir)
	}
	if cfg.Project.ModuleName != "" {
		op.GetCompileOptions().ModuleName(cfg.Project.ModuleName)
	}
	return op
}

// stateDir is where build history lives, inside the build tree.
func stateDir(proj *project.Project) string {
	return filepath.Join(proj.BuildDirectory(), "state")
}
