package commands

import (
	"testing"

	"git.home.luguber.info/inful/ktbuild/internal/config"
	"git.home.luguber.info/inful/ktbuild/internal/project"
	"github.com/stretchr/testify/require"
)

func TestNewCompileOperation_ModuleNameFromProject(t *testing.T) {
	cfg := &config.Config{}
	cfg.Project.Name = "widget"
	cfg.Compiler.JDKRelease = "17"
	proj := project.New(cfg.Project.Name, t.TempDir())

	args := newCompileOperation(cfg, proj, false).GetCompileOptions().Args()
	require.Contains(t, args, "-module-name")
	require.Contains(t, args, "widget")
	// Config-built options and the project module name land on the same container.
	require.Contains(t, args, "-Xjdk-release=17")
}

func TestNewCompileOperation_ModuleNameOverride_Wins(t *testing.T) {
	cfg := &config.Config{}
	cfg.Project.Name = "widget"
	cfg.Project.ModuleName = "com.example.widget"
	proj := project.New(cfg.Project.Name, t.TempDir())

	args := newCompileOperation(cfg, proj, false).GetCompileOptions().Args()
	require.Equal(t, []string{"-module-name", "com.example.widget"}, args)
}
