package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
project:
  name: widget
  version: 1.2.3
compiler:
  jdk_release: "17"
  opt_in:
    - kotlin.ExperimentalStdlibApi
  plugins:
    - kotlinx-serialization
  jvm_flags:
    - -Xmx2g
dokka:
  format: javadoc
  links:
    https://docs.example.com/: https://docs.example.com/package-list
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "widget", cfg.Project.Name)
	require.Equal(t, "1.2.3", cfg.Project.Version)
	require.Equal(t, "17", cfg.Compiler.JDKRelease)
	require.Equal(t, []string{"kotlin.ExperimentalStdlibApi"}, cfg.Compiler.OptIn)
	require.Equal(t, []string{"kotlinx-serialization"}, cfg.Compiler.Plugins)
	require.Equal(t, []string{"-Xmx2g"}, cfg.Compiler.JVMFlags)
	require.Equal(t, "javadoc", cfg.Dokka.Format)
	require.Equal(t, "https://docs.example.com/package-list", cfg.Dokka.Links["https://docs.example.com/"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("WIDGET_KOTLIN_HOME", "/opt/kotlin-2.1.0")
	path := writeConfig(t, `
project:
  name: widget
compiler:
  kotlin_home: ${WIDGET_KOTLIN_HOME}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/opt/kotlin-2.1.0", cfg.Compiler.KotlinHome)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "project:\n  name: widget\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "html", cfg.Dokka.Format)
	require.Equal(t, []string{"PUBLIC", "PROTECTED"}, cfg.Dokka.Visibilities)
}

func TestLoad_DefaultProjectNameFromWorkingDirectory(t *testing.T) {
	path := writeConfig(t, "compiler:\n  no_warn: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, filepath.Base(wd), cfg.Project.Name)
	require.True(t, cfg.Compiler.NoWarn)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "project: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "my-project", cfg.Project.Name)
	require.Equal(t, "17", cfg.Compiler.JDKRelease)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("project:\n  name: keep\n"), 0o644))

	err := Init(path, false)
	require.Error(t, err)

	require.NoError(t, Init(path, true))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "my-project", cfg.Project.Name)
}
