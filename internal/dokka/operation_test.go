package dokka

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/ktbuild/internal/project"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	name string
	args []string
	runs int
}

func (r *recordingRunner) Run(_ context.Context, _ string, name string, args []string) error {
	r.name = name
	r.args = args
	r.runs++
	return nil
}

func newDocProject(t *testing.T) *project.Project {
	t.Helper()
	base := t.TempDir()
	proj := project.New("widget", base)
	src := proj.SrcMainDirectory()
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Main.kt"), []byte("fun main() {}\n"), 0o644))
	return proj
}

func installDokka(t *testing.T, dir string, jars ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, jar := range jars {
		require.NoError(t, os.WriteFile(filepath.Join(dir, jar), []byte("jar"), 0o644))
	}
}

func TestExecute_NoProject_Fatal(t *testing.T) {
	err := NewOperation().Runner(&recordingRunner{}).Execute(context.Background())
	require.ErrorIs(t, err, ErrNoProject)
}

func TestExecute_NoSourceSets_Fatal(t *testing.T) {
	proj := newDocProject(t)
	op := NewOperation().Runner(&recordingRunner{})
	op.proj = proj // project without any source set configured
	err := op.Execute(context.Background())
	require.ErrorIs(t, err, ErrNoSourceSets)
}

func TestExecute_MissingCliJar_Fatal(t *testing.T) {
	proj := newDocProject(t)
	op := NewOperation().FromProject(proj).Runner(&recordingRunner{})
	err := op.Execute(context.Background())
	require.ErrorIs(t, err, ErrCliJarNotFound)
}

func TestExecute_AmbiguousCliJar_Fatal(t *testing.T) {
	proj := newDocProject(t)
	libs := t.TempDir()
	installDokka(t, libs, "dokka-cli-1.9.0.jar", "dokka-cli-1.9.20.jar")

	op := NewOperation().FromProject(proj).LibsDirectory(libs).Runner(&recordingRunner{})
	err := op.Execute(context.Background())
	require.ErrorIs(t, err, ErrCliJarAmbiguous)
}

func TestExecute_SingleCliJar_RunsJavaDashJar(t *testing.T) {
	proj := newDocProject(t)
	libs := t.TempDir()
	installDokka(t, libs, "dokka-cli-1.9.20.jar")
	runner := &recordingRunner{}

	op := NewOperation().FromProject(proj).LibsDirectory(libs).Runner(runner)
	require.NoError(t, op.Execute(context.Background()))

	require.Equal(t, 1, runner.runs)
	require.Equal(t, "java", runner.name)
	require.Equal(t, "-jar", runner.args[0])
	require.Contains(t, runner.args[1], "dokka-cli-1.9.20.jar")
}

func TestOutputFormat_RepopulatesPluginsClasspath(t *testing.T) {
	libs := t.TempDir()
	installDokka(t, libs,
		"dokka-base-1.9.20.jar",
		"analysis-kotlin-descriptors-1.9.20.jar",
		"kotlinx-html-jvm-0.9.1.jar",
		"freemarker-2.3.31.jar",
		"gfm-plugin-1.9.20.jar",
	)

	op := NewOperation().LibsDirectory(libs)
	op.OutputFormat(FormatHTML)
	htmlLen := len(op.pluginsClasspath)
	require.Equal(t, 4, htmlLen)

	// Selecting another format replaces, not appends.
	op.OutputFormat(FormatMarkdown)
	for _, jar := range op.pluginsClasspath {
		require.NotContains(t, jar, "kotlinx-html-jvm")
	}
}

func TestOutputFormat_MissingPluginJar_SkippedWithWarning(t *testing.T) {
	libs := t.TempDir()
	installDokka(t, libs, "dokka-base-1.9.20.jar")

	op := NewOperation().LibsDirectory(libs)
	op.OutputFormat(FormatHTML)
	require.Len(t, op.pluginsClasspath, 1)
}

func TestArgs_FixedOrder_OmitsUnset(t *testing.T) {
	op := NewOperation().
		ModuleName("widget").
		ModuleVersion("1.0.0").
		FailOnWarning(true).
		OutputDir("/docs/out")

	args := op.Args()
	require.Equal(t, "-failOnWarning", args[0])
	require.Equal(t, []string{"-moduleName", "widget", "-moduleVersion", "1.0.0"}, args[1:5])
	require.NotContains(t, args, "-offlineMode")
	require.NotContains(t, args, "-loggingLevel")
}

func TestArgs_GlobalLinks_CaretSeparated(t *testing.T) {
	op := NewOperation().GlobalLink("https://docs.example.com/", "https://docs.example.com/package-list")
	args := op.Args()
	require.Equal(t, []string{
		"-globalLinks",
		"https://docs.example.com/^https://docs.example.com/package-list",
	}, args)
}

func TestArgs_PluginConfiguration_JSONEscaped(t *testing.T) {
	op := NewOperation().PluginConfiguration(
		"org.jetbrains.dokka.base.DokkaBase", `{"separateInheritedMembers": true}`)

	args := op.Args()
	require.Equal(t, "-pluginsConfiguration", args[0])
	require.Equal(t,
		`org.jetbrains.dokka.base.DokkaBase={\"separateInheritedMembers\": true}`,
		args[1])
}

func TestArgs_SourceSets_OneCompositeTokenEach(t *testing.T) {
	ss := NewSourceSet().Src("/src/main/kotlin").DisplayName("jvm")
	op := NewOperation().SourceSets(ss)

	args := op.Args()
	require.Equal(t, "-sourceSet", args[0])
	require.Contains(t, args[1], "-displayName jvm")
	require.Contains(t, args[1], "-src ")
}

func TestSourceSetArgs_FixedOrderAndJoins(t *testing.T) {
	ss := NewSourceSet().
		SkipDeprecated(true).
		DocumentedVisibilities(VisibilityPublic, VisibilityInternal).
		Src("/src/a", "/src/b").
		DisplayName("jvm")

	args := ss.Args()
	require.Equal(t, []string{
		"-displayName", "jvm",
		"-documentedVisibilities", "PUBLIC;INTERNAL",
		"-skipDeprecated", "true",
		"-src", "/src/a;/src/b",
	}, args)
}

func TestSourceSetArgs_MapsSortedByKey(t *testing.T) {
	ss := NewSourceSet().
		ExternalDocumentationLink("https://z.example.com/", "https://z.example.com/package-list").
		ExternalDocumentationLink("https://a.example.com/", "https://a.example.com/package-list")

	args := ss.Args()
	require.Equal(t, "-externalDocumentationLinks", args[0])
	require.True(t, strings.Index(args[1], "https://a.example.com") < strings.Index(args[1], "https://z.example.com"))
}

func TestSourceSetArgs_DependentSourceSets_SlashForm(t *testing.T) {
	ss := NewSourceSet().DependentSourceSet("moduleA", "main")
	require.Equal(t, []string{"-dependentSourceSets", "moduleA/main"}, ss.Args())
}

func TestParseFormat_NormalizesAliases(t *testing.T) {
	f, ok := ParseFormat("markdown")
	require.True(t, ok)
	require.Equal(t, FormatMarkdown, f)

	_, ok = ParseFormat("pdf")
	require.False(t, ok)
}
