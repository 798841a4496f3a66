// Package config loads the ktbuild.yaml project configuration: project
// identity, compiler settings and documentation settings. Environment
// variables referenced in the file are expanded before parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration filename looked up in the project root.
const DefaultFile = "ktbuild.yaml"

// Config is the root of ktbuild.yaml.
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Compiler CompilerConfig `yaml:"compiler"`
	Dokka    DokkaConfig    `yaml:"dokka"`
}

// ProjectConfig identifies the project being built.
type ProjectConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	// ModuleName overrides the compiler module name; defaults to Name.
	ModuleName string `yaml:"module_name,omitempty"`
}

// CompilerConfig configures compiler discovery and per-compile options.
type CompilerConfig struct {
	// Executable pins the kotlinc launcher; bypasses discovery when set.
	Executable string `yaml:"executable,omitempty"`
	// KotlinHome pins the installation root; a home without a compiler is fatal.
	KotlinHome string `yaml:"kotlin_home,omitempty"`

	APIVersion      string   `yaml:"api_version,omitempty"`
	LanguageVersion string   `yaml:"language_version,omitempty"`
	JVMTarget       string   `yaml:"jvm_target,omitempty"`
	JDKRelease      string   `yaml:"jdk_release,omitempty"`
	OptIn           []string `yaml:"opt_in,omitempty"`
	Progressive     bool     `yaml:"progressive,omitempty"`
	NoWarn          bool     `yaml:"no_warn,omitempty"`
	WError          bool     `yaml:"werror,omitempty"`
	WExtra          bool     `yaml:"wextra,omitempty"`
	Verbose         bool     `yaml:"verbose,omitempty"`
	Advanced        []string `yaml:"advanced,omitempty"`

	// Plugins lists compiler plugin references: bundled ids or jar paths.
	Plugins []string `yaml:"plugins,omitempty"`
	// JVMFlags are passed to the compiler JVM via the launcher's -J prefix.
	JVMFlags []string `yaml:"jvm_flags,omitempty"`

	MainClasspath []string `yaml:"main_classpath,omitempty"`
	TestClasspath []string `yaml:"test_classpath,omitempty"`

	// Directory overrides; conventional src/build layout applies when unset.
	MainSourceDirs []string `yaml:"main_source_dirs,omitempty"`
	TestSourceDirs []string `yaml:"test_source_dirs,omitempty"`
	BuildMainDir   string   `yaml:"build_main_dir,omitempty"`
	BuildTestDir   string   `yaml:"build_test_dir,omitempty"`
}

// DokkaConfig configures documentation generation.
type DokkaConfig struct {
	LibsDir       string            `yaml:"libs_dir,omitempty"`
	Format        string            `yaml:"format,omitempty"`
	OutputDir     string            `yaml:"output_dir,omitempty"`
	Includes      []string          `yaml:"includes,omitempty"`
	Visibilities  []string          `yaml:"visibilities,omitempty"`
	Links         map[string]string `yaml:"links,omitempty"`
	SourceLink    *SourceLinkConfig `yaml:"source_link,omitempty"`
	FailOnWarning bool              `yaml:"fail_on_warning,omitempty"`
	OfflineMode   bool              `yaml:"offline_mode,omitempty"`
}

// SourceLinkConfig maps local sources to a remote browser URL. When URL is
// empty it is derived from the local git repository's origin remote.
type SourceLinkConfig struct {
	Path   string `yaml:"path,omitempty"`
	URL    string `yaml:"url,omitempty"`
	Suffix string `yaml:"suffix,omitempty"`
}

// Load loads configuration from the specified file, expanding environment
// variables in the YAML content and applying defaults.
func Load(configPath string) (*Config, error) {
	LoadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Project.Name == "" {
		if wd, err := os.Getwd(); err == nil {
			c.Project.Name = filepath.Base(wd)
		}
	}
	if c.Dokka.Format == "" {
		c.Dokka.Format = "html"
	}
	if len(c.Dokka.Visibilities) == 0 {
		c.Dokka.Visibilities = []string{"PUBLIC", "PROTECTED"}
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Project: ProjectConfig{Name: "my-project", Version: "0.1.0"},
		Compiler: CompilerConfig{
			JDKRelease: "17",
			OptIn:      []string{},
			Plugins:    []string{},
		},
		Dokka: DokkaConfig{
			Format: "html",
			Links: map[string]string{
				"https://kotlinlang.org/api/kotlinx.coroutines/": "https://kotlinlang.org/api/kotlinx.coroutines/package-list",
			},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
