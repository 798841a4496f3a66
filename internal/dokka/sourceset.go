package dokka

import (
	"path/filepath"
	"sort"
	"strings"
)

// Visibility of declarations included in the documentation.
type Visibility string

const (
	VisibilityPublic    Visibility = "PUBLIC"
	VisibilityPrivate   Visibility = "PRIVATE"
	VisibilityProtected Visibility = "PROTECTED"
	VisibilityInternal  Visibility = "INTERNAL"
	VisibilityPackage   Visibility = "PACKAGE"
)

// SourceSet configures one documented source set. List-valued fields render
// in insertion order; map-valued fields render sorted by key so output is
// deterministic run to run.
type SourceSet struct {
	analysisPlatform    string
	apiVersion          string
	classpath           []string
	dependentSourceSets map[string]string
	displayName         string
	visibilities        []Visibility
	externalLinks       map[string]string
	includes            []string
	jdkVersion          string
	languageVersion     string
	noJdkLink           bool
	noSkipEmptyPackages bool
	noStdlibLink        bool
	perPackageOptions   []string
	reportUndocumented  bool
	samples             []string
	skipDeprecated      bool
	src                 []string
	srcLinks            map[string]string
	sourceSetName       string
	suppressedFiles     []string
}

func NewSourceSet() *SourceSet {
	return &SourceSet{
		dependentSourceSets: make(map[string]string),
		externalLinks:       make(map[string]string),
		srcLinks:            make(map[string]string),
	}
}

func (s *SourceSet) AnalysisPlatform(p string) *SourceSet { s.analysisPlatform = p; return s }

func (s *SourceSet) APIVersion(v string) *SourceSet { s.apiVersion = v; return s }

func (s *SourceSet) Classpath(paths ...string) *SourceSet {
	s.classpath = append(s.classpath, paths...)
	return s
}

// DependentSourceSet links this source set to another module's source set.
func (s *SourceSet) DependentSourceSet(moduleName, sourceSetName string) *SourceSet {
	s.dependentSourceSets[moduleName] = sourceSetName
	return s
}

func (s *SourceSet) DisplayName(name string) *SourceSet { s.displayName = name; return s }

func (s *SourceSet) DocumentedVisibilities(v ...Visibility) *SourceSet {
	s.visibilities = append(s.visibilities, v...)
	return s
}

// ExternalDocumentationLink registers a link root URL and the URL of its
// package-list.
func (s *SourceSet) ExternalDocumentationLink(url, packageListURL string) *SourceSet {
	s.externalLinks[url] = packageListURL
	return s
}

func (s *SourceSet) Includes(files ...string) *SourceSet {
	s.includes = append(s.includes, files...)
	return s
}

func (s *SourceSet) JDKVersion(v string) *SourceSet { s.jdkVersion = v; return s }

func (s *SourceSet) LanguageVersion(v string) *SourceSet { s.languageVersion = v; return s }

func (s *SourceSet) NoJDKLink(b bool) *SourceSet { s.noJdkLink = b; return s }

func (s *SourceSet) NoSkipEmptyPackages(b bool) *SourceSet { s.noSkipEmptyPackages = b; return s }

func (s *SourceSet) NoStdlibLink(b bool) *SourceSet { s.noStdlibLink = b; return s }

func (s *SourceSet) PerPackageOptions(opts ...string) *SourceSet {
	s.perPackageOptions = append(s.perPackageOptions, opts...)
	return s
}

func (s *SourceSet) ReportUndocumented(b bool) *SourceSet { s.reportUndocumented = b; return s }

func (s *SourceSet) Samples(files ...string) *SourceSet {
	s.samples = append(s.samples, files...)
	return s
}

func (s *SourceSet) SkipDeprecated(b bool) *SourceSet { s.skipDeprecated = b; return s }

// Src adds source directories or files to document.
func (s *SourceSet) Src(paths ...string) *SourceSet {
	s.src = append(s.src, paths...)
	return s
}

// HasSources reports whether any source path was configured.
func (s *SourceSet) HasSources() bool { return len(s.src) > 0 }

// SrcLink maps a local source path to the remote URL (with optional line
// suffix, e.g. "#L") readers are sent to.
func (s *SourceSet) SrcLink(path, url string) *SourceSet {
	s.srcLinks[path] = url
	return s
}

func (s *SourceSet) SourceSetName(name string) *SourceSet { s.sourceSetName = name; return s }

func (s *SourceSet) SuppressedFiles(files ...string) *SourceSet {
	s.suppressedFiles = append(s.suppressedFiles, files...)
	return s
}

// Args renders the source-set configuration as the inner tokens of a single
// -sourceSet argument, in fixed declaration order, omitting unset fields.
func (s *SourceSet) Args() []string {
	args := make([]string, 0, 24)

	if s.analysisPlatform != "" {
		args = append(args, "-analysisPlatform", s.analysisPlatform)
	}
	if s.apiVersion != "" {
		args = append(args, "-apiVersion", s.apiVersion)
	}
	if len(s.classpath) > 0 {
		abs := make([]string, len(s.classpath))
		for i, p := range s.classpath {
			abs[i] = absPath(p)
		}
		args = append(args, "-classpath", strings.Join(abs, ";"))
	}
	if len(s.dependentSourceSets) > 0 {
		args = append(args, "-dependentSourceSets", joinMap(s.dependentSourceSets, "/", ";"))
	}
	if s.displayName != "" {
		args = append(args, "-displayName", s.displayName)
	}
	if len(s.visibilities) > 0 {
		vis := make([]string, len(s.visibilities))
		for i, v := range s.visibilities {
			vis[i] = string(v)
		}
		args = append(args, "-documentedVisibilities", strings.Join(vis, ";"))
	}
	if len(s.externalLinks) > 0 {
		args = append(args, "-externalDocumentationLinks", joinMap(s.externalLinks, "^", "^^"))
	}
	if len(s.includes) > 0 {
		args = append(args, "-includes", joinAbs(s.includes, ";"))
	}
	if s.jdkVersion != "" {
		args = append(args, "-jdkVersion", s.jdkVersion)
	}
	if s.languageVersion != "" {
		args = append(args, "-languageVersion", s.languageVersion)
	}
	if s.noJdkLink {
		args = append(args, "-noJdkLink", "true")
	}
	if s.noSkipEmptyPackages {
		args = append(args, "-noSkipEmptyPackages", "true")
	}
	if s.noStdlibLink {
		args = append(args, "-noStdlibLink", "true")
	}
	if len(s.perPackageOptions) > 0 {
		args = append(args, "-perPackageOptions", strings.Join(s.perPackageOptions, ";"))
	}
	if s.reportUndocumented {
		args = append(args, "-reportUndocumented", "true")
	}
	if len(s.samples) > 0 {
		args = append(args, "-samples", joinAbs(s.samples, ";"))
	}
	if s.skipDeprecated {
		args = append(args, "-skipDeprecated", "true")
	}
	if len(s.src) > 0 {
		args = append(args, "-src", joinAbs(s.src, ";"))
	}
	if len(s.srcLinks) > 0 {
		args = append(args, "-srcLink", joinMap(s.srcLinks, "=", ";"))
	}
	if s.sourceSetName != "" {
		args = append(args, "-sourceSetName", s.sourceSetName)
	}
	if len(s.suppressedFiles) > 0 {
		args = append(args, "-suppressedFiles", joinAbs(s.suppressedFiles, ";"))
	}

	return args
}

func joinAbs(paths []string, sep string) string {
	abs := make([]string, len(paths))
	for i, p := range paths {
		abs[i] = absPath(p)
	}
	return strings.Join(abs, sep)
}

// joinMap renders map entries as key<kv>value joined by sep, sorted by key.
func joinMap(m map[string]string, kv, sep string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + kv + m[k]
	}
	return strings.Join(parts, sep)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
