package dokka

// OutputFormat selects the documentation output flavor. Each format ships as
// a set of Dokka plugin jars; choosing a format replaces the plugins
// classpath wholesale.
type OutputFormat string

const (
	FormatHTML     OutputFormat = "html"
	FormatJavadoc  OutputFormat = "javadoc"
	FormatMarkdown OutputFormat = "gfm"
	FormatJekyll   OutputFormat = "jekyll"
)

// formatPlugins maps each output format to the jar filename patterns resolved
// against the libs directory when that format is selected. Pattern order is
// classpath order.
var formatPlugins = map[OutputFormat][]string{
	FormatHTML: {
		"dokka-base-*.jar",
		"analysis-kotlin-descriptors-*.jar",
		"kotlinx-html-jvm-*.jar",
		"freemarker-*.jar",
	},
	FormatJavadoc: {
		"javadoc-plugin-*.jar",
		"analysis-kotlin-descriptors-*.jar",
		"kotlin-as-java-plugin-*.jar",
		"korte-jvm-*.jar",
	},
	FormatMarkdown: {
		"gfm-plugin-*.jar",
		"analysis-kotlin-descriptors-*.jar",
		"dokka-base-*.jar",
		"freemarker-*.jar",
	},
	FormatJekyll: {
		"jekyll-plugin-*.jar",
		"gfm-plugin-*.jar",
		"analysis-kotlin-descriptors-*.jar",
		"dokka-base-*.jar",
		"freemarker-*.jar",
	},
}

// ParseFormat normalizes a format name; ok is false for unknown names.
func ParseFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(s) {
	case FormatHTML, FormatJavadoc, FormatMarkdown, FormatJekyll:
		return OutputFormat(s), true
	case "markdown":
		return FormatMarkdown, true
	default:
		return "", false
	}
}
