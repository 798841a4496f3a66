package kotlinc

import (
	"log/slog"
	"os"
	"path/filepath"
)

// PluginID identifies a compiler plugin bundled with the Kotlin distribution.
// The set is fixed and closed; unknown references are treated as literal
// filesystem paths.
type PluginID string

const (
	PluginAllOpen              PluginID = "all-open"
	PluginAssignment           PluginID = "assignment"
	PluginCompose              PluginID = "compose"
	PluginKotlinImportsDumper  PluginID = "kotlin-imports-dumper"
	PluginKotlinxSerialization PluginID = "kotlinx-serialization"
	PluginKotlinSerialization  PluginID = "kotlin-serialization"
	PluginLombok               PluginID = "lombok"
	PluginNoArg                PluginID = "noarg"
	PluginPowerAssert          PluginID = "power-assert"
	PluginSamWithReceiver      PluginID = "sam-with-receiver"
)

// pluginJars maps each known plugin to its jar filename under <home>/lib.
var pluginJars = map[PluginID]string{
	PluginAllOpen:              "allopen-compiler-plugin.jar",
	PluginAssignment:           "assignment-compiler-plugin.jar",
	PluginCompose:              "compose-compiler-plugin.jar",
	PluginKotlinImportsDumper:  "kotlin-imports-dumper-compiler-plugin.jar",
	PluginKotlinxSerialization: "kotlinx-serialization-compiler-plugin.jar",
	PluginKotlinSerialization:  "kotlin-serialization-compiler-plugin.jar",
	PluginLombok:               "lombok-compiler-plugin.jar",
	PluginNoArg:                "noarg-compiler-plugin.jar",
	PluginPowerAssert:          "power-assert-compiler-plugin.jar",
	PluginSamWithReceiver:      "sam-with-receiver-compiler-plugin.jar",
}

// KnownPlugin reports whether ref names a bundled plugin.
func KnownPlugin(ref string) bool {
	_, ok := pluginJars[PluginID(ref)]
	return ok
}

// ResolvePlugins turns plugin references (symbolic ids and literal jar paths,
// in one ordered list) into absolute jar paths. A symbolic id resolves under
// <kotlinHome>/lib; with no home it cannot resolve. Missing jars of either
// form log a warning and are skipped — a compile never aborts over an absent
// plugin. The input list is not modified, so resolution can run once per
// compile phase against the same references.
func ResolvePlugins(refs []string, kotlinHome string) []string {
	if len(refs) == 0 {
		return nil
	}
	resolved := make([]string, 0, len(refs))
	for _, ref := range refs {
		if jar, ok := pluginJars[PluginID(ref)]; ok {
			if kotlinHome == "" {
				slog.Warn("Cannot resolve bundled compiler plugin without a Kotlin home", "plugin", ref)
				continue
			}
			path := filepath.Join(kotlinHome, "lib", jar)
			if !fileExists(path) {
				slog.Warn("Bundled compiler plugin jar not found", "plugin", ref, "path", path)
				continue
			}
			resolved = append(resolved, absPath(path))
			continue
		}
		if !fileExists(ref) {
			slog.Warn("Compiler plugin jar not found", "path", ref)
			continue
		}
		resolved = append(resolved, absPath(ref))
	}
	return resolved
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
