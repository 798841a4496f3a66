package project

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// KotlinExtension is the source-file extension gathered for compilation.
const KotlinExtension = ".kt"

// GatherSources combines explicitly listed files with the recursive expansion
// of each source directory, returning absolute paths. Missing directories are
// skipped with a debug log rather than failing the build; a project without a
// test tree is normal.
func GatherSources(files []string, dirs []string) ([]string, error) {
	sources := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, abs)
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Debug("Source directory does not exist, skipping", "dir", dir)
			continue
		}
		found, err := walkSources(dir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	return sources, nil
}

// walkSources collects every Kotlin file under root, regardless of depth.
func walkSources(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), KotlinExtension) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		out = append(out, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
