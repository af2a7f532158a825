package analyzer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// CompileExcludes turns config exclude patterns into matchers. A bad pattern
// fails loudly rather than silently analyzing excluded targets.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Discover lists the plugin directories to analyze, in lexical order. When
// only is non-empty those names are resolved directly; otherwise every
// plugin-* directory containing TypeScript sources is returned, minus
// excluded names.
func Discover(pluginsDir string, only []string, excludes []glob.Glob) ([]string, error) {
	if len(only) > 0 {
		paths := make([]string, 0, len(only))
		for _, name := range only {
			paths = append(paths, filepath.Join(pluginsDir, name))
		}
		return paths, nil
	}

	matches, err := filepath.Glob(filepath.Join(pluginsDir, "plugin-*"))
	if err != nil {
		return nil, fmt.Errorf("scanning plugins directory: %w", err)
	}

	var paths []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		if excluded(filepath.Base(m), excludes) {
			continue
		}
		if hasTypeScript(m) {
			paths = append(paths, m)
		}
	}
	return paths, nil
}

func excluded(name string, excludes []glob.Glob) bool {
	for _, g := range excludes {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// hasTypeScript reports whether any .ts or .tsx file exists under dir.
func hasTypeScript(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
