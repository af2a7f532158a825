// Package root locates the monorepo workspace root so subcommands can run
// from anywhere inside it.
package root

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindWorkspaceRoot walks up from the current directory looking for the
// monorepo root, marked by .git/ or a package.json next to a packages/
// directory.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return findWorkspaceRootFrom(dir)
}

func findWorkspaceRootFrom(dir string) (string, error) {
	for {
		if isDir(filepath.Join(dir, ".git")) || isMonorepoRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find workspace root (no .git/ or package.json with packages/ found)")
		}
		dir = parent
	}
}

func isMonorepoRoot(dir string) bool {
	return isFile(filepath.Join(dir, "package.json")) && isDir(filepath.Join(dir, "packages"))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
