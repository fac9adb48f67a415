package main

import (
	"os"
	"path/filepath"
	"strings"
)

// cacheRoot is where fetched projects are checked out. SNAIL_CACHE overrides
// the per-user cache directory.
func cacheRoot() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("SNAIL_CACHE")); dir != "" {
		return filepath.Abs(dir)
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "snail"), nil
}

func historyPath() string {
	root, err := cacheRoot()
	if err != nil {
		return ""
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return ""
	}
	return filepath.Join(root, "repl-history")
}

// displayPath shortens path relative to the working directory when it lives
// underneath it.
func displayPath(path string) string {
	if path == "" {
		return ""
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
