package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// WalkDirectory lists the supported card files under root in lexical order.
// Hidden files and directories are skipped when skipHidden is set.
func WalkDirectory(root string, skipHidden bool) ([]string, DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, errors.New("root_path is required")
	}

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			stats.Failed++
			return nil // continue walking
		}
		// skip hidden dirs/files if requested; never the root itself
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		out = append(out, path)
		return nil
	})
	if err != nil {
		return out, stats, fmt.Errorf("walk: %w", err)
	}
	return out, stats, nil
}
