package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory.
// Files whose content is unchanged are left alone. It returns the paths
// that were written.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	var written []string

	for _, file := range files {
		stale, err := Stale(file)
		if err != nil {
			return written, err
		}

		if !stale {
			continue
		}

		if file.Dir != "" {
			if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
				return written, fmt.Errorf("creating directory %s: %w", file.Dir, err)
			}
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Path(), err)
		}

		written = append(written, file.Path())
	}

	return written, nil
}

// Stale reports whether the file on disk is missing or differs from the
// generated content.
func Stale(file GeneratedFile) (bool, error) {
	current, err := os.ReadFile(file.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", file.Path(), err)
	}

	return !bytes.Equal(current, file.Content), nil
}

// Orphans returns generated files (by header) named output under dirs
// that were not produced in this run. Records that lost their directive
// leave such files behind.
func Orphans(dirs []string, output string, files []GeneratedFile) ([]string, error) {
	produced := make(map[string]bool, len(files))
	for _, f := range files {
		produced[filepath.Clean(f.Path())] = true
	}

	var orphans []string

	for _, dir := range dirs {
		p := filepath.Clean(filepath.Join(dir, output))
		if produced[p] {
			continue
		}

		content, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}

		if bytes.HasPrefix(content, []byte(Header)) {
			orphans = append(orphans, p)
		}
	}

	return orphans, nil
}
