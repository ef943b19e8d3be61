// Package submission loads submitted files from disk into the pipeline's
// in-memory representation.
package submission

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vieraprotocol/subvet/internal/domain"
)

var skipDirs = map[string]bool{
	".git":         true,
	".subvet":      true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"dist":         true,
}

// Loader reads submission files from the filesystem.
type Loader struct{}

func New() *Loader {
	return &Loader{}
}

// Load resolves each path into FileInfos. Directories are walked
// recursively with the usual scratch directories skipped; file order is
// deterministic (walk order per path, paths in argument order).
func (l *Loader) Load(paths []string) ([]domain.FileInfo, error) {
	var files []domain.FileInfo

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading submission path: %w", err)
		}

		if !info.IsDir() {
			file, err := loadFile(path)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			file, err := loadFile(p)
			if err != nil {
				return err
			}
			files = append(files, file)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking submission directory: %w", err)
		}
	}

	return files, nil
}

func loadFile(path string) (domain.FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.FileInfo{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return domain.FileInfo{
		Name:    filepath.Base(path),
		Size:    int64(len(content)),
		Content: content,
	}, nil
}
