package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Committer pushes rendered site files to the hosting target.
type Committer interface {
	PutFile(ctx context.Context, path, message string, content []byte) error
	DeleteFile(ctx context.Context, path, message string) error
}

// DirCommitter writes site files into a local directory. It backs the
// local site output and serves as the default when no GitHub repository
// is configured.
type DirCommitter struct {
	root string
}

// NewDirCommitter creates a committer rooted at dir.
func NewDirCommitter(dir string) *DirCommitter {
	return &DirCommitter{root: dir}
}

func (c *DirCommitter) PutFile(ctx context.Context, path, message string, content []byte) error {
	full := filepath.Join(c.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating site directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("writing site file %s: %w", path, err)
	}
	return nil
}

func (c *DirCommitter) DeleteFile(ctx context.Context, path, message string) error {
	full := filepath.Join(c.root, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing site file %s: %w", path, err)
	}
	return nil
}

// NoopCommitter discards site output. Used in tests and dry runs.
type NoopCommitter struct{}

func (NoopCommitter) PutFile(ctx context.Context, path, message string, content []byte) error {
	return nil
}

func (NoopCommitter) DeleteFile(ctx context.Context, path, message string) error {
	return nil
}
