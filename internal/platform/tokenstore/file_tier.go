package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// FileTier keeps the token in a 0600 file.
type FileTier struct {
	path string
}

var _ Tier = (*FileTier)(nil)

func NewFileTier(dir, name string) *FileTier {
	return &FileTier{path: filepath.Join(dir, name+".token")}
}

// TokenFileName derives a stable file name from the API base URL, so tokens for
// different backends do not overwrite each other.
func TokenFileName(baseURL string) string {
	name := slug.Make(baseURL)
	if name == "" {
		return "default"
	}
	return name
}

func (f *FileTier) Path() string {
	return f.path
}

func (f *FileTier) Get(_ context.Context) (string, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	return token, token != "", nil
}

func (f *FileTier) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

func (f *FileTier) Remove(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}
	return nil
}
