package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Local keeps files on disk, the router serves them under /uploads
type Local struct {
	fs        afero.Fs
	publicURL string
}

// NewLocal stores files below dir
func NewLocal(dir, publicURL string) (*Local, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	return NewLocalFs(afero.NewBasePathFs(osFs, dir), publicURL), nil
}

// NewLocalFs stores files on any afero filesystem
func NewLocalFs(fs afero.Fs, publicURL string) *Local {
	return &Local{
		fs:        fs,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (l *Local) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	key = path.Clean("/" + key)

	if err := l.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s, %w", key, err)
	}

	f, err := l.fs.Create(key)
	if err != nil {
		return "", fmt.Errorf("failed to create %s, %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write %s, %w", key, err)
	}

	return l.publicURL + key, nil
}
