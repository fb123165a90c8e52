package bundle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync/atomic"

	"addressable-resources/core/assets"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no bundled file matches a path.
var ErrNotFound = errors.New("bundled resource not found")

// Loader loads bundled resources by extensionless path.
type Loader struct {
	fsys     fs.FS
	registry *assets.Registry
	logger   *zap.Logger

	loads   atomic.Int64
	unloads atomic.Int64
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS, registry *assets.Registry, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, registry: registry, logger: logger}
}

// Load resolves p to a file named p.<ext> and decodes it as kind.
func (l *Loader) Load(_ context.Context, p string, kind assets.Kind) (assets.Object, error) {
	name, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	base := path.Base(name)
	obj, err := l.registry.Decode(kind, strings.TrimSuffix(base, path.Ext(base)), data)
	if err != nil {
		return nil, err
	}
	l.loads.Add(1)
	l.logger.Debug("Bundled resource loaded", zap.String("path", p), zap.String("file", name))
	return obj, nil
}

// Unload drops obj's payload when it supports unloading.
func (l *Loader) Unload(obj assets.Object) error {
	if obj == nil {
		return nil
	}
	if u, ok := obj.(assets.Unloader); ok {
		u.Unload()
	}
	l.unloads.Add(1)
	return nil
}

// Loads returns the number of successful loads.
func (l *Loader) Loads() int64 { return l.loads.Load() }

// Unloads returns the number of unload calls.
func (l *Loader) Unloads() int64 { return l.unloads.Load() }

func (l *Loader) resolve(p string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
	if clean == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, p)
	}
	dir, base := path.Split(clean)
	if dir == "" {
		dir = "."
	}
	dir = strings.TrimSuffix(dir, "/")

	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return "", err
	}
	// ReadDir sorts by name, so the first match is deterministic.
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || path.Ext(n) == ".meta" {
			continue
		}
		if strings.TrimSuffix(n, path.Ext(n)) == base {
			return path.Join(dir, n), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, p)
}
