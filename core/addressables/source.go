package addressables

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"addressable-resources/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/singleflight"
)

// Source fetches the raw payload stored at an address.
type Source interface {
	Fetch(ctx context.Context, address string) ([]byte, error)
}

// StorageSource reads payloads from an object storage bucket.
type StorageSource struct {
	client storage.Client
	bucket string
	prefix string
	group  singleflight.Group
}

// NewStorageSource creates a source reading from bucket under prefix.
func NewStorageSource(client storage.Client, bucket, prefix string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket, prefix: prefix}
}

// ObjectName returns the bucket object name for an address.
func (s *StorageSource) ObjectName(address string) string {
	if s.prefix == "" {
		return address
	}
	return path.Join(s.prefix, address)
}

// Fetch downloads the object. Concurrent fetches of one object share a single
// download, which runs detached from any one caller's cancellation.
func (s *StorageSource) Fetch(ctx context.Context, address string) ([]byte, error) {
	name := s.ObjectName(address)
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(name, func() (interface{}, error) {
		obj, err := s.client.GetObject(shared, s.bucket, name, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		defer obj.Close()
		return io.ReadAll(obj)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		if storage.IsNotFound(res.Err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", name, res.Err)
	}
	return res.Val.([]byte), nil
}

// DirSource reads payloads from a file system tree.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource creates a source over fsys, typically os.DirFS(contentRoot).
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Fetch reads the file at address.
func (s *DirSource) Fetch(_ context.Context, address string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, address)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, address)
		}
		return nil, err
	}
	return data, nil
}

// AssetName derives a display name from an address: the base name without extension.
func AssetName(address string) string {
	base := path.Base(address)
	return base[:len(base)-len(path.Ext(base))]
}
