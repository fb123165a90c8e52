package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"addressable-resources/core/assets"
	"addressable-resources/core/storage"
	"addressable-resources/feature/resources/collection"

	"github.com/minio/minio-go/v7"
)

// RelativeKey returns the path of fullPath below the first marker folder,
// without extension. It returns "" when fullPath has no marker folder.
func RelativeKey(fullPath, marker string) string {
	if marker == "" {
		return ""
	}
	normalized := "/" + strings.ReplaceAll(fullPath, "\\", "/")
	folder := "/" + marker + "/"

	i := strings.Index(normalized, folder)
	if i < 0 {
		return ""
	}
	rel := normalized[i+len(folder):]
	if rel == "" || strings.HasSuffix(rel, "/") {
		return ""
	}
	dir, file := path.Split(rel)
	return dir + strings.TrimSuffix(file, path.Ext(file))
}

func skip(name string) bool {
	return strings.HasSuffix(name, "/") || path.Ext(name) == ".meta"
}

// ScanStorage lists bucket under prefix and collects every object inside a marker folder.
// Reference addresses are relative to prefix.
func ScanStorage(ctx context.Context, client storage.Client, bucket, prefix, marker string) (*collection.Collection, error) {
	c := collection.New()
	objects := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", bucket, obj.Err)
		}
		if skip(obj.Key) {
			continue
		}
		address := strings.TrimPrefix(strings.TrimPrefix(obj.Key, prefix), "/")
		if key := RelativeKey(address, marker); key != "" {
			c.AddUnique(key, assets.NewReference(address))
		}
	}
	return c, nil
}

// ScanDir walks fsys and collects every file inside a marker folder.
func ScanDir(fsys fs.FS, marker string) (*collection.Collection, error) {
	c := collection.New()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || skip(p) {
			return nil
		}
		if key := RelativeKey(p, marker); key != "" {
			c.AddUnique(key, assets.NewReference(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan content: %w", err)
	}
	return c, nil
}
