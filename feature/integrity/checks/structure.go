package checks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"addressable-resources/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MarkerFolder returns the placeholder object name of the marker folder under prefix.
func MarkerFolder(prefix, marker string) string {
	return path.Join(prefix, marker) + "/"
}

// CheckStructure verifies the bucket exists and that prefix holds a marker folder somewhere.
// It returns the marker placeholder when none is found.
func CheckStructure(ctx context.Context, client storage.Client, bucket, prefix, marker string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	needle := "/" + marker + "/"
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", bucket, obj.Err)
		}
		if strings.Contains("/"+obj.Key, needle) {
			return nil, nil
		}
	}
	return []string{MarkerFolder(prefix, marker)}, nil
}

// FixStructure creates the missing folder placeholders.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		_, err := client.PutObject(ctx, bucket, folder, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
