package checks

import (
	"context"
	"fmt"
	"path"

	"addressable-resources/core/storage"
	"addressable-resources/feature/resources/collection"

	"github.com/minio/minio-go/v7"
)

// MissingReference is a key whose reference has no object in the bucket.
type MissingReference struct {
	Key     string `json:"key"`
	Address string `json:"address"`
}

// ReferenceReport is the result of a reference check.
type ReferenceReport struct {
	Checked int                `json:"checked"`
	Missing []MissingReference `json:"missing"`
	Matched bool               `json:"matched"`
}

// CheckReferences stats every reference in table under prefix.
func CheckReferences(ctx context.Context, client storage.Client, bucket, prefix string, table *collection.Collection) (*ReferenceReport, error) {
	if table == nil {
		return nil, fmt.Errorf("key table is nil")
	}

	report := &ReferenceReport{Missing: []MissingReference{}}
	for _, e := range table.Entries() {
		report.Checked++
		_, err := client.StatObject(ctx, bucket, path.Join(prefix, e.Reference.Address), minio.StatObjectOptions{})
		if err == nil {
			continue
		}
		if storage.IsNotFound(err) {
			report.Missing = append(report.Missing, MissingReference{Key: e.Key, Address: e.Reference.Address})
			continue
		}
		return nil, fmt.Errorf("failed to stat %s: %w", e.Reference.Address, err)
	}
	report.Matched = len(report.Missing) == 0
	return report, nil
}
