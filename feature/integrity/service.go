package integrity

import (
	"context"

	"addressable-resources/core/storage"
	"addressable-resources/feature/integrity/checks"
	"addressable-resources/feature/resources/collection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TableProvider supplies the key table to check.
type TableProvider interface {
	Table() *collection.Collection
}

type staticTable struct {
	table *collection.Collection
}

func (s staticTable) Table() *collection.Collection { return s.table }

// StaticTable wraps a fixed table as a TableProvider.
func StaticTable(c *collection.Collection) TableProvider {
	return staticTable{table: c}
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	marker string
	tables TableProvider
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. db may be nil when the key table is not persisted.
func NewService(client storage.Client, bucket, prefix, marker string, tables TableProvider, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		marker: marker,
		tables: tables,
		db:     db,
		logger: logger,
	}
}

// CheckStructure returns the missing marker folder, if any.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.prefix, s.marker)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckReferences verifies every key's reference exists in the bucket.
func (s *Service) CheckReferences(ctx context.Context) (*checks.ReferenceReport, error) {
	return checks.CheckReferences(ctx, s.client, s.bucket, s.prefix, s.tables.Table())
}

// CheckSchema verifies the persisted key table schema.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// HasDatabase reports whether a database is configured.
func (s *Service) HasDatabase() bool {
	return s.db != nil
}
