package collection

import (
	"context"
	"fmt"

	"addressable-resources/core/assets"
	"addressable-resources/core/reconcile"

	"gorm.io/gorm"
)

// Index converts c into a reconcile index of key to address.
func Index(c *Collection) reconcile.Index {
	index := make(reconcile.Index, len(c.keys))
	for i, k := range c.keys {
		index[k] = c.references[i].Address
	}
	return index
}

// ApplyActions mutates c according to a reconcile plan. Updated keys keep their position.
func ApplyActions(c *Collection, actions []reconcile.Action) {
	for _, a := range actions {
		switch a.Type {
		case reconcile.ActionAdd, reconcile.ActionUpdate:
			c.Set(a.Key, assets.NewReference(a.Address))
		case reconcile.ActionRemove:
			c.RemoveWithKey(a.Key)
		}
	}
}

// ScanSource exposes a read-only table producer, such as a discovery scan, to reconcile.
func ScanSource(name string, scan func(ctx context.Context) (*Collection, error)) reconcile.Source {
	return reconcile.NewSource(name, func(ctx context.Context) (reconcile.Index, error) {
		c, err := scan(ctx)
		if err != nil {
			return nil, err
		}
		return Index(c), nil
	})
}

// ManifestSource is a manifest file that reconcile can read and rewrite.
type ManifestSource struct {
	Path string
}

// Name implements reconcile.Source.
func (m *ManifestSource) Name() string { return "manifest" }

// LoadIndex implements reconcile.Source.
func (m *ManifestSource) LoadIndex(ctx context.Context) (reconcile.Index, error) {
	c, err := LoadManifestFile(m.Path)
	if err != nil {
		return nil, err
	}
	return Index(c), nil
}

// Apply implements reconcile.Mutator.
func (m *ManifestSource) Apply(ctx context.Context, actions []reconcile.Action) error {
	c, err := LoadManifestFile(m.Path)
	if err != nil {
		return err
	}
	ApplyActions(c, actions)
	if err := SaveManifestFile(m.Path, c); err != nil {
		return fmt.Errorf("failed to rewrite manifest: %w", err)
	}
	return nil
}

// DBSource is the database key table.
type DBSource struct {
	DB *gorm.DB
}

// Name implements reconcile.Source.
func (d *DBSource) Name() string { return "database" }

// LoadIndex implements reconcile.Source.
func (d *DBSource) LoadIndex(ctx context.Context) (reconcile.Index, error) {
	c, err := LoadFromDB(ctx, d.DB)
	if err != nil {
		return nil, err
	}
	return Index(c), nil
}

// Apply implements reconcile.Mutator.
func (d *DBSource) Apply(ctx context.Context, actions []reconcile.Action) error {
	c, err := LoadFromDB(ctx, d.DB)
	if err != nil {
		return err
	}
	ApplyActions(c, actions)
	return SaveToDB(ctx, d.DB, c)
}
