package collection

import (
	"context"
	"fmt"

	"addressable-resources/core/assets"

	"gorm.io/gorm"
)

// TableName is the table holding the persisted key table.
const TableName = "resource_keys"

// Columns lists the columns the service reads and writes.
var Columns = []string{"id", "position", "resource_key", "address"}

// Row is the database form of one entry.
type Row struct {
	ID       uint   `gorm:"primaryKey"`
	Position int    `gorm:"column:position;index"`
	Key      string `gorm:"column:resource_key;size:255;uniqueIndex"`
	Address  string `gorm:"column:address;size:1024"`
}

// TableName implements gorm's tabler.
func (Row) TableName() string {
	return TableName
}

// Migrate creates or updates the key table schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Row{})
}

// SaveToDB replaces the stored table with c in a single transaction.
func SaveToDB(ctx context.Context, db *gorm.DB, c *Collection) error {
	rows := make([]Row, len(c.keys))
	for i, k := range c.keys {
		rows[i] = Row{Position: i, Key: k, Address: c.references[i].Address}
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Row{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", TableName, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("failed to write %s: %w", TableName, err)
		}
		return nil
	})
}

// LoadFromDB reads the stored table in position order.
func LoadFromDB(ctx context.Context, db *gorm.DB) (*Collection, error) {
	var rows []Row
	if err := db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TableName, err)
	}
	c := New()
	for _, r := range rows {
		c.AddUnique(r.Key, assets.NewReference(r.Address))
	}
	return c, nil
}
