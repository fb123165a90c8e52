package checks

import (
	"fmt"

	"addressable-resources/core/database"
	"addressable-resources/feature/resources/collection"

	"gorm.io/gorm"
)

// SchemaReport is the result of a key table schema check.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
}

// CheckSchema verifies the persisted key table has every column the service uses.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	missing, err := database.MissingColumns(db, collection.TableName, collection.Columns)
	if err != nil {
		return nil, err
	}
	if missing == nil {
		missing = []string{}
	}
	return &SchemaReport{
		Table:          collection.TableName,
		Matched:        len(missing) == 0,
		MissingColumns: missing,
	}, nil
}
