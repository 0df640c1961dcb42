package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// requiredColumns lists the columns the store reads and writes.
var requiredColumns = map[string][]string{
	"vehicles": {"uuid", "code", "max_speed", "has_box", "has_helmet", "zone", "kind", "vendor", "license_plate"},
	"logs":     {"id", "vehicle_uuid", "time", "lat", "lng", "battery", "rentable", "state"},
}

// GetTableColumns retrieves the column definitions for a given table.
// Field and Type are lower-cased.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	switch db.Dialector.Name() {
	case "sqlite":
		type SQLiteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []SQLiteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil

	case "postgres":
		err := db.Raw(`SELECT column_name AS field, data_type AS type, is_nullable AS "null"
			FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = ?
			ORDER BY ordinal_position`, tableName).Scan(&columns).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}

	default:
		err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
	}

	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// VerifySchema checks that the vehicles and logs tables exist with every column the store uses.
func VerifySchema(db *gorm.DB) error {
	var missing []string
	for _, table := range []string{"vehicles", "logs"} {
		columns, err := GetTableColumns(db, table)
		if err != nil {
			return err
		}
		present := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			present[col.Field] = struct{}{}
		}
		for _, want := range requiredColumns[table] {
			if _, ok := present[want]; !ok {
				missing = append(missing, table+"."+want)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema is not migrated, missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
