package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Benefits is a text[] column on postgres and an encoded array literal elsewhere.
type Benefits []string

func (b Benefits) Value() (driver.Value, error) {
	if b == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(b).Value()
}

func (b *Benefits) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan benefits: %w", err)
	}
	*b = Benefits(arr)
	return nil
}

func (Benefits) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json source %T", src)
	}
}

func jsonDataType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}
