package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// NutrientMap is a custom type for the opaque nutrient mapping stored as JSONB.
// Values are free-form text and may carry units (e.g. "320 kcal").
type NutrientMap map[string]string

// Value implements the driver.Valuer interface
func (m NutrientMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *NutrientMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported nutrients column type %T", value)
	}

	return json.Unmarshal(bytes, m)
}

// Recipe is one catalog entry. The id is store-assigned; every field other
// than the title is nullable and serializes as null when absent.
type Recipe struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string      `gorm:"type:text;not null" json:"title"`
	Cuisine     *string     `gorm:"type:text" json:"cuisine"`
	Rating      *float64    `gorm:"type:numeric" json:"rating"`
	PrepTime    *int        `gorm:"column:prep_time" json:"prep_time"`
	CookTime    *int        `gorm:"column:cook_time" json:"cook_time"`
	TotalTime   *int        `gorm:"column:total_time" json:"total_time"`
	Description *string     `gorm:"type:text" json:"description"`
	Nutrients   NutrientMap `gorm:"type:jsonb" json:"nutrients"`
	Serves      *string     `gorm:"type:text" json:"serves"`
}

// TableName overrides the default pluralized name to match the migration.
func (Recipe) TableName() string {
	return "recipes"
}
