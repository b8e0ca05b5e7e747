// Package query builds parameterized listing filters from a typed set of
// recognized keys. Unknown keys are ignored; values are always bound as
// query parameters, never concatenated into SQL.
package query

import (
	"strings"

	"gorm.io/gorm"
)

// HousingFilter covers the customer housing browse filters.
type HousingFilter struct {
	Location string
	// Budget is one of the fixed bands "1".."4"; anything else is ignored.
	Budget string
}

func (f HousingFilter) Apply(db *gorm.DB) *gorm.DB {
	if loc := strings.TrimSpace(f.Location); loc != "" {
		db = db.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}
	switch f.Budget {
	case "1":
		db = db.Where("price >= ? AND price <= ?", 0, 5000)
	case "2":
		db = db.Where("price > ? AND price <= ?", 5000, 10000)
	case "3":
		db = db.Where("price > ? AND price <= ?", 10000, 15000)
	case "4":
		db = db.Where("price > ?", 15000)
	}
	return db
}

// TiffinFilter covers the tiffin kitchen browse filters.
type TiffinFilter struct {
	DietType string
	OpenOnly bool
}

func (f TiffinFilter) Apply(db *gorm.DB) *gorm.DB {
	if diet := strings.TrimSpace(f.DietType); diet != "" {
		db = db.Where("diet_type = ?", diet)
	}
	if f.OpenOnly {
		db = db.Where("kitchen_open = ?", true)
	}
	return db
}

// ServiceFilter covers the home service browse filters.
type ServiceFilter struct {
	Category string
	Search   string
}

func (f ServiceFilter) Apply(db *gorm.DB) *gorm.DB {
	if cat := strings.TrimSpace(f.Category); cat != "" {
		db = db.Where("service_category = ?", cat)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		db = db.Where("LOWER(service_title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return db
}
