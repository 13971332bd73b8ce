package models

import (
	"time"

	"gorm.io/gorm"
)

// Installation is the current submission state for a single store.
// StoreCode is the natural key: one row per store, later submissions
// overwrite it in place.
type Installation struct {
	gorm.Model
	StoreCode  string `json:"store_code" gorm:"uniqueIndex;not null"`
	SupplierID *uint  `json:"supplier_id"`

	Responsible      string `json:"responsible"`
	InstallationDate string `json:"installation_date"`
	Finalizada       bool   `json:"finalizada" gorm:"default:false"`

	// Free-text explanation accepted in lieu of missing required photos.
	Justification string `json:"justification"`

	// Optional geolocation captured at submission time. Location holds the
	// same point as WKB (SRID 4326) for spatial queries.
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	GeoAddress   string     `json:"geo_address"`
	GeoTimestamp *time.Time `json:"geo_timestamp"`
	Location     []byte     `gorm:"type:bytea" json:"-"`
}
