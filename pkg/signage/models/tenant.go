package models

import (
	"time"
)

// Tenant is an isolated customer account. All content, playlists, layouts,
// devices and payments belong to exactly one tenant.
//
// A tenant has exactly one active package at a time; the effective storage
// and device limits are always derived from the current package, never
// stored on the tenant itself. Changing the package changes the limits
// atomically with the reassignment.
type Tenant struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	PackageID string    `gorm:"not null;size:36" json:"package_id"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Package Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

// TableName returns the table name for Tenant.
func (Tenant) TableName() string {
	return "tenants"
}

// StorageLimitBytes returns the tenant's effective storage quota in bytes,
// derived from the current package. Requires Package to be preloaded.
func (t *Tenant) StorageLimitBytes() int64 {
	return t.Package.StorageLimitBytes()
}

// DeviceLimit returns the maximum number of devices the tenant may register.
// Requires Package to be preloaded.
func (t *Tenant) DeviceLimit() int {
	return t.Package.MaxDevices
}
