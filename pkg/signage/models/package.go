package models

import (
	"time"

	"github.com/signcast/signcast/internal/bytesize"
)

// Package defines a subscription plan: how much media storage a tenant may
// use and how many display devices it may register.
type Package struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	Name              string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Description       string    `gorm:"size:1024" json:"description,omitempty"`
	StorageGB         int64     `gorm:"not null" json:"storage_gb"`
	MaxDevices        int       `gorm:"not null" json:"max_devices"`
	PriceCents        int64     `gorm:"default:0" json:"price_cents"`
	Currency          string    `gorm:"default:USD;size:3" json:"currency"`
	BillingPeriodDays int       `gorm:"default:30" json:"billing_period_days"`
	Active            bool      `gorm:"default:true" json:"active"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Package.
func (Package) TableName() string {
	return "packages"
}

// StorageLimitBytes returns the package storage quota in bytes.
// Packages are sized in whole GiB (2^30 bytes) so quota accounting stays
// byte-exact.
func (p *Package) StorageLimitBytes() int64 {
	return bytesize.GiBToBytes(p.StorageGB)
}
