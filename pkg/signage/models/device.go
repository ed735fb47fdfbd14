package models

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Device is a registered display endpoint (a player box or smart screen)
// belonging to a tenant. A device plays either a playlist or a layout;
// at most one of the two references is set.
type Device struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string     `gorm:"not null;size:36;index" json:"tenant_id"`
	Name        string     `gorm:"not null;size:255" json:"name"`
	PairingCode string     `gorm:"uniqueIndex;not null;size:16" json:"pairing_code"`
	PlaylistID  *string    `gorm:"size:36" json:"playlist_id,omitempty"`
	LayoutID    *string    `gorm:"size:36" json:"layout_id,omitempty"`
	Location    string     `gorm:"size:512" json:"location,omitempty"`
	Active      bool       `gorm:"default:true" json:"active"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Device.
func (Device) TableName() string {
	return "devices"
}

// pairingAlphabet excludes visually ambiguous characters (0/O, 1/I/L).
const pairingAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// NewPairingCode generates a random 8-character device pairing code.
func NewPairingCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate pairing code: %w", err)
	}
	for i, b := range buf {
		buf[i] = pairingAlphabet[int(b)%len(pairingAlphabet)]
	}
	return string(buf), nil
}
