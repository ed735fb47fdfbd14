// Package models defines the persistent data model for the signage platform:
// tenants, subscription packages, media content, playlists, layouts, devices,
// payments, and users.
package models

// AllModels returns all GORM models for auto-migration.
func AllModels() []any {
	return []any{
		&Package{},
		&Tenant{},
		&Content{},
		&Playlist{},
		&PlaylistItem{},
		&Layout{},
		&LayoutZone{},
		&Device{},
		&Payment{},
		&User{},
	}
}
