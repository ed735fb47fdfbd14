package models

import "time"

// Playlist is an ordered sequence of content items played in a loop on
// assigned devices.
type Playlist struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string    `gorm:"not null;size:36;index:idx_playlists_tenant_name,unique" json:"tenant_id"`
	Name        string    `gorm:"not null;size:255;index:idx_playlists_tenant_name,unique" json:"name"`
	Description string    `gorm:"size:1024" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Items []PlaylistItem `gorm:"foreignKey:PlaylistID" json:"items,omitempty"`
}

// TableName returns the table name for Playlist.
func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistItem places one content item at a position in a playlist.
// DurationSeconds overrides how long the item is shown; zero means the
// player default (or the intrinsic video length).
type PlaylistItem struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	PlaylistID      string `gorm:"not null;size:36;index" json:"playlist_id"`
	ContentID       string `gorm:"not null;size:36;index" json:"content_id"`
	Position        int    `gorm:"not null" json:"position"`
	DurationSeconds int    `gorm:"default:0" json:"duration_seconds"`

	// Relationships
	Content Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

// TableName returns the table name for PlaylistItem.
func (PlaylistItem) TableName() string {
	return "playlist_items"
}
