package models

import (
	"encoding/json"
	"time"
)

// Layout is a screen composition: a set of rectangular zones, each rendering
// one kind of content (a playlist, a single image, a ticker, ...).
type Layout struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string    `gorm:"not null;size:36;index:idx_layouts_tenant_name,unique" json:"tenant_id"`
	Name        string    `gorm:"not null;size:255;index:idx_layouts_tenant_name,unique" json:"name"`
	Width       int       `gorm:"default:1920" json:"width"`
	Height      int       `gorm:"default:1080" json:"height"`
	Background  string    `gorm:"default:#000000;size:32" json:"background"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Zones []LayoutZone `gorm:"foreignKey:LayoutID" json:"zones,omitempty"`
}

// TableName returns the table name for Layout.
func (Layout) TableName() string {
	return "layouts"
}

// ZoneType discriminates what a layout zone renders.
type ZoneType string

const (
	ZonePlaylist ZoneType = "playlist"
	ZoneImage    ZoneType = "image"
	ZoneVideo    ZoneType = "video"
	ZoneTicker   ZoneType = "ticker"
	ZoneClock    ZoneType = "clock"
)

// IsValid checks if the zone type is supported.
func (z ZoneType) IsValid() bool {
	switch z {
	case ZonePlaylist, ZoneImage, ZoneVideo, ZoneTicker, ZoneClock:
		return true
	}
	return false
}

// LayoutZone is one rectangle of a layout. Geometry is expressed in percent
// of the layout canvas so the same layout scales to any display resolution.
//
// Per-type settings are stored as a JSON blob and accessed through the typed
// accessors below; unknown keys are preserved round-trip.
type LayoutZone struct {
	ID       string   `gorm:"primaryKey;size:36" json:"id"`
	LayoutID string   `gorm:"not null;size:36;index" json:"layout_id"`
	Name     string   `gorm:"size:255" json:"name,omitempty"`
	Type     string   `gorm:"not null;size:50" json:"type"`
	X        float64  `gorm:"not null" json:"x"`
	Y        float64  `gorm:"not null" json:"y"`
	Width    float64  `gorm:"not null" json:"width"`
	Height   float64  `gorm:"not null" json:"height"`
	ZIndex   int      `gorm:"default:0" json:"z_index"`
	Settings string   `gorm:"type:text" json:"-"`

	// Parsed settings (not stored in DB)
	ParsedSettings map[string]any `gorm:"-" json:"settings,omitempty"`
}

// TableName returns the table name for LayoutZone.
func (LayoutZone) TableName() string {
	return "layout_zones"
}

// GetZoneType returns the zone type as a ZoneType.
func (z *LayoutZone) GetZoneType() ZoneType {
	return ZoneType(z.Type)
}

// GetSettings returns the parsed zone settings.
func (z *LayoutZone) GetSettings() (map[string]any, error) {
	if z.ParsedSettings != nil {
		return z.ParsedSettings, nil
	}
	if z.Settings == "" {
		return make(map[string]any), nil
	}
	var settings map[string]any
	if err := json.Unmarshal([]byte(z.Settings), &settings); err != nil {
		return nil, err
	}
	z.ParsedSettings = settings
	return settings, nil
}

// SetSettings sets the zone settings from a map.
func (z *LayoutZone) SetSettings(settings map[string]any) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	z.Settings = string(data)
	z.ParsedSettings = settings
	return nil
}

// PlaylistID returns the playlist reference for playlist zones.
// Returns false when the zone is not a playlist zone or no playlist is set.
func (z *LayoutZone) PlaylistID() (string, bool) {
	if z.GetZoneType() != ZonePlaylist {
		return "", false
	}
	settings, err := z.GetSettings()
	if err != nil {
		return "", false
	}
	id, ok := settings["playlist_id"].(string)
	return id, ok && id != ""
}

// ContentID returns the content reference for image and video zones.
// Returns false when the zone type carries no direct content reference.
func (z *LayoutZone) ContentID() (string, bool) {
	switch z.GetZoneType() {
	case ZoneImage, ZoneVideo:
	default:
		return "", false
	}
	settings, err := z.GetSettings()
	if err != nil {
		return "", false
	}
	id, ok := settings["content_id"].(string)
	return id, ok && id != ""
}
