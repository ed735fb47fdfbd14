package models

import (
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// ContentKind classifies uploaded media by how players render it.
type ContentKind string

const (
	KindVideo ContentKind = "video"
	KindImage ContentKind = "image"
	KindAudio ContentKind = "audio"
	KindHTML  ContentKind = "html"
	KindOther ContentKind = "other"
)

// KindFromMIME maps a MIME type to a ContentKind.
func KindFromMIME(mimeType string) ContentKind {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "audio/"):
		return KindAudio
	case mimeType == "text/html":
		return KindHTML
	default:
		return KindOther
	}
}

// DetectMIME returns the MIME type for a filename based on its extension.
// Falls back to application/octet-stream for unknown extensions.
func DetectMIME(filename string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		return "application/octet-stream"
	}
	// Strip any parameters ("text/html; charset=utf-8")
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// Content is one uploaded media file: its metadata row plus a key into the
// media blob store where the bytes live.
//
// Content is immutable once created. Size, filename and media key never
// change; the only lifecycle transitions are creation on upload and deletion
// (by user action or by the quota engine during enforcement).
type Content struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	TenantID  string      `gorm:"not null;size:36;index" json:"tenant_id"`
	Filename  string      `gorm:"not null;size:512" json:"filename"`
	MediaKey  string      `gorm:"not null;size:1024" json:"-"`
	SizeBytes int64       `gorm:"not null" json:"size_bytes"`
	MIMEType  string      `gorm:"size:255" json:"mime_type"`
	Kind      ContentKind `gorm:"size:50" json:"kind"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Content.
func (Content) TableName() string {
	return "contents"
}
