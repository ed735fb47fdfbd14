package models

import "errors"

// Common errors for signage platform operations.
var (
	// Tenant errors
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrDuplicateTenant = errors.New("tenant already exists")
	ErrTenantDisabled  = errors.New("tenant is disabled")

	// Package errors
	ErrPackageNotFound  = errors.New("package not found")
	ErrDuplicatePackage = errors.New("package already exists")
	ErrPackageInUse     = errors.New("package is referenced by tenants")

	// Content errors
	ErrContentNotFound  = errors.New("content not found")
	ErrContentInUse     = errors.New("content is referenced by playlists or layouts")
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// Playlist errors
	ErrPlaylistNotFound  = errors.New("playlist not found")
	ErrDuplicatePlaylist = errors.New("playlist already exists")

	// Layout errors
	ErrLayoutNotFound  = errors.New("layout not found")
	ErrDuplicateLayout = errors.New("layout already exists")
	ErrZoneNotFound    = errors.New("layout zone not found")

	// Device errors
	ErrDeviceNotFound      = errors.New("device not found")
	ErrDuplicateDevice     = errors.New("device already exists")
	ErrDeviceLimitReached  = errors.New("device limit for package reached")
	ErrInvalidPairingCode  = errors.New("invalid pairing code")

	// Payment errors
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentNotPending   = errors.New("payment is not in pending state")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrUserDisabled  = errors.New("user account is disabled")
)
