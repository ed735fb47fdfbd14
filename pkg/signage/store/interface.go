// Package store provides the signage platform persistence layer.
//
// This package implements the Store interface for managing platform data:
// tenants, packages, content metadata, playlists, layouts, devices, payments
// and users.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL (HA-capable)
package store

import (
	"context"
	"time"

	"github.com/signcast/signcast/pkg/signage/models"
)

// Store provides the signage platform persistence interface.
//
// Thread Safety: Implementations must be safe for concurrent use from
// multiple goroutines.
type Store interface {
	// ============================================
	// TENANT OPERATIONS
	// ============================================

	// GetTenant returns a tenant by ID with its package preloaded.
	// Returns models.ErrTenantNotFound if the tenant doesn't exist.
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)

	// GetTenantBySlug returns a tenant by its URL slug.
	// Returns models.ErrTenantNotFound if the tenant doesn't exist.
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)

	// ListTenants returns all tenants with packages preloaded.
	ListTenants(ctx context.Context) ([]*models.Tenant, error)

	// CreateTenant creates a new tenant. The ID is generated if empty.
	// Returns models.ErrDuplicateTenant if the slug is taken.
	CreateTenant(ctx context.Context, tenant *models.Tenant) (string, error)

	// UpdateTenant updates name, slug and active flag of a tenant.
	// Returns models.ErrTenantNotFound if the tenant doesn't exist.
	UpdateTenant(ctx context.Context, tenant *models.Tenant) error

	// SetTenantPackage atomically reassigns the tenant's package.
	// Returns models.ErrTenantNotFound or models.ErrPackageNotFound.
	SetTenantPackage(ctx context.Context, tenantID, packageID string) error

	// DeleteTenant deletes a tenant and its dependent rows (content
	// metadata, playlists, layouts, devices, payments, tenant users).
	// Media blobs are not touched; callers remove them separately.
	DeleteTenant(ctx context.Context, id string) error

	// ============================================
	// PACKAGE OPERATIONS
	// ============================================

	// GetPackage returns a package by ID.
	// Returns models.ErrPackageNotFound if the package doesn't exist.
	GetPackage(ctx context.Context, id string) (*models.Package, error)

	// GetPackageByName returns a package by its unique name.
	GetPackageByName(ctx context.Context, name string) (*models.Package, error)

	// ListPackages returns all packages.
	ListPackages(ctx context.Context) ([]*models.Package, error)

	// CreatePackage creates a new package. The ID is generated if empty.
	// Returns models.ErrDuplicatePackage if the name is taken.
	CreatePackage(ctx context.Context, pkg *models.Package) (string, error)

	// UpdatePackage updates an existing package.
	// Returns models.ErrPackageNotFound if the package doesn't exist.
	UpdatePackage(ctx context.Context, pkg *models.Package) error

	// DeletePackage deletes a package by ID.
	// Returns models.ErrPackageInUse if any tenant references it.
	DeletePackage(ctx context.Context, id string) error

	// ============================================
	// CONTENT OPERATIONS
	// ============================================

	// CreateContent creates a content metadata row. The ID is generated
	// if empty.
	CreateContent(ctx context.Context, content *models.Content) (string, error)

	// GetContent returns a content item by ID.
	// Returns models.ErrContentNotFound if the item doesn't exist.
	GetContent(ctx context.Context, id string) (*models.Content, error)

	// ListContentByTenant returns all content owned by a tenant in
	// eviction order: ascending creation time, ties broken by ascending ID.
	ListContentByTenant(ctx context.Context, tenantID string) ([]*models.Content, error)

	// SumContentSizeByTenant returns the total byte size of all content
	// owned by a tenant, computed with exact integer arithmetic.
	SumContentSizeByTenant(ctx context.Context, tenantID string) (int64, error)

	// DeleteContent deletes a content metadata row by ID.
	// Returns models.ErrContentNotFound if the item doesn't exist.
	DeleteContent(ctx context.Context, id string) error

	// ============================================
	// PLAYLIST OPERATIONS
	// ============================================

	// GetPlaylist returns a playlist with its items (and their content)
	// ordered by position.
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)

	// ListPlaylistsByTenant returns all playlists owned by a tenant.
	ListPlaylistsByTenant(ctx context.Context, tenantID string) ([]*models.Playlist, error)

	// CreatePlaylist creates a new playlist. The ID is generated if empty.
	// Returns models.ErrDuplicatePlaylist on a per-tenant name collision.
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) (string, error)

	// UpdatePlaylist updates playlist name and description.
	UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error

	// ReplacePlaylistItems replaces the full item list of a playlist in
	// one transaction. Positions are normalized to the slice order.
	ReplacePlaylistItems(ctx context.Context, playlistID string, items []models.PlaylistItem) error

	// DeletePlaylist deletes a playlist and its items.
	DeletePlaylist(ctx context.Context, id string) error

	// ============================================
	// LAYOUT OPERATIONS
	// ============================================

	// GetLayout returns a layout with its zones.
	GetLayout(ctx context.Context, id string) (*models.Layout, error)

	// ListLayoutsByTenant returns all layouts owned by a tenant.
	ListLayoutsByTenant(ctx context.Context, tenantID string) ([]*models.Layout, error)

	// CreateLayout creates a new layout. The ID is generated if empty.
	CreateLayout(ctx context.Context, layout *models.Layout) (string, error)

	// UpdateLayout updates layout name, canvas and background.
	UpdateLayout(ctx context.Context, layout *models.Layout) error

	// ReplaceLayoutZones replaces the full zone list of a layout in one
	// transaction.
	ReplaceLayoutZones(ctx context.Context, layoutID string, zones []models.LayoutZone) error

	// DeleteLayout deletes a layout and its zones.
	DeleteLayout(ctx context.Context, id string) error

	// ============================================
	// DEVICE OPERATIONS
	// ============================================

	// GetDevice returns a device by ID.
	GetDevice(ctx context.Context, id string) (*models.Device, error)

	// GetDeviceByPairingCode returns a device by its pairing code.
	// Returns models.ErrInvalidPairingCode if no device has this code.
	GetDeviceByPairingCode(ctx context.Context, code string) (*models.Device, error)

	// ListDevicesByTenant returns all devices owned by a tenant.
	ListDevicesByTenant(ctx context.Context, tenantID string) ([]*models.Device, error)

	// CountDevicesByTenant returns the number of devices a tenant has
	// registered. Used for package device-limit enforcement.
	CountDevicesByTenant(ctx context.Context, tenantID string) (int64, error)

	// CreateDevice creates a new device. The ID is generated if empty.
	CreateDevice(ctx context.Context, device *models.Device) (string, error)

	// UpdateDevice updates device name, location, assignment and flags.
	UpdateDevice(ctx context.Context, device *models.Device) error

	// TouchDeviceLastSeen records a device heartbeat timestamp.
	TouchDeviceLastSeen(ctx context.Context, id string, seen time.Time) error

	// DeleteDevice deletes a device by ID.
	DeleteDevice(ctx context.Context, id string) error

	// ============================================
	// PAYMENT OPERATIONS
	// ============================================

	// CreatePayment creates a pending payment. The ID is generated if empty.
	CreatePayment(ctx context.Context, payment *models.Payment) (string, error)

	// GetPayment returns a payment by ID with its package preloaded.
	GetPayment(ctx context.Context, id string) (*models.Payment, error)

	// ListPaymentsByTenant returns all payments of a tenant.
	ListPaymentsByTenant(ctx context.Context, tenantID string) ([]*models.Payment, error)

	// MarkPaymentPaid transitions a pending payment to paid.
	// Returns models.ErrPaymentNotPending for any other starting state.
	MarkPaymentPaid(ctx context.Context, id, externalRef string, paidAt time.Time) error

	// MarkPaymentFailed transitions a pending payment to failed.
	MarkPaymentFailed(ctx context.Context, id string) error

	// ============================================
	// USER OPERATIONS
	// ============================================

	// GetUser returns a user by username.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateUser creates a new user. The ID is generated if empty.
	// Returns models.ErrDuplicateUser if the username is taken.
	CreateUser(ctx context.Context, user *models.User) (string, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes a user by username.
	DeleteUser(ctx context.Context, username string) error

	// UpdateLastLogin updates the user's last login timestamp.
	UpdateLastLogin(ctx context.Context, username string, timestamp time.Time) error

	// ValidateCredentials verifies username/password credentials.
	// Returns models.ErrInvalidCredentials if invalid, or
	// models.ErrUserDisabled if the account is disabled.
	ValidateCredentials(ctx context.Context, username, password string) (*models.User, error)

	// ============================================
	// HEALTH & LIFECYCLE
	// ============================================

	// Healthcheck pings the underlying database.
	Healthcheck(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
