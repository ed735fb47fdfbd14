package models

import "time"

// UserRole represents the role of a user in the system.
type UserRole string

const (
	// RoleAdmin is a platform administrator with full access to all tenants.
	RoleAdmin UserRole = "admin"
	// RoleOperator can read platform-wide state but not modify it.
	RoleOperator UserRole = "operator"
	// RoleTenant is a tenant-scoped user managing a single tenant's content.
	RoleTenant UserRole = "tenant"
)

// IsValid checks if the role is a valid UserRole.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleOperator || r == RoleTenant
}

// User is an account that can log in to the management API. Platform users
// (admin, operator) have no tenant; tenant users carry the tenant they
// belong to and are confined to it.
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null;size:255" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"default:tenant;size:50" json:"role"`
	TenantID     *string    `gorm:"size:36;index" json:"tenant_id,omitempty"`
	Email        string     `gorm:"size:255" json:"email,omitempty"`
	DisplayName  string     `gorm:"size:255" json:"display_name,omitempty"`
	Enabled      bool       `gorm:"default:true" json:"enabled"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// GetRole returns the role as a UserRole.
func (u *User) GetRole() UserRole {
	return UserRole(u.Role)
}

// IsPlatform reports whether the user operates at platform scope.
func (u *User) IsPlatform() bool {
	return u.GetRole() == RoleAdmin || u.GetRole() == RoleOperator
}

// GetDisplayName returns the display name, or username if not set.
func (u *User) GetDisplayName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// CanAccessTenant reports whether the user may operate on the given tenant.
func (u *User) CanAccessTenant(tenantID string) bool {
	if u.IsPlatform() {
		return true
	}
	return u.TenantID != nil && *u.TenantID == tenantID
}
