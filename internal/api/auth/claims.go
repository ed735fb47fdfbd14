// Package auth provides JWT authentication for the SignCast management API.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenType indicates whether a token is an access token or refresh token.
type TokenType string

const (
	// TokenTypeAccess is a short-lived token used for API authorization.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is a long-lived token used to obtain new access tokens.
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents JWT claims for SignCast authentication.
//
// Tenant users carry the tenant they belong to; platform users (admin,
// operator) have an empty TenantID and may operate across tenants.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the unique identifier (UUID) for the user.
	UserID string `json:"uid"`

	// Username is the human-readable username.
	Username string `json:"username"`

	// Role is the user's role ("admin", "operator" or "tenant").
	Role string `json:"role"`

	// TenantID is the tenant a tenant-scoped user belongs to.
	// Empty for platform users.
	TenantID string `json:"tenant_id,omitempty"`

	// TokenType indicates whether this is an access or refresh token.
	TokenType TokenType `json:"token_type"`
}

// IsAccessToken returns true if this is an access token.
func (c *Claims) IsAccessToken() bool {
	return c.TokenType == TokenTypeAccess
}

// IsRefreshToken returns true if this is a refresh token.
func (c *Claims) IsRefreshToken() bool {
	return c.TokenType == TokenTypeRefresh
}

// IsAdmin returns true if the user has admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

// IsPlatform returns true if the user operates at platform scope.
func (c *Claims) IsPlatform() bool {
	return c.Role == "admin" || c.Role == "operator"
}

// CanAccessTenant returns true if the user may operate on the given tenant.
func (c *Claims) CanAccessTenant(tenantID string) bool {
	if c.IsPlatform() {
		return true
	}
	return c.TenantID != "" && c.TenantID == tenantID
}
