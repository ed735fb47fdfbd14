package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/signcast/signcast/internal/api/middleware"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// requestTenantID resolves the tenant a request operates on.
//
// Tenant-scoped users are always confined to their own tenant. Platform
// users (admin, operator) select a tenant with the tenant_id query
// parameter. Returns false after writing an error response when no tenant
// can be resolved.
func requestTenantID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return "", false
	}

	if claims.IsPlatform() {
		tenantID := r.URL.Query().Get("tenant_id")
		if tenantID == "" {
			BadRequest(w, "tenant_id query parameter is required")
			return "", false
		}
		return tenantID, true
	}

	if claims.TenantID == "" {
		Forbidden(w, "User is not associated with a tenant")
		return "", false
	}
	return claims.TenantID, true
}

// authorizeTenant verifies the requesting user may operate on the given
// tenant. Returns false after writing an error response when not.
func authorizeTenant(w http.ResponseWriter, r *http.Request, tenantID string) bool {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return false
	}
	if !claims.CanAccessTenant(tenantID) {
		Forbidden(w, "Access to this tenant is not permitted")
		return false
	}
	return true
}
