package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/pkg/media"
	"github.com/signcast/signcast/pkg/quota"
	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

// TenantHandler handles tenant management endpoints.
//
// Package reassignment is the one mutation with side effects beyond the
// tenant row: when the new package carries a smaller storage limit, quota
// enforcement runs synchronously and its cleanup report is embedded in
// the response.
type TenantHandler struct {
	store  store.Store
	blobs  media.Store
	engine *quota.Engine
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(s store.Store, blobs media.Store, engine *quota.Engine) *TenantHandler {
	return &TenantHandler{
		store:  s,
		blobs:  blobs,
		engine: engine,
	}
}

// TenantResponse is the wire representation of a tenant.
type TenantResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Slug           string              `json:"slug"`
	PackageID      string              `json:"package_id"`
	Package        *models.Package     `json:"package,omitempty"`
	Active         bool                `json:"active"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	StorageCleanup *StorageCleanupView `json:"storageCleanup,omitempty"`
}

// CreateTenantRequest is the request body for POST /api/tenants.
type CreateTenantRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PackageID string `json:"package_id"`
}

// UpdateTenantRequest is the request body for PUT /api/tenants/{id}.
// All fields are optional; only provided fields are changed. Setting
// PackageID to a different package triggers quota enforcement.
type UpdateTenantRequest struct {
	Name      *string `json:"name,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	PackageID *string `json:"package_id,omitempty"`
}

// List handles GET /api/tenants.
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.store.ListTenants(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list tenants")
		return
	}

	views := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		views = append(views, tenantToResponse(t, nil))
	}
	WriteJSONOK(w, views)
}

// Get handles GET /api/tenants/{id}.
func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tenant, err := h.store.GetTenant(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			NotFound(w, "Tenant not found")
			return
		}
		InternalServerError(w, "Failed to fetch tenant")
		return
	}

	WriteJSONOK(w, tenantToResponse(tenant, nil))
}

// Create handles POST /api/tenants.
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Slug == "" || req.PackageID == "" {
		BadRequest(w, "Name, slug and package_id are required")
		return
	}

	tenant := &models.Tenant{
		Name:      req.Name,
		Slug:      req.Slug,
		PackageID: req.PackageID,
		Active:    true,
	}

	id, err := h.store.CreateTenant(r.Context(), tenant)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateTenant) {
			Conflict(w, "A tenant with this slug already exists")
			return
		}
		if errors.Is(err, models.ErrPackageNotFound) {
			UnprocessableEntity(w, "Package does not exist")
			return
		}
		InternalServerError(w, "Failed to create tenant")
		return
	}

	created, err := h.store.GetTenant(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch created tenant")
		return
	}

	WriteJSONCreated(w, tenantToResponse(created, nil))
}

// Update handles PUT /api/tenants/{id}.
//
// When the request reassigns the tenant to a different package, quota
// enforcement runs after the reassignment and the resulting cleanup
// report (if any content was deleted) is returned under "storageCleanup".
// A partial cleanup is not an error for this endpoint: the package change
// has already been applied and the report reflects what enforcement
// managed to free.
func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTenantRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	tenant, err := h.store.GetTenant(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			NotFound(w, "Tenant not found")
			return
		}
		InternalServerError(w, "Failed to fetch tenant")
		return
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Slug != nil {
		tenant.Slug = *req.Slug
	}
	if req.Active != nil {
		tenant.Active = *req.Active
	}

	if err := h.store.UpdateTenant(r.Context(), tenant); err != nil {
		if errors.Is(err, models.ErrDuplicateTenant) {
			Conflict(w, "A tenant with this slug already exists")
			return
		}
		InternalServerError(w, "Failed to update tenant")
		return
	}

	var cleanup *StorageCleanupView
	if req.PackageID != nil && *req.PackageID != tenant.PackageID {
		if err := h.store.SetTenantPackage(r.Context(), id, *req.PackageID); err != nil {
			if errors.Is(err, models.ErrPackageNotFound) {
				UnprocessableEntity(w, "Package does not exist")
				return
			}
			InternalServerError(w, "Failed to change package")
			return
		}

		report, err := h.engine.Enforce(r.Context(), id)
		if err != nil {
			var partial *quota.PartialCleanupError
			switch {
			case errors.As(err, &partial) && partial.Cause != nil:
				// A deletion failed mid-pass. The package row is already
				// switched, but the operation must not read as a success.
				logger.Error("cleanup aborted after package change",
					"tenant_id", id,
					"deleted", partial.Report.DeletedCount,
					"error", err)
				CleanupFailed(w, partial.Report)
				return
			case errors.As(err, &partial):
				// Deletable content ran out before usage fit the new
				// limit. The package change stands; surface what was
				// freed and flag the overrun.
				logger.Warn("storage still over limit after package change",
					"tenant_id", id,
					"deleted", partial.Report.DeletedCount)
				report = partial.Report
			default:
				InternalServerError(w, "Quota enforcement failed")
				return
			}
		}
		cleanup = cleanupToView(report)
	}

	updated, err := h.store.GetTenant(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch updated tenant")
		return
	}

	WriteJSONOK(w, tenantToResponse(updated, cleanup))
}

// Delete handles DELETE /api/tenants/{id}.
// Removes the tenant, its database rows and all of its media blobs.
func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.store.GetTenant(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			NotFound(w, "Tenant not found")
			return
		}
		InternalServerError(w, "Failed to fetch tenant")
		return
	}

	if err := h.store.DeleteTenant(r.Context(), id); err != nil {
		InternalServerError(w, "Failed to delete tenant")
		return
	}

	// Blob removal after row removal: orphaned blobs are harmless and
	// invisible to quota accounting, which is row-driven.
	if err := h.blobs.DeleteByPrefix(r.Context(), media.TenantPrefix(id)); err != nil {
		logger.Warn("failed to delete tenant media", "tenant_id", id, "error", err)
	}

	WriteNoContent(w)
}

// tenantToResponse converts a Tenant to its wire representation.
func tenantToResponse(t *models.Tenant, cleanup *StorageCleanupView) TenantResponse {
	resp := TenantResponse{
		ID:             t.ID,
		Name:           t.Name,
		Slug:           t.Slug,
		PackageID:      t.PackageID,
		Active:         t.Active,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		StorageCleanup: cleanup,
	}
	if t.Package.ID != "" {
		pkg := t.Package
		resp.Package = &pkg
	}
	return resp
}
