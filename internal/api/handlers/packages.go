package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

// PackageHandler handles subscription package endpoints.
type PackageHandler struct {
	store store.Store
}

// NewPackageHandler creates a new PackageHandler.
func NewPackageHandler(s store.Store) *PackageHandler {
	return &PackageHandler{store: s}
}

// CreatePackageRequest is the request body for POST /api/packages.
type CreatePackageRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	StorageGB         int64  `json:"storage_gb"`
	MaxDevices        int    `json:"max_devices"`
	PriceCents        int64  `json:"price_cents,omitempty"`
	Currency          string `json:"currency,omitempty"`
	BillingPeriodDays int    `json:"billing_period_days,omitempty"`
}

// List handles GET /api/packages.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	packages, err := h.store.ListPackages(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list packages")
		return
	}
	WriteJSONOK(w, packages)
}

// Get handles GET /api/packages/{id}.
func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.store.GetPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrPackageNotFound) {
			NotFound(w, "Package not found")
			return
		}
		InternalServerError(w, "Failed to fetch package")
		return
	}
	WriteJSONOK(w, pkg)
}

// Create handles POST /api/packages.
func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePackageRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		BadRequest(w, "Name is required")
		return
	}
	if req.StorageGB < 0 {
		BadRequest(w, "storage_gb must not be negative")
		return
	}
	if req.MaxDevices < 0 {
		BadRequest(w, "max_devices must not be negative")
		return
	}

	pkg := &models.Package{
		Name:              req.Name,
		Description:       req.Description,
		StorageGB:         req.StorageGB,
		MaxDevices:        req.MaxDevices,
		PriceCents:        req.PriceCents,
		Currency:          req.Currency,
		BillingPeriodDays: req.BillingPeriodDays,
		Active:            true,
	}

	id, err := h.store.CreatePackage(r.Context(), pkg)
	if err != nil {
		if errors.Is(err, models.ErrDuplicatePackage) {
			Conflict(w, "A package with this name already exists")
			return
		}
		InternalServerError(w, "Failed to create package")
		return
	}

	created, err := h.store.GetPackage(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch created package")
		return
	}
	WriteJSONCreated(w, created)
}

// Update handles PUT /api/packages/{id}.
//
// Changing StorageGB here does not retroactively run enforcement on
// subscribed tenants; their usage is re-checked on their next upload or
// package change.
func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pkg, err := h.store.GetPackage(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPackageNotFound) {
			NotFound(w, "Package not found")
			return
		}
		InternalServerError(w, "Failed to fetch package")
		return
	}

	var req CreatePackageRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name != "" {
		pkg.Name = req.Name
	}
	pkg.Description = req.Description
	if req.StorageGB != 0 {
		pkg.StorageGB = req.StorageGB
	}
	if req.MaxDevices != 0 {
		pkg.MaxDevices = req.MaxDevices
	}
	if req.PriceCents != 0 {
		pkg.PriceCents = req.PriceCents
	}
	if req.Currency != "" {
		pkg.Currency = req.Currency
	}
	if req.BillingPeriodDays != 0 {
		pkg.BillingPeriodDays = req.BillingPeriodDays
	}

	if err := h.store.UpdatePackage(r.Context(), pkg); err != nil {
		if errors.Is(err, models.ErrDuplicatePackage) {
			Conflict(w, "A package with this name already exists")
			return
		}
		InternalServerError(w, "Failed to update package")
		return
	}

	WriteJSONOK(w, pkg)
}

// Delete handles DELETE /api/packages/{id}.
func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePackage(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrPackageNotFound) {
			NotFound(w, "Package not found")
			return
		}
		if errors.Is(err, models.ErrPackageInUse) {
			Conflict(w, "Package is referenced by existing tenants")
			return
		}
		InternalServerError(w, "Failed to delete package")
		return
	}
	WriteNoContent(w)
}
