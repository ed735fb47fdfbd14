package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

// LayoutHandler handles screen layout endpoints.
type LayoutHandler struct {
	store store.Store
}

// NewLayoutHandler creates a new LayoutHandler.
func NewLayoutHandler(s store.Store) *LayoutHandler {
	return &LayoutHandler{store: s}
}

// CreateLayoutRequest is the request body for POST /api/layouts.
type CreateLayoutRequest struct {
	Name       string `json:"name"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Background string `json:"background,omitempty"`
}

// LayoutZoneRequest is one entry of a PUT /api/layouts/{id}/zones body.
type LayoutZoneRequest struct {
	Name     string         `json:"name,omitempty"`
	Type     string         `json:"type"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	ZIndex   int            `json:"z_index,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// List handles GET /api/layouts.
func (h *LayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	layouts, err := h.store.ListLayoutsByTenant(r.Context(), tenantID)
	if err != nil {
		InternalServerError(w, "Failed to list layouts")
		return
	}
	WriteJSONOK(w, layouts)
}

// Get handles GET /api/layouts/{id}.
func (h *LayoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}
	WriteJSONOK(w, layout)
}

// Create handles POST /api/layouts.
func (h *LayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	var req CreateLayoutRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		BadRequest(w, "Name is required")
		return
	}

	layout := &models.Layout{
		TenantID:   tenantID,
		Name:       req.Name,
		Width:      req.Width,
		Height:     req.Height,
		Background: req.Background,
	}

	id, err := h.store.CreateLayout(r.Context(), layout)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateLayout) {
			Conflict(w, "A layout with this name already exists")
			return
		}
		InternalServerError(w, "Failed to create layout")
		return
	}

	created, err := h.store.GetLayout(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch created layout")
		return
	}
	WriteJSONCreated(w, created)
}

// Update handles PUT /api/layouts/{id}.
func (h *LayoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	var req CreateLayoutRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name != "" {
		layout.Name = req.Name
	}
	if req.Width != 0 {
		layout.Width = req.Width
	}
	if req.Height != 0 {
		layout.Height = req.Height
	}
	if req.Background != "" {
		layout.Background = req.Background
	}

	if err := h.store.UpdateLayout(r.Context(), layout); err != nil {
		if errors.Is(err, models.ErrDuplicateLayout) {
			Conflict(w, "A layout with this name already exists")
			return
		}
		InternalServerError(w, "Failed to update layout")
		return
	}
	WriteJSONOK(w, layout)
}

// ReplaceZones handles PUT /api/layouts/{id}/zones.
// The full zone list is replaced in one transaction.
func (h *LayoutHandler) ReplaceZones(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	var req []LayoutZoneRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	zones := make([]models.LayoutZone, 0, len(req))
	for _, entry := range req {
		if !models.ZoneType(entry.Type).IsValid() {
			BadRequest(w, "Unsupported zone type: "+entry.Type)
			return
		}

		zone := models.LayoutZone{
			LayoutID: layout.ID,
			Name:     entry.Name,
			Type:     entry.Type,
			X:        entry.X,
			Y:        entry.Y,
			Width:    entry.Width,
			Height:   entry.Height,
			ZIndex:   entry.ZIndex,
		}
		if entry.Settings != nil {
			if err := zone.SetSettings(entry.Settings); err != nil {
				BadRequest(w, "Invalid zone settings")
				return
			}
		}
		zones = append(zones, zone)
	}

	if err := h.store.ReplaceLayoutZones(r.Context(), layout.ID, zones); err != nil {
		InternalServerError(w, "Failed to replace layout zones")
		return
	}

	updated, err := h.store.GetLayout(r.Context(), layout.ID)
	if err != nil {
		InternalServerError(w, "Failed to fetch updated layout")
		return
	}
	WriteJSONOK(w, updated)
}

// Delete handles DELETE /api/layouts/{id}.
func (h *LayoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteLayout(r.Context(), layout.ID); err != nil {
		InternalServerError(w, "Failed to delete layout")
		return
	}
	WriteNoContent(w)
}

func (h *LayoutHandler) fetchAuthorized(w http.ResponseWriter, r *http.Request) (*models.Layout, bool) {
	layout, err := h.store.GetLayout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrLayoutNotFound) {
			NotFound(w, "Layout not found")
			return nil, false
		}
		InternalServerError(w, "Failed to fetch layout")
		return nil, false
	}

	if !authorizeTenant(w, r, layout.TenantID) {
		return nil, false
	}
	return layout, true
}
