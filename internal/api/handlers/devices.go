package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/pkg/devicestate"
	"github.com/signcast/signcast/pkg/metrics"
	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

// DeviceHandler handles display device endpoints.
//
// Registration is bounded by the tenant's package device limit. Heartbeats
// land in two places: the durable last-seen column on the device row and
// the TTL'd ephemeral state store carrying what the player reported.
type DeviceHandler struct {
	store   store.Store
	state   *devicestate.Store
	metrics *metrics.SignageMetrics
}

// NewDeviceHandler creates a new DeviceHandler. The state and metrics
// parameters may be nil when the respective subsystems are disabled.
func NewDeviceHandler(s store.Store, state *devicestate.Store, m *metrics.SignageMetrics) *DeviceHandler {
	return &DeviceHandler{
		store:   s,
		state:   state,
		metrics: m,
	}
}

// RegisterDeviceRequest is the request body for POST /api/devices.
type RegisterDeviceRequest struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// UpdateDeviceRequest is the request body for PUT /api/devices/{id}.
type UpdateDeviceRequest struct {
	Name       *string `json:"name,omitempty"`
	Location   *string `json:"location,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	PlaylistID *string `json:"playlist_id,omitempty"`
	LayoutID   *string `json:"layout_id,omitempty"`
}

// HeartbeatRequest is the request body for POST /api/devices/{id}/heartbeat.
type HeartbeatRequest struct {
	PlayerVersion string `json:"player_version,omitempty"`
	PlaylistID    string `json:"playlist_id,omitempty"`
	LayoutID      string `json:"layout_id,omitempty"`
}

// DeviceResponse is the wire representation of a device, optionally
// enriched with its last reported ephemeral state.
type DeviceResponse struct {
	*models.Device
	State *devicestate.State `json:"state,omitempty"`
}

// List handles GET /api/devices.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	devices, err := h.store.ListDevicesByTenant(r.Context(), tenantID)
	if err != nil {
		InternalServerError(w, "Failed to list devices")
		return
	}

	views := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		views = append(views, DeviceResponse{Device: d, State: h.lookupState(r.Context(), d.ID)})
	}
	WriteJSONOK(w, views)
}

// Get handles GET /api/devices/{id}.
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	device, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}
	WriteJSONOK(w, DeviceResponse{Device: device, State: h.lookupState(r.Context(), device.ID)})
}

// Register handles POST /api/devices.
// Registration fails with 409 once the tenant's package device limit is hit.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	var req RegisterDeviceRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		BadRequest(w, "Name is required")
		return
	}

	tenant, err := h.store.GetTenant(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			NotFound(w, "Tenant not found")
			return
		}
		InternalServerError(w, "Failed to fetch tenant")
		return
	}

	count, err := h.store.CountDevicesByTenant(r.Context(), tenantID)
	if err != nil {
		InternalServerError(w, "Failed to count devices")
		return
	}
	if count >= int64(tenant.DeviceLimit()) {
		Conflict(w, "Device limit for the current package reached")
		return
	}

	code, err := models.NewPairingCode()
	if err != nil {
		InternalServerError(w, "Failed to generate pairing code")
		return
	}

	device := &models.Device{
		TenantID:    tenantID,
		Name:        req.Name,
		Location:    req.Location,
		PairingCode: code,
		Active:      true,
	}

	id, err := h.store.CreateDevice(r.Context(), device)
	if err != nil {
		InternalServerError(w, "Failed to register device")
		return
	}

	created, err := h.store.GetDevice(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch registered device")
		return
	}
	WriteJSONCreated(w, DeviceResponse{Device: created})
}

// Update handles PUT /api/devices/{id}.
// Assigning both a playlist and a layout is rejected; a device plays one
// or the other.
func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	device, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	var req UpdateDeviceRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name != nil {
		device.Name = *req.Name
	}
	if req.Location != nil {
		device.Location = *req.Location
	}
	if req.Active != nil {
		device.Active = *req.Active
	}
	if req.PlaylistID != nil {
		if *req.PlaylistID == "" {
			device.PlaylistID = nil
		} else {
			device.PlaylistID = req.PlaylistID
			device.LayoutID = nil
		}
	}
	if req.LayoutID != nil {
		if *req.LayoutID == "" {
			device.LayoutID = nil
		} else {
			device.LayoutID = req.LayoutID
			device.PlaylistID = nil
		}
	}
	if device.PlaylistID != nil && device.LayoutID != nil {
		BadRequest(w, "A device plays either a playlist or a layout, not both")
		return
	}

	if err := h.store.UpdateDevice(r.Context(), device); err != nil {
		InternalServerError(w, "Failed to update device")
		return
	}
	WriteJSONOK(w, DeviceResponse{Device: device, State: h.lookupState(r.Context(), device.ID)})
}

// Heartbeat handles POST /api/devices/{id}/heartbeat.
//
// Heartbeats are sent by player firmware with the pairing code as its
// credential, so this endpoint sits outside JWT auth. The pairing code is
// carried in the X-Pairing-Code header and must match the device.
func (h *DeviceHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	device, err := h.store.GetDevice(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrDeviceNotFound) {
			NotFound(w, "Device not found")
			return
		}
		InternalServerError(w, "Failed to fetch device")
		return
	}

	if r.Header.Get("X-Pairing-Code") != device.PairingCode {
		Unauthorized(w, "Invalid pairing code")
		return
	}

	var req HeartbeatRequest
	if r.ContentLength > 0 && !decodeJSONBody(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	if err := h.store.TouchDeviceLastSeen(r.Context(), device.ID, now); err != nil {
		InternalServerError(w, "Failed to record heartbeat")
		return
	}

	if h.state != nil {
		err := h.state.Record(r.Context(), devicestate.State{
			DeviceID:      device.ID,
			LastSeenAt:    now,
			PlayerVersion: req.PlayerVersion,
			PlaylistID:    req.PlaylistID,
			LayoutID:      req.LayoutID,
			IPAddress:     r.RemoteAddr,
		})
		if err != nil {
			logger.Warn("failed to record device state", "device_id", device.ID, "error", err)
		}
	}

	h.metrics.DeviceHeartbeat()
	WriteNoContent(w)
}

// Delete handles DELETE /api/devices/{id}.
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	device, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteDevice(r.Context(), device.ID); err != nil {
		InternalServerError(w, "Failed to delete device")
		return
	}

	if h.state != nil {
		if err := h.state.Delete(r.Context(), device.ID); err != nil {
			logger.Warn("failed to delete device state", "device_id", device.ID, "error", err)
		}
	}
	WriteNoContent(w)
}

// lookupState fetches the device's ephemeral state, tolerating absence.
func (h *DeviceHandler) lookupState(ctx context.Context, deviceID string) *devicestate.State {
	if h.state == nil {
		return nil
	}
	state, err := h.state.Get(ctx, deviceID)
	if err != nil {
		return nil
	}
	return state
}

func (h *DeviceHandler) fetchAuthorized(w http.ResponseWriter, r *http.Request) (*models.Device, bool) {
	device, err := h.store.GetDevice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrDeviceNotFound) {
			NotFound(w, "Device not found")
			return nil, false
		}
		InternalServerError(w, "Failed to fetch device")
		return nil, false
	}

	if !authorizeTenant(w, r, device.TenantID) {
		return nil, false
	}
	return device, true
}
