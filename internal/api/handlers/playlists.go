package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

// PlaylistHandler handles playlist endpoints.
type PlaylistHandler struct {
	store store.Store
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(s store.Store) *PlaylistHandler {
	return &PlaylistHandler{store: s}
}

// CreatePlaylistRequest is the request body for POST /api/playlists.
type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PlaylistItemRequest is one entry of a PUT /api/playlists/{id}/items body.
// Items are replaced wholesale; positions follow the request order.
type PlaylistItemRequest struct {
	ContentID       string `json:"content_id"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// List handles GET /api/playlists.
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	playlists, err := h.store.ListPlaylistsByTenant(r.Context(), tenantID)
	if err != nil {
		InternalServerError(w, "Failed to list playlists")
		return
	}
	WriteJSONOK(w, playlists)
}

// Get handles GET /api/playlists/{id}.
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}
	WriteJSONOK(w, playlist)
}

// Create handles POST /api/playlists.
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	var req CreatePlaylistRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		BadRequest(w, "Name is required")
		return
	}

	playlist := &models.Playlist{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
	}

	id, err := h.store.CreatePlaylist(r.Context(), playlist)
	if err != nil {
		if errors.Is(err, models.ErrDuplicatePlaylist) {
			Conflict(w, "A playlist with this name already exists")
			return
		}
		InternalServerError(w, "Failed to create playlist")
		return
	}

	created, err := h.store.GetPlaylist(r.Context(), id)
	if err != nil {
		InternalServerError(w, "Failed to fetch created playlist")
		return
	}
	WriteJSONCreated(w, created)
}

// Update handles PUT /api/playlists/{id}.
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	var req CreatePlaylistRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name != "" {
		playlist.Name = req.Name
	}
	playlist.Description = req.Description

	if err := h.store.UpdatePlaylist(r.Context(), playlist); err != nil {
		if errors.Is(err, models.ErrDuplicatePlaylist) {
			Conflict(w, "A playlist with this name already exists")
			return
		}
		InternalServerError(w, "Failed to update playlist")
		return
	}
	WriteJSONOK(w, playlist)
}

// ReplaceItems handles PUT /api/playlists/{id}/items.
// The full item list is replaced in one transaction; positions are assigned
// from request order.
func (h *PlaylistHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	var req []PlaylistItemRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	items := make([]models.PlaylistItem, 0, len(req))
	for i, entry := range req {
		if entry.ContentID == "" {
			BadRequest(w, "content_id is required for every item")
			return
		}

		// Items must reference content of the same tenant.
		content, err := h.store.GetContent(r.Context(), entry.ContentID)
		if err != nil {
			if errors.Is(err, models.ErrContentNotFound) {
				UnprocessableEntity(w, "Referenced content does not exist")
				return
			}
			InternalServerError(w, "Failed to verify content")
			return
		}
		if content.TenantID != playlist.TenantID {
			UnprocessableEntity(w, "Referenced content belongs to another tenant")
			return
		}

		items = append(items, models.PlaylistItem{
			PlaylistID:      playlist.ID,
			ContentID:       entry.ContentID,
			Position:        i,
			DurationSeconds: entry.DurationSeconds,
		})
	}

	if err := h.store.ReplacePlaylistItems(r.Context(), playlist.ID, items); err != nil {
		InternalServerError(w, "Failed to replace playlist items")
		return
	}

	updated, err := h.store.GetPlaylist(r.Context(), playlist.ID)
	if err != nil {
		InternalServerError(w, "Failed to fetch updated playlist")
		return
	}
	WriteJSONOK(w, updated)
}

// Delete handles DELETE /api/playlists/{id}.
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	if err := h.store.DeletePlaylist(r.Context(), playlist.ID); err != nil {
		InternalServerError(w, "Failed to delete playlist")
		return
	}
	WriteNoContent(w)
}

func (h *PlaylistHandler) fetchAuthorized(w http.ResponseWriter, r *http.Request) (*models.Playlist, bool) {
	playlist, err := h.store.GetPlaylist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrPlaylistNotFound) {
			NotFound(w, "Playlist not found")
			return nil, false
		}
		InternalServerError(w, "Failed to fetch playlist")
		return nil, false
	}

	if !authorizeTenant(w, r, playlist.TenantID) {
		return nil, false
	}
	return playlist, true
}
