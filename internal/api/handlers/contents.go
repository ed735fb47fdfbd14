package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/signcast/signcast/internal/bytesize"
	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/internal/telemetry"
	"github.com/signcast/signcast/pkg/media"
	"github.com/signcast/signcast/pkg/metrics"
	"github.com/signcast/signcast/pkg/quota"
	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

// multipartMemoryLimit is how much of a multipart body is held in memory
// before spilling to temp files.
const multipartMemoryLimit = 32 << 20

// ContentHandler handles media content endpoints: upload, listing, deletion
// and the storage usage views.
//
// Upload is where quota enforcement meets the wire. The flow is:
//
//  1. Headroom pre-flight: a file larger than the tenant's whole limit can
//     never fit, so it is rejected with 413 before any bytes are written.
//  2. Persist blob, create the metadata row.
//  3. Enforce the quota. If enforcement brings usage within the limit the
//     upload stands, with the cleanup report embedded when anything was
//     deleted. If usage is still over after maximal cleanup, the new
//     upload itself is rolled back and the request answered 413 with the
//     cleanup details.
type ContentHandler struct {
	store          store.Store
	blobs          media.Store
	engine         *quota.Engine
	metrics        *metrics.SignageMetrics
	maxUploadBytes int64
}

// NewContentHandler creates a new ContentHandler. The metrics parameter
// may be nil when metrics are disabled.
func NewContentHandler(s store.Store, blobs media.Store, engine *quota.Engine, m *metrics.SignageMetrics, maxUploadBytes int64) *ContentHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 4 << 30
	}
	return &ContentHandler{
		store:          s,
		blobs:          blobs,
		engine:         engine,
		metrics:        m,
		maxUploadBytes: maxUploadBytes,
	}
}

// ContentResponse is the wire representation of a content item.
type ContentResponse struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Filename  string  `json:"filename"`
	SizeBytes int64   `json:"size_bytes"`
	SizeGB    float64 `json:"sizeGB"`
	MIMEType  string  `json:"mime_type"`
	Kind      string  `json:"kind"`
	CreatedAt string  `json:"created_at"`
}

// UploadResponse is the success body for POST /api/contents.
type UploadResponse struct {
	Content        ContentResponse     `json:"content"`
	StorageCleanup *StorageCleanupView `json:"storageCleanup,omitempty"`
}

// StorageUsageResponse is the body for GET /api/contents/storage-usage.
type StorageUsageResponse struct {
	Storage StorageView `json:"storage"`
}

// StorageView reports a tenant's storage accounting.
type StorageView struct {
	UsedBytes       int64   `json:"usedBytes"`
	UsedGB          float64 `json:"usedGB"`
	LimitGB         float64 `json:"limitGB"`
	AvailableGB     float64 `json:"availableGB"`
	UsagePercentage float64 `json:"usagePercentage"`
	IsOverLimit     bool    `json:"isOverLimit"`
}

// StorageInfoResponse is the body for GET /api/contents/storage-info,
// the flat fallback shape some player firmware expects.
type StorageInfoResponse struct {
	UsedStorage     float64 `json:"usedStorage"`
	StorageLimit    float64 `json:"storageLimit"`
	UsagePercentage float64 `json:"usagePercentage"`
}

// List handles GET /api/contents.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	items, err := h.store.ListContentByTenant(r.Context(), tenantID)
	if err != nil {
		InternalServerError(w, "Failed to list content")
		return
	}

	views := make([]ContentResponse, 0, len(items))
	for _, item := range items {
		views = append(views, contentToResponse(item))
	}
	WriteJSONOK(w, views)
}

// Get handles GET /api/contents/{id}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	content, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}
	WriteJSONOK(w, contentToResponse(content))
}

// Download handles GET /api/contents/{id}/download, streaming the blob.
func (h *ContentHandler) Download(w http.ResponseWriter, r *http.Request) {
	content, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	reader, err := h.blobs.Get(r.Context(), content.MediaKey)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			NotFound(w, "Media bytes not found")
			return
		}
		InternalServerError(w, "Failed to read media")
		return
	}
	defer func() { _ = reader.Close() }()

	w.Header().Set("Content-Type", content.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+content.Filename+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		logger.Warn("failed to stream media", "content_id", content.ID, "error", err)
	}
}

// Delete handles DELETE /api/contents/{id}.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	content, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	// Blob first, row second: accounting follows the rows, so a dangling
	// blob is safe while a dangling row is not.
	if err := h.blobs.Delete(r.Context(), content.MediaKey); err != nil && !errors.Is(err, media.ErrMediaNotFound) {
		InternalServerError(w, "Failed to delete media")
		return
	}

	if err := h.store.DeleteContent(r.Context(), content.ID); err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			NotFound(w, "Content not found")
			return
		}
		InternalServerError(w, "Failed to delete content")
		return
	}

	WriteNoContent(w)
}

// StorageUsage handles GET /api/contents/storage-usage.
func (h *ContentHandler) StorageUsage(w http.ResponseWriter, r *http.Request) {
	view, ok := h.storageView(w, r)
	if !ok {
		return
	}
	WriteJSONOK(w, StorageUsageResponse{Storage: view})
}

// StorageInfo handles GET /api/contents/storage-info.
func (h *ContentHandler) StorageInfo(w http.ResponseWriter, r *http.Request) {
	view, ok := h.storageView(w, r)
	if !ok {
		return
	}
	WriteJSONOK(w, StorageInfoResponse{
		UsedStorage:     view.UsedGB,
		StorageLimit:    view.LimitGB,
		UsagePercentage: view.UsagePercentage,
	})
}

// storageView computes the tenant's current storage accounting.
func (h *ContentHandler) storageView(w http.ResponseWriter, r *http.Request) (StorageView, bool) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return StorageView{}, false
	}

	tenant, err := h.store.GetTenant(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			NotFound(w, "Tenant not found")
			return StorageView{}, false
		}
		InternalServerError(w, "Failed to fetch tenant")
		return StorageView{}, false
	}

	used, err := h.store.SumContentSizeByTenant(r.Context(), tenantID)
	if err != nil {
		InternalServerError(w, "Failed to compute storage usage")
		return StorageView{}, false
	}

	limit := tenant.StorageLimitBytes()
	available := limit - used
	if available < 0 {
		available = 0
	}

	return StorageView{
		UsedBytes:       used,
		UsedGB:          bytesize.BytesToGiB(used),
		LimitGB:         bytesize.BytesToGiB(limit),
		AvailableGB:     bytesize.BytesToGiB(available),
		UsagePercentage: bytesize.Percentage(used, limit),
		IsOverLimit:     used > limit,
	}, true
}

// Upload handles POST /api/contents (multipart, field name "file").
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requestTenantID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		BadRequest(w, "Invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequest(w, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		BadRequest(w, "Filename is required")
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), telemetry.SpanUpload)
	span.SetAttributes(
		telemetry.TenantID(tenantID),
		telemetry.Filename(header.Filename),
		telemetry.SizeBytes(header.Size),
	)
	defer span.End()
	r = r.WithContext(ctx)

	// Pre-flight: a file bigger than the whole limit can never fit, even
	// with every other item deleted. Reject before writing any bytes.
	headroom, err := h.engine.CheckHeadroom(r.Context(), tenantID, header.Size)
	if err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			NotFound(w, "Tenant not found")
			return
		}
		InternalServerError(w, "Failed to check storage headroom")
		return
	}
	if !headroom.Fits {
		h.engine.RejectUpload()
		WriteJSON(w, http.StatusRequestEntityTooLarge, QuotaExceededResponse{
			Error:            "File exceeds the tenant storage limit",
			CleanupPerformed: false,
			FilesDeleted:     0,
			FreedSpace:       0,
		})
		return
	}

	contentID := uuid.New().String()
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = models.DetectMIME(header.Filename)
	}

	key := media.ContentKey(tenantID, contentID+filepath.Ext(header.Filename))
	written, err := h.blobs.Put(r.Context(), key, file)
	if err != nil {
		InternalServerError(w, "Failed to store media")
		return
	}

	content := &models.Content{
		ID:        contentID,
		TenantID:  tenantID,
		Filename:  header.Filename,
		MediaKey:  key,
		SizeBytes: written,
		MIMEType:  mimeType,
		Kind:      models.KindFromMIME(mimeType),
	}

	if _, err := h.store.CreateContent(r.Context(), content); err != nil {
		if delErr := h.blobs.Delete(r.Context(), key); delErr != nil {
			logger.Warn("failed to remove blob after row creation failure", "key", key, "error", delErr)
		}
		InternalServerError(w, "Failed to record content")
		return
	}

	report, err := h.engine.Enforce(r.Context(), tenantID)
	if err != nil {
		var partial *quota.PartialCleanupError
		if !errors.As(err, &partial) {
			InternalServerError(w, "Quota enforcement failed")
			return
		}

		// Either way the triggering upload must not be retained.
		h.rollbackUpload(r, content)

		if partial.Cause != nil {
			// A deletion failed mid-pass. That is a backend fault, not
			// a quota rejection.
			logger.Error("cleanup aborted during upload enforcement",
				"tenant_id", tenantID,
				"deleted", partial.Report.DeletedCount,
				"error", err)
			CleanupFailed(w, partial.Report)
			return
		}

		// Maximal cleanup could not make room.
		h.engine.RejectUpload()
		WriteJSON(w, http.StatusRequestEntityTooLarge, QuotaExceededResponse{
			Error:            "Storage quota exceeded even after cleanup",
			CleanupPerformed: true,
			FilesDeleted:     partial.Report.DeletedCount,
			FreedSpace:       partial.Report.FreedGB(),
		})
		return
	}

	h.metrics.UploadAccepted(string(content.Kind))

	WriteJSONCreated(w, UploadResponse{
		Content:        contentToResponse(content),
		StorageCleanup: cleanupToView(report),
	})
}

// rollbackUpload removes the row and blob of an upload that was rejected
// after enforcement. The enforcement loop may already have evicted the new
// item itself, in which case both deletes are no-ops.
func (h *ContentHandler) rollbackUpload(r *http.Request, content *models.Content) {
	if err := h.store.DeleteContent(r.Context(), content.ID); err != nil && !errors.Is(err, models.ErrContentNotFound) {
		logger.Error("failed to roll back rejected upload row", "content_id", content.ID, "error", err)
	}
	if err := h.blobs.Delete(r.Context(), content.MediaKey); err != nil && !errors.Is(err, media.ErrMediaNotFound) {
		logger.Warn("failed to roll back rejected upload blob", "key", content.MediaKey, "error", err)
	}
}

// fetchAuthorized loads a content item by URL id and verifies the caller
// may access its tenant.
func (h *ContentHandler) fetchAuthorized(w http.ResponseWriter, r *http.Request) (*models.Content, bool) {
	id := chi.URLParam(r, "id")

	content, err := h.store.GetContent(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			NotFound(w, "Content not found")
			return nil, false
		}
		InternalServerError(w, "Failed to fetch content")
		return nil, false
	}

	if !authorizeTenant(w, r, content.TenantID) {
		return nil, false
	}
	return content, true
}

// contentToResponse converts a Content to its wire representation.
func contentToResponse(c *models.Content) ContentResponse {
	return ContentResponse{
		ID:        c.ID,
		TenantID:  c.TenantID,
		Filename:  c.Filename,
		SizeBytes: c.SizeBytes,
		SizeGB:    bytesize.BytesToGiB(c.SizeBytes),
		MIMEType:  c.MIMEType,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
