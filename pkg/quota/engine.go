// Package quota enforces per-tenant storage limits.
//
// A tenant's limit comes from its package (StorageGB, in GiB). When usage
// exceeds the limit the engine deletes content items oldest first, blob
// bytes and metadata row together, until usage fits again, and reports
// exactly what it removed. Enforcement for one tenant is serialized; runs
// for different tenants proceed in parallel.
package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/internal/telemetry"
	"github.com/signcast/signcast/pkg/media"
	"github.com/signcast/signcast/pkg/signage/models"
)

// TenantSource resolves tenants and their effective storage limits.
type TenantSource interface {
	// GetTenant returns the tenant with its package preloaded, or
	// models.ErrTenantNotFound.
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
}

// ContentSource reads and deletes content metadata.
type ContentSource interface {
	// ListContentByTenant returns the tenant's content in eviction order:
	// ascending creation time, ties broken by ascending id.
	ListContentByTenant(ctx context.Context, tenantID string) ([]*models.Content, error)

	// SumContentSizeByTenant returns the exact total of SizeBytes across
	// the tenant's content rows.
	SumContentSizeByTenant(ctx context.Context, tenantID string) (int64, error)

	// DeleteContent removes one content row.
	DeleteContent(ctx context.Context, id string) error
}

// Recorder receives enforcement outcomes for instrumentation.
// Implementations must be safe for concurrent use.
type Recorder interface {
	CleanupRun(filesDeleted int, bytesFreed int64)
	UploadRejected()
}

// Engine runs storage quota enforcement.
type Engine struct {
	tenants  TenantSource
	contents ContentSource
	blobs    media.Store
	locks    *tenantLocks
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder attaches an instrumentation sink.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine creates an enforcement engine over the given sources.
func NewEngine(tenants TenantSource, contents ContentSource, blobs media.Store, opts ...Option) *Engine {
	e := &Engine{
		tenants:  tenants,
		contents: contents,
		blobs:    blobs,
		locks:    newTenantLocks(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enforce brings the tenant's storage usage back under its limit.
//
// Returns (nil, nil) when usage is already within the limit. Otherwise it
// deletes content oldest first until usage fits and returns the report.
// When the pass cannot finish — a deletion fails, or everything deletable
// is gone and usage is still over — the error is a *PartialCleanupError
// carrying the partial report.
//
// Repeated runs against unchanged state are deterministic: same victims,
// same order.
func (e *Engine) Enforce(ctx context.Context, tenantID string) (*CleanupReport, error) {
	ctx, span := telemetry.StartQuotaSpan(ctx, "enforce", tenantID)
	defer span.End()

	unlock := e.locks.Lock(tenantID)
	defer unlock()

	report, err := e.enforceLocked(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(ctx, err)
		var partial *PartialCleanupError
		if errors.As(err, &partial) {
			span.SetAttributes(
				telemetry.QuotaDeleted(partial.Report.DeletedCount),
				telemetry.QuotaFreed(partial.Report.FreedBytes),
				telemetry.QuotaStillOver(partial.Report.StillOverLimit()),
			)
		}
		return nil, err
	}
	if report != nil {
		span.SetAttributes(
			telemetry.QuotaDeleted(report.DeletedCount),
			telemetry.QuotaFreed(report.FreedBytes),
			telemetry.QuotaUsed(report.CurrentUsageBytes),
			telemetry.QuotaLimit(report.LimitBytes),
		)
	}
	return report, nil
}

func (e *Engine) enforceLocked(ctx context.Context, tenantID string) (*CleanupReport, error) {
	tenant, err := e.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	limit := tenant.StorageLimitBytes()

	used, err := e.contents.SumContentSizeByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute storage usage: %w", err)
	}

	if used <= limit {
		return nil, nil
	}

	items, err := e.contents.ListContentByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list content for cleanup: %w", err)
	}

	report := &CleanupReport{
		PreviousUsageBytes: used,
		CurrentUsageBytes:  used,
		LimitBytes:         limit,
	}

	for _, item := range items {
		if report.CurrentUsageBytes <= limit {
			break
		}

		if err := e.deleteItem(ctx, item); err != nil {
			e.observe(report)
			return nil, &PartialCleanupError{Report: report, Cause: err}
		}

		report.DeletedCount++
		report.FreedBytes += item.SizeBytes
		report.CurrentUsageBytes -= item.SizeBytes
		report.DeletedFiles = append(report.DeletedFiles, DeletedFile{
			Filename:  item.Filename,
			SizeBytes: item.SizeBytes,
		})
	}

	e.observe(report)

	if report.StillOverLimit() {
		logger.Warn("storage still over limit after maximal cleanup",
			"tenant_id", tenantID,
			"deleted_count", report.DeletedCount,
			"current_usage_bytes", report.CurrentUsageBytes,
			"limit_bytes", limit)
		return nil, &PartialCleanupError{Report: report}
	}

	logger.Info("storage cleanup completed",
		"tenant_id", tenantID,
		"deleted_count", report.DeletedCount,
		"freed_bytes", report.FreedBytes,
		"current_usage_bytes", report.CurrentUsageBytes,
		"limit_bytes", limit)

	return report, nil
}

// deleteItem removes one content item, blob first, then the metadata row.
// Usage accounting is driven by the rows, so a missing blob with a live
// row keeps the books consistent; the reverse would not.
func (e *Engine) deleteItem(ctx context.Context, item *models.Content) error {
	if err := e.blobs.Delete(ctx, item.MediaKey); err != nil {
		return fmt.Errorf("failed to delete media %q: %w", item.MediaKey, err)
	}
	if err := e.contents.DeleteContent(ctx, item.ID); err != nil {
		logger.Warn("content row survived its blob; bytes already freed",
			"content_id", item.ID, "media_key", item.MediaKey)
		return fmt.Errorf("failed to delete content %q: %w", item.ID, err)
	}
	return nil
}

func (e *Engine) observe(report *CleanupReport) {
	if e.recorder == nil || report.DeletedCount == 0 {
		return
	}
	e.recorder.CleanupRun(report.DeletedCount, report.FreedBytes)
}

// CheckHeadroom reports whether a file of incomingBytes could be accepted
// for the tenant. It never mutates state.
//
// Fits is true iff the file could be accommodated after maximal cleanup,
// that is, its size alone does not exceed the limit. CleanupRequired
// signals that accepting it would push usage over the limit and trigger
// an enforcement pass.
func (e *Engine) CheckHeadroom(ctx context.Context, tenantID string, incomingBytes int64) (Headroom, error) {
	ctx, span := telemetry.StartQuotaSpan(ctx, "check_headroom", tenantID,
		telemetry.QuotaIncoming(incomingBytes))
	defer span.End()

	tenant, err := e.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return Headroom{}, err
	}
	limit := tenant.StorageLimitBytes()

	used, err := e.contents.SumContentSizeByTenant(ctx, tenantID)
	if err != nil {
		return Headroom{}, fmt.Errorf("failed to compute storage usage: %w", err)
	}

	h := Headroom{
		UsedBytes:      used,
		LimitBytes:     limit,
		AvailableBytes: limit - used,
	}

	if incomingBytes > limit {
		h.ShortfallBytes = incomingBytes - limit
		return h, nil
	}

	h.Fits = true
	h.CleanupRequired = used+incomingBytes > limit
	return h, nil
}

// RejectUpload records an upload turned away for lack of quota.
func (e *Engine) RejectUpload() {
	if e.recorder != nil {
		e.recorder.UploadRejected()
	}
}
