package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for signage operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// Tenant attributes
	AttrTenantID   = "tenant.id"
	AttrTenantSlug = "tenant.slug"
	AttrPackageID  = "package.id"

	// Content attributes
	AttrContentID   = "content.id"
	AttrContentKind = "content.kind"
	AttrFilename    = "content.filename"
	AttrSizeBytes   = "content.size_bytes"
	AttrMediaKey    = "media.key"

	// Quota enforcement attributes
	AttrQuotaLimitBytes = "quota.limit_bytes"
	AttrQuotaUsedBytes  = "quota.used_bytes"
	AttrQuotaFreedBytes = "quota.freed_bytes"
	AttrQuotaDeleted    = "quota.deleted_count"
	AttrQuotaStillOver  = "quota.still_over_limit"
	AttrQuotaIncoming   = "quota.incoming_bytes"

	// Device attributes
	AttrDeviceID    = "device.id"
	AttrPairingCode = "device.pairing_code"

	// User/Auth attributes
	AttrUsername = "user.name"
	AttrUserRole = "user.role"

	// Storage backend attributes
	AttrStoreType = "store.type"
	AttrBucket    = "storage.bucket"
	AttrKey       = "storage.key"
	AttrRegion    = "storage.region"
)

// Span names for operations.
// Format: <component>.<operation>
const (
	SpanQuotaEnforce  = "quota.enforce"
	SpanQuotaHeadroom = "quota.check_headroom"
	SpanMediaPut      = "media.put"
	SpanMediaGet      = "media.get"
	SpanMediaDelete   = "media.delete"
	SpanUpload        = "content.upload"
	SpanPackageChange = "tenant.change_package"
)

// TenantID returns an attribute for tenant id
func TenantID(id string) attribute.KeyValue {
	return attribute.String(AttrTenantID, id)
}

// TenantSlug returns an attribute for tenant slug
func TenantSlug(slug string) attribute.KeyValue {
	return attribute.String(AttrTenantSlug, slug)
}

// PackageID returns an attribute for package id
func PackageID(id string) attribute.KeyValue {
	return attribute.String(AttrPackageID, id)
}

// ContentID returns an attribute for content id
func ContentID(id string) attribute.KeyValue {
	return attribute.String(AttrContentID, id)
}

// ContentKind returns an attribute for content kind
func ContentKind(kind string) attribute.KeyValue {
	return attribute.String(AttrContentKind, kind)
}

// Filename returns an attribute for a content filename
func Filename(name string) attribute.KeyValue {
	return attribute.String(AttrFilename, name)
}

// SizeBytes returns an attribute for a content byte size
func SizeBytes(size int64) attribute.KeyValue {
	return attribute.Int64(AttrSizeBytes, size)
}

// MediaKey returns an attribute for a media store key
func MediaKey(key string) attribute.KeyValue {
	return attribute.String(AttrMediaKey, key)
}

// QuotaLimit returns an attribute for the effective storage limit
func QuotaLimit(bytes int64) attribute.KeyValue {
	return attribute.Int64(AttrQuotaLimitBytes, bytes)
}

// QuotaUsed returns an attribute for current storage usage
func QuotaUsed(bytes int64) attribute.KeyValue {
	return attribute.Int64(AttrQuotaUsedBytes, bytes)
}

// QuotaFreed returns an attribute for bytes freed by cleanup
func QuotaFreed(bytes int64) attribute.KeyValue {
	return attribute.Int64(AttrQuotaFreedBytes, bytes)
}

// QuotaDeleted returns an attribute for files deleted by cleanup
func QuotaDeleted(count int) attribute.KeyValue {
	return attribute.Int(AttrQuotaDeleted, count)
}

// QuotaStillOver returns an attribute flagging an exhausted cleanup
func QuotaStillOver(over bool) attribute.KeyValue {
	return attribute.Bool(AttrQuotaStillOver, over)
}

// QuotaIncoming returns an attribute for the size of an incoming upload
func QuotaIncoming(bytes int64) attribute.KeyValue {
	return attribute.Int64(AttrQuotaIncoming, bytes)
}

// DeviceID returns an attribute for device id
func DeviceID(id string) attribute.KeyValue {
	return attribute.String(AttrDeviceID, id)
}

// Username returns an attribute for username
func Username(name string) attribute.KeyValue {
	return attribute.String(AttrUsername, name)
}

// UserRole returns an attribute for user role
func UserRole(role string) attribute.KeyValue {
	return attribute.String(AttrUserRole, role)
}

// StoreType returns an attribute for media store type
func StoreType(t string) attribute.KeyValue {
	return attribute.String(AttrStoreType, t)
}

// Bucket returns an attribute for S3 bucket name
func Bucket(name string) attribute.KeyValue {
	return attribute.String(AttrBucket, name)
}

// StorageKey returns an attribute for S3 object key
func StorageKey(key string) attribute.KeyValue {
	return attribute.String(AttrKey, key)
}

// Region returns an attribute for cloud region
func Region(region string) attribute.KeyValue {
	return attribute.String(AttrRegion, region)
}

// StartQuotaSpan starts a span for a quota engine operation.
// This is a convenience function that sets common attributes.
func StartQuotaSpan(ctx context.Context, operation, tenantID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		TenantID(tenantID),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "quota."+operation, trace.WithAttributes(allAttrs...))
}

// StartMediaSpan starts a span for a media store operation.
func StartMediaSpan(ctx context.Context, operation, key string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		MediaKey(key),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "media."+operation, trace.WithAttributes(allAttrs...))
}
