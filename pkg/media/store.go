// Package media defines the blob store that holds the bytes of uploaded
// content. Metadata (filename, size, owner) lives in the relational store;
// this package only deals in opaque keys and byte streams.
//
// Keys use forward slashes as separators and are namespaced per tenant
// ("tenants/<tenant-id>/<content-id>"), so a tenant's entire media footprint
// can be dropped with a single prefix delete.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMediaNotFound is returned when a key does not exist in the store.
	ErrMediaNotFound = errors.New("media not found")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("media store is closed")
)

// Store is the interface all media backends implement.
type Store interface {
	// Put writes the stream under the given key, replacing any previous
	// object, and returns the number of bytes written.
	Put(ctx context.Context, key string, r io.Reader) (int64, error)

	// Get opens the object for reading. The caller must close the returned
	// reader. Returns ErrMediaNotFound if the key does not exist.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every object whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// HealthCheck verifies the backend is reachable and writable.
	HealthCheck(ctx context.Context) error

	// Close releases backend resources. Operations after Close return
	// ErrStoreClosed.
	Close() error
}

// TenantPrefix returns the key prefix holding all of a tenant's media.
func TenantPrefix(tenantID string) string {
	return fmt.Sprintf("tenants/%s/", tenantID)
}

// ContentKey returns the store key for a single content item.
func ContentKey(tenantID, contentID string) string {
	return TenantPrefix(tenantID) + contentID
}
