package apiclient

import "time"

// Package represents a subscription package.
type Package struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	StorageGB         int64     `json:"storage_gb"`
	MaxDevices        int       `json:"max_devices"`
	PriceCents        int64     `json:"price_cents"`
	Currency          string    `json:"currency"`
	BillingPeriodDays int       `json:"billing_period_days"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreatePackageRequest is the request to create or update a package.
type CreatePackageRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	StorageGB         int64  `json:"storage_gb"`
	MaxDevices        int    `json:"max_devices"`
	PriceCents        int64  `json:"price_cents,omitempty"`
	Currency          string `json:"currency,omitempty"`
	BillingPeriodDays int    `json:"billing_period_days,omitempty"`
}

// ListPackages returns all packages.
func (c *Client) ListPackages() ([]Package, error) {
	return listResources[Package](c, "/api/packages")
}

// GetPackage returns a package by ID.
func (c *Client) GetPackage(id string) (*Package, error) {
	return getResource[Package](c, resourcePath("/api/packages/%s", id))
}

// CreatePackage creates a new package.
func (c *Client) CreatePackage(req *CreatePackageRequest) (*Package, error) {
	return createResource[Package](c, "/api/packages", req)
}

// UpdatePackage updates an existing package.
func (c *Client) UpdatePackage(id string, req *CreatePackageRequest) (*Package, error) {
	return updateResource[Package](c, resourcePath("/api/packages/%s", id), req)
}

// DeletePackage deletes a package. Fails with a conflict error while
// any tenant is still subscribed to it.
func (c *Client) DeletePackage(id string) error {
	return deleteResource(c, resourcePath("/api/packages/%s", id))
}
