package apiclient

import "time"

// Tenant represents a tenant in the system.
type Tenant struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	PackageID      string          `json:"package_id"`
	Package        *Package        `json:"package,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	StorageCleanup *StorageCleanup `json:"storageCleanup,omitempty"`
}

// StorageCleanup describes files evicted by a quota enforcement run.
type StorageCleanup struct {
	DeletedCount    int           `json:"deletedCount"`
	FreedSpaceGB    float64       `json:"freedSpaceGB"`
	PreviousUsageGB float64       `json:"previousUsageGB"`
	CurrentUsageGB  float64       `json:"currentUsageGB"`
	LimitGB         float64       `json:"limitGB"`
	DeletedFiles    []DeletedFile `json:"deletedFiles"`
	StillOverLimit  bool          `json:"stillOverLimit,omitempty"`
}

// DeletedFile identifies a single evicted file.
type DeletedFile struct {
	Filename string  `json:"filename"`
	SizeGB   float64 `json:"sizeGB"`
}

// CreateTenantRequest is the request to create a tenant.
type CreateTenantRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PackageID string `json:"package_id"`
}

// UpdateTenantRequest is the request to update a tenant.
// Changing PackageID triggers synchronous storage quota enforcement;
// the response's StorageCleanup field reports any evicted files.
type UpdateTenantRequest struct {
	Name      *string `json:"name,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	PackageID *string `json:"package_id,omitempty"`
}

// ListTenants returns all tenants.
func (c *Client) ListTenants() ([]Tenant, error) {
	return listResources[Tenant](c, "/api/tenants")
}

// GetTenant returns a tenant by ID.
func (c *Client) GetTenant(id string) (*Tenant, error) {
	return getResource[Tenant](c, resourcePath("/api/tenants/%s", id))
}

// CreateTenant creates a new tenant.
func (c *Client) CreateTenant(req *CreateTenantRequest) (*Tenant, error) {
	return createResource[Tenant](c, "/api/tenants", req)
}

// UpdateTenant updates an existing tenant.
func (c *Client) UpdateTenant(id string, req *UpdateTenantRequest) (*Tenant, error) {
	return updateResource[Tenant](c, resourcePath("/api/tenants/%s", id), req)
}

// SetTenantPackage changes a tenant's subscription package.
// The returned tenant carries a StorageCleanup report when the change
// forced evictions to fit the new, smaller storage limit.
func (c *Client) SetTenantPackage(id, packageID string) (*Tenant, error) {
	return c.UpdateTenant(id, &UpdateTenantRequest{PackageID: &packageID})
}

// DeleteTenant deletes a tenant and all of its stored media.
func (c *Client) DeleteTenant(id string) error {
	return deleteResource(c, resourcePath("/api/tenants/%s", id))
}
