package apiclient

import "time"

// Payment represents a package subscription payment.
type Payment struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	PackageID   string     `json:"package_id"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	ExternalRef string     `json:"external_ref,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PaymentResult is the response from payment confirmation.
// Confirming a payment switches the tenant to the paid package; the
// StorageCleanup field reports evictions caused by a smaller limit.
type PaymentResult struct {
	Payment
	StorageCleanup *StorageCleanup `json:"storageCleanup,omitempty"`
}

// CreatePaymentRequest is the request to open a pending payment.
type CreatePaymentRequest struct {
	PackageID string `json:"package_id"`
}

// ConfirmPaymentRequest is the request to confirm a pending payment.
type ConfirmPaymentRequest struct {
	ExternalRef string `json:"external_ref,omitempty"`
}

// ListPayments returns the tenant's payments.
func (c *Client) ListPayments(tenantID string) ([]Payment, error) {
	return listResources[Payment](c, tenantQuery("/api/payments", tenantID))
}

// GetPayment returns a payment by ID.
func (c *Client) GetPayment(id string) (*Payment, error) {
	return getResource[Payment](c, resourcePath("/api/payments/%s", id))
}

// CreatePayment opens a pending payment for a package subscription.
func (c *Client) CreatePayment(tenantID, packageID string) (*Payment, error) {
	req := CreatePaymentRequest{PackageID: packageID}
	return createResource[Payment](c, tenantQuery("/api/payments", tenantID), req)
}

// ConfirmPayment marks a pending payment as paid and applies the package.
func (c *Client) ConfirmPayment(id, externalRef string) (*PaymentResult, error) {
	req := ConfirmPaymentRequest{ExternalRef: externalRef}
	return createResource[PaymentResult](c, resourcePath("/api/payments/%s/confirm", id), req)
}

// FailPayment marks a pending payment as failed.
func (c *Client) FailPayment(id string) (*Payment, error) {
	return createResource[Payment](c, resourcePath("/api/payments/%s/fail", id), nil)
}
