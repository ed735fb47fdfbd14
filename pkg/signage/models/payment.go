package models

import "time"

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
	PaymentExpired PaymentStatus = "expired"
)

// IsValid checks if the status is a known PaymentStatus.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentExpired:
		return true
	}
	return false
}

// Payment records one purchase of a package by a tenant. Confirming a
// pending payment applies the purchased package to the tenant, which in
// turn runs storage quota enforcement when the new package is smaller.
//
// The gateway round-trip itself lives outside this server; ExternalRef
// carries the gateway's transaction id for reconciliation.
type Payment struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	TenantID    string        `gorm:"not null;size:36;index" json:"tenant_id"`
	PackageID   string        `gorm:"not null;size:36" json:"package_id"`
	AmountCents int64         `gorm:"not null" json:"amount_cents"`
	Currency    string        `gorm:"not null;size:3" json:"currency"`
	Status      string        `gorm:"default:pending;size:50;index" json:"status"`
	ExternalRef string        `gorm:"size:255" json:"external_ref,omitempty"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Package Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

// TableName returns the table name for Payment.
func (Payment) TableName() string {
	return "payments"
}

// GetStatus returns the payment status as a PaymentStatus.
func (p *Payment) GetStatus() PaymentStatus {
	return PaymentStatus(p.Status)
}
