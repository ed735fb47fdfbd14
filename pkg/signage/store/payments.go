package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// PAYMENT OPERATIONS
// ============================================

func (s *GORMStore) CreatePayment(ctx context.Context, payment *models.Payment) (string, error) {
	if payment.Status == "" {
		payment.Status = string(models.PaymentPending)
	}
	return createWithID(s.db, ctx, payment, func(p *models.Payment, id string) { p.ID = id }, payment.ID, models.ErrPaymentNotFound)
}

func (s *GORMStore) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return getByField[models.Payment](s.db, ctx, "id", id, models.ErrPaymentNotFound, "Package")
}

func (s *GORMStore) ListPaymentsByTenant(ctx context.Context, tenantID string) ([]*models.Payment, error) {
	return listByField[models.Payment](s.db, ctx, "tenant_id", tenantID, "Package")
}

// MarkPaymentPaid transitions pending → paid. The status check and update
// run in one transaction so a payment cannot be confirmed twice.
func (s *GORMStore) MarkPaymentPaid(ctx context.Context, id, externalRef string, paidAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return convertNotFoundError(err, models.ErrPaymentNotFound)
		}
		if payment.GetStatus() != models.PaymentPending {
			return models.ErrPaymentNotPending
		}

		return tx.Model(&payment).Updates(map[string]any{
			"status":       string(models.PaymentPaid),
			"external_ref": externalRef,
			"paid_at":      paidAt,
		}).Error
	})
}

func (s *GORMStore) MarkPaymentFailed(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return convertNotFoundError(err, models.ErrPaymentNotFound)
		}
		if payment.GetStatus() != models.PaymentPending {
			return models.ErrPaymentNotPending
		}

		return tx.Model(&payment).Update("status", string(models.PaymentFailed)).Error
	})
}
