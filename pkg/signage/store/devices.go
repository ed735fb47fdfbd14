package store

import (
	"context"
	"time"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// DEVICE OPERATIONS
// ============================================

func (s *GORMStore) GetDevice(ctx context.Context, id string) (*models.Device, error) {
	return getByField[models.Device](s.db, ctx, "id", id, models.ErrDeviceNotFound)
}

func (s *GORMStore) GetDeviceByPairingCode(ctx context.Context, code string) (*models.Device, error) {
	return getByField[models.Device](s.db, ctx, "pairing_code", code, models.ErrInvalidPairingCode)
}

func (s *GORMStore) ListDevicesByTenant(ctx context.Context, tenantID string) ([]*models.Device, error) {
	return listByField[models.Device](s.db, ctx, "tenant_id", tenantID)
}

func (s *GORMStore) CountDevicesByTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Device{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (s *GORMStore) CreateDevice(ctx context.Context, device *models.Device) (string, error) {
	return createWithID(s.db, ctx, device, func(d *models.Device, id string) { d.ID = id }, device.ID, models.ErrDuplicateDevice)
}

func (s *GORMStore) UpdateDevice(ctx context.Context, device *models.Device) error {
	var existing models.Device
	if err := s.db.WithContext(ctx).Where("id = ?", device.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrDeviceNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Location", "PlaylistID", "LayoutID", "Active").
		Updates(device).Error
}

func (s *GORMStore) TouchDeviceLastSeen(ctx context.Context, id string, seen time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.Device{}).
		Where("id = ?", id).
		Update("last_seen_at", seen)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrDeviceNotFound
	}
	return nil
}

func (s *GORMStore) DeleteDevice(ctx context.Context, id string) error {
	return deleteByField[models.Device](s.db, ctx, "id", id, models.ErrDeviceNotFound)
}
