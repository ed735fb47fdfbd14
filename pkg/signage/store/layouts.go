package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// LAYOUT OPERATIONS
// ============================================

func (s *GORMStore) GetLayout(ctx context.Context, id string) (*models.Layout, error) {
	var layout models.Layout
	err := s.db.WithContext(ctx).
		Preload("Zones", func(db *gorm.DB) *gorm.DB {
			return db.Order("layout_zones.z_index ASC")
		}).
		Where("id = ?", id).
		First(&layout).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrLayoutNotFound)
	}
	return &layout, nil
}

func (s *GORMStore) ListLayoutsByTenant(ctx context.Context, tenantID string) ([]*models.Layout, error) {
	return listByField[models.Layout](s.db, ctx, "tenant_id", tenantID, "Zones")
}

func (s *GORMStore) CreateLayout(ctx context.Context, layout *models.Layout) (string, error) {
	return createWithID(s.db, ctx, layout, func(l *models.Layout, id string) { l.ID = id }, layout.ID, models.ErrDuplicateLayout)
}

func (s *GORMStore) UpdateLayout(ctx context.Context, layout *models.Layout) error {
	var existing models.Layout
	if err := s.db.WithContext(ctx).Where("id = ?", layout.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrLayoutNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Width", "Height", "Background").
		Updates(layout).Error
}

// ReplaceLayoutZones swaps the complete zone list in one transaction.
// Zone types must be valid; geometry must stay within the canvas (percent
// coordinates in [0, 100]).
func (s *GORMStore) ReplaceLayoutZones(ctx context.Context, layoutID string, zones []models.LayoutZone) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var layout models.Layout
		if err := tx.Where("id = ?", layoutID).First(&layout).Error; err != nil {
			return convertNotFoundError(err, models.ErrLayoutNotFound)
		}

		for i := range zones {
			if !zones[i].GetZoneType().IsValid() {
				return fmt.Errorf("invalid zone type: %s", zones[i].Type)
			}
			if zones[i].X < 0 || zones[i].Y < 0 ||
				zones[i].X+zones[i].Width > 100 || zones[i].Y+zones[i].Height > 100 {
				return fmt.Errorf("zone %d geometry out of canvas bounds", i)
			}
		}

		if err := tx.Where("layout_id = ?", layoutID).Delete(&models.LayoutZone{}).Error; err != nil {
			return err
		}

		for i := range zones {
			zones[i].ID = uuid.New().String()
			zones[i].LayoutID = layoutID
			if err := tx.Create(&zones[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GORMStore) DeleteLayout(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var layout models.Layout
		if err := tx.Where("id = ?", id).First(&layout).Error; err != nil {
			return convertNotFoundError(err, models.ErrLayoutNotFound)
		}

		if err := tx.Where("layout_id = ?", id).Delete(&models.LayoutZone{}).Error; err != nil {
			return err
		}

		return tx.Delete(&layout).Error
	})
}
