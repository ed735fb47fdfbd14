package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// TENANT OPERATIONS
// ============================================

func (s *GORMStore) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return getByField[models.Tenant](s.db, ctx, "id", id, models.ErrTenantNotFound, "Package")
}

func (s *GORMStore) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	return getByField[models.Tenant](s.db, ctx, "slug", slug, models.ErrTenantNotFound, "Package")
}

func (s *GORMStore) ListTenants(ctx context.Context) ([]*models.Tenant, error) {
	return listAll[models.Tenant](s.db, ctx, "Package")
}

func (s *GORMStore) CreateTenant(ctx context.Context, tenant *models.Tenant) (string, error) {
	// The referenced package must exist before the row is created
	if _, err := s.GetPackage(ctx, tenant.PackageID); err != nil {
		return "", err
	}
	return createWithID(s.db, ctx, tenant, func(t *models.Tenant, id string) { t.ID = id }, tenant.ID, models.ErrDuplicateTenant)
}

func (s *GORMStore) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	var existing models.Tenant
	if err := s.db.WithContext(ctx).Where("id = ?", tenant.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrTenantNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Slug", "Active").
		Updates(tenant).Error
}

func (s *GORMStore) SetTenantPackage(ctx context.Context, tenantID, packageID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg models.Package
		if err := tx.Where("id = ?", packageID).First(&pkg).Error; err != nil {
			return convertNotFoundError(err, models.ErrPackageNotFound)
		}

		result := tx.Model(&models.Tenant{}).
			Where("id = ?", tenantID).
			Update("package_id", packageID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrTenantNotFound
		}
		return nil
	})
}

func (s *GORMStore) DeleteTenant(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.Where("id = ?", id).First(&tenant).Error; err != nil {
			return convertNotFoundError(err, models.ErrTenantNotFound)
		}

		// Playlist items and layout zones hang off playlists/layouts
		var playlistIDs []string
		if err := tx.Model(&models.Playlist{}).Where("tenant_id = ?", id).Pluck("id", &playlistIDs).Error; err != nil {
			return err
		}
		if len(playlistIDs) > 0 {
			if err := tx.Where("playlist_id IN ?", playlistIDs).Delete(&models.PlaylistItem{}).Error; err != nil {
				return err
			}
		}

		var layoutIDs []string
		if err := tx.Model(&models.Layout{}).Where("tenant_id = ?", id).Pluck("id", &layoutIDs).Error; err != nil {
			return err
		}
		if len(layoutIDs) > 0 {
			if err := tx.Where("layout_id IN ?", layoutIDs).Delete(&models.LayoutZone{}).Error; err != nil {
				return err
			}
		}

		for _, model := range []any{
			&models.Playlist{}, &models.Layout{}, &models.Content{},
			&models.Device{}, &models.Payment{}, &models.User{},
		} {
			if err := tx.Where("tenant_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&tenant).Error
	})
}
