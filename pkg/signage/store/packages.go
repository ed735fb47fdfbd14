package store

import (
	"context"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// PACKAGE OPERATIONS
// ============================================

func (s *GORMStore) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	return getByField[models.Package](s.db, ctx, "id", id, models.ErrPackageNotFound)
}

func (s *GORMStore) GetPackageByName(ctx context.Context, name string) (*models.Package, error) {
	return getByField[models.Package](s.db, ctx, "name", name, models.ErrPackageNotFound)
}

func (s *GORMStore) ListPackages(ctx context.Context) ([]*models.Package, error) {
	return listAll[models.Package](s.db, ctx)
}

func (s *GORMStore) CreatePackage(ctx context.Context, pkg *models.Package) (string, error) {
	return createWithID(s.db, ctx, pkg, func(p *models.Package, id string) { p.ID = id }, pkg.ID, models.ErrDuplicatePackage)
}

func (s *GORMStore) UpdatePackage(ctx context.Context, pkg *models.Package) error {
	var existing models.Package
	if err := s.db.WithContext(ctx).Where("id = ?", pkg.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrPackageNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Description", "StorageGB", "MaxDevices", "PriceCents", "Currency", "BillingPeriodDays", "Active").
		Updates(pkg).Error
}

func (s *GORMStore) DeletePackage(ctx context.Context, id string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).Where("package_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.ErrPackageInUse
	}

	return deleteByField[models.Package](s.db, ctx, "id", id, models.ErrPackageNotFound)
}
