package store

import (
	"context"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// CONTENT OPERATIONS
// ============================================

func (s *GORMStore) CreateContent(ctx context.Context, content *models.Content) (string, error) {
	return createWithID(s.db, ctx, content, func(c *models.Content, id string) { c.ID = id }, content.ID, models.ErrContentNotFound)
}

func (s *GORMStore) GetContent(ctx context.Context, id string) (*models.Content, error) {
	return getByField[models.Content](s.db, ctx, "id", id, models.ErrContentNotFound)
}

// ListContentByTenant returns a tenant's content in eviction order:
// oldest first, ties broken by ascending id. The quota engine relies on this
// ordering being deterministic across repeated calls.
func (s *GORMStore) ListContentByTenant(ctx context.Context, tenantID string) ([]*models.Content, error) {
	var contents []*models.Content
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC, id ASC").
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// SumContentSizeByTenant computes total usage with SQL SUM over int64.
// COALESCE keeps the zero-rows case at 0 instead of NULL.
func (s *GORMStore) SumContentSizeByTenant(ctx context.Context, tenantID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *GORMStore) DeleteContent(ctx context.Context, id string) error {
	return deleteByField[models.Content](s.db, ctx, "id", id, models.ErrContentNotFound)
}
