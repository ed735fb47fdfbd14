package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/signcast/signcast/pkg/signage/models"
)

// ============================================
// PLAYLIST OPERATIONS
// ============================================

func (s *GORMStore) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_items.position ASC")
		}).
		Preload("Items.Content").
		Where("id = ?", id).
		First(&playlist).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrPlaylistNotFound)
	}
	return &playlist, nil
}

func (s *GORMStore) ListPlaylistsByTenant(ctx context.Context, tenantID string) ([]*models.Playlist, error) {
	return listByField[models.Playlist](s.db, ctx, "tenant_id", tenantID, "Items")
}

func (s *GORMStore) CreatePlaylist(ctx context.Context, playlist *models.Playlist) (string, error) {
	return createWithID(s.db, ctx, playlist, func(p *models.Playlist, id string) { p.ID = id }, playlist.ID, models.ErrDuplicatePlaylist)
}

func (s *GORMStore) UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	var existing models.Playlist
	if err := s.db.WithContext(ctx).Where("id = ?", playlist.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrPlaylistNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Description").
		Updates(playlist).Error
}

// ReplacePlaylistItems swaps the complete item list in one transaction.
// Item positions are normalized to the slice order; referenced content must
// exist and belong to the playlist's tenant.
func (s *GORMStore) ReplacePlaylistItems(ctx context.Context, playlistID string, items []models.PlaylistItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var playlist models.Playlist
		if err := tx.Where("id = ?", playlistID).First(&playlist).Error; err != nil {
			return convertNotFoundError(err, models.ErrPlaylistNotFound)
		}

		for i := range items {
			var content models.Content
			if err := tx.Where("id = ? AND tenant_id = ?", items[i].ContentID, playlist.TenantID).First(&content).Error; err != nil {
				return convertNotFoundError(err, models.ErrContentNotFound)
			}
		}

		if err := tx.Where("playlist_id = ?", playlistID).Delete(&models.PlaylistItem{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = uuid.New().String()
			items[i].PlaylistID = playlistID
			items[i].Position = i
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GORMStore) DeletePlaylist(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var playlist models.Playlist
		if err := tx.Where("id = ?", id).First(&playlist).Error; err != nil {
			return convertNotFoundError(err, models.ErrPlaylistNotFound)
		}

		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&playlist).Error
	})
}
