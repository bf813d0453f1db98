// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecoimpact/backend/internal/domain/entity"
	"github.com/ecoimpact/backend/internal/integration/persistence/model"
)

// LeaderboardRepository stores refreshed leaderboard rows and serves them as live candidates.
// It implements adapter.LeaderboardRepository and adapter.LeaderboardWriter.
type LeaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new leaderboard repository instance.
func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{
		db: db,
	}
}

// ListCandidates returns every stored row, best first.
func (r *LeaderboardRepository) ListCandidates(ctx context.Context) ([]*entity.LeaderboardEntry, error) {
	var entryModels []model.LeaderboardEntryModel
	result := r.db.WithContext(ctx).
		Order("eco_points DESC, user_id ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.LeaderboardEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries, nil
}

// ReplaceEntries makes entries the whole stored board. Rows of users missing
// from entries are deleted in the same transaction, so a refreshed month never
// keeps rows computed for an earlier one.
func (r *LeaderboardRepository) ReplaceEntries(ctx context.Context, entries []*entity.LeaderboardEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Where("1 = 1")
		if len(entries) > 0 {
			userIDs := make([]string, len(entries))
			for i, e := range entries {
				userIDs[i] = e.UserID
			}
			stale = tx.Where("user_id NOT IN ?", userIDs)
		}
		if err := stale.Delete(&model.LeaderboardEntryModel{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		models := make([]*model.LeaderboardEntryModel, len(entries))
		for i, e := range entries {
			models[i] = model.LeaderboardEntryFromEntity(e)
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(&models).Error
	})
}
