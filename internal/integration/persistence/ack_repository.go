// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
	"github.com/ecoimpact/backend/internal/integration/persistence/model"
)

// ackRepository implements the adapter.AckRepository interface.
type ackRepository struct {
	db *gorm.DB
}

// NewAckRepository creates a new coaching ack repository instance.
func NewAckRepository(db *gorm.DB) adapter.AckRepository {
	return &ackRepository{
		db: db,
	}
}

// GetAckStatus retrieves the ack for one suggestion, or nil when none exists.
func (r *ackRepository) GetAckStatus(ctx context.Context, userID, suggestionID string) (*entity.CoachingAck, error) {
	var ackModel model.CoachingAckModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND suggestion_id = ?", userID, suggestionID).
		First(&ackModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ackModel.ToEntity(), nil
}

// ListByUser retrieves every ack of a user keyed by suggestion id.
func (r *ackRepository) ListByUser(ctx context.Context, userID string) (map[string]entity.AckAction, error) {
	var ackModels []model.CoachingAckModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ackModels)
	if result.Error != nil {
		return nil, result.Error
	}

	acks := make(map[string]entity.AckAction, len(ackModels))
	for _, am := range ackModels {
		acks[am.SuggestionID] = entity.AckAction(am.Action)
	}
	return acks, nil
}

// Upsert inserts the ack or replaces the action of an existing one in a single statement.
func (r *ackRepository) Upsert(ctx context.Context, ack *entity.CoachingAck) error {
	ackModel := model.CoachingAckFromEntity(ack)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "suggestion_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"action", "recorded_at"}),
		}).
		Create(ackModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
