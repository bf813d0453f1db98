// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// AckRepository is the storage boundary for coaching acknowledgement state.
type AckRepository interface {
	// GetAckStatus returns the ack for a suggestion, or nil when none was recorded.
	GetAckStatus(ctx context.Context, userID, suggestionID string) (*entity.CoachingAck, error)

	// ListByUser returns every ack recorded for the user keyed by suggestion id.
	ListByUser(ctx context.Context, userID string) (map[string]entity.AckAction, error)

	// Upsert writes the ack as a single atomic statement keyed by (user_id, suggestion_id).
	// A later write replaces the earlier one.
	Upsert(ctx context.Context, ack *entity.CoachingAck) error
}
