// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// CoachingAckModel represents the coaching_acks table. The composite primary
// key makes (user_id, suggestion_id) the upsert target.
type CoachingAckModel struct {
	UserID       string    `gorm:"type:varchar(64);primaryKey"`
	SuggestionID string    `gorm:"type:varchar(64);primaryKey"`
	Action       string    `gorm:"type:varchar(16);not null"`
	RecordedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the CoachingAckModel.
func (CoachingAckModel) TableName() string {
	return "coaching_acks"
}

// ToEntity converts a CoachingAckModel to a domain CoachingAck entity.
func (m *CoachingAckModel) ToEntity() *entity.CoachingAck {
	return &entity.CoachingAck{
		UserID:       m.UserID,
		SuggestionID: m.SuggestionID,
		Action:       entity.AckAction(m.Action),
		RecordedAt:   m.RecordedAt,
	}
}

// CoachingAckFromEntity creates a CoachingAckModel from a domain CoachingAck entity.
func CoachingAckFromEntity(ack *entity.CoachingAck) *CoachingAckModel {
	return &CoachingAckModel{
		UserID:       ack.UserID,
		SuggestionID: ack.SuggestionID,
		Action:       string(ack.Action),
		RecordedAt:   ack.RecordedAt,
	}
}
