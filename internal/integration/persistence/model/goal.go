// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	UserID    string    `gorm:"type:varchar(64);not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Current   float64   `gorm:"not null;default:0"`
	Target    float64   `gorm:"not null"`
	Unit      string    `gorm:"type:varchar(32)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Current:   m.Current,
		Target:    m.Target,
		Unit:      m.Unit,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:        goal.ID,
		UserID:    goal.UserID,
		Title:     goal.Title,
		Current:   goal.Current,
		Target:    goal.Target,
		Unit:      goal.Unit,
		CreatedAt: goal.CreatedAt,
		UpdatedAt: goal.UpdatedAt,
	}
}
