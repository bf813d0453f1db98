// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/ecoimpact/backend/internal/domain/entity"
)

// LeaderboardEntryModel represents the leaderboard_entries table, one row per user.
type LeaderboardEntryModel struct {
	UserID             string    `gorm:"type:varchar(64);primaryKey"`
	DisplayName        string    `gorm:"type:varchar(100);not null"`
	EcoPoints          int       `gorm:"not null;index"`
	TotalCO2           float64   `gorm:"column:total_co2;not null"`
	TotalSpend         float64   `gorm:"not null"`
	TxCount            int       `gorm:"not null"`
	EcoScorePercentile float64   `gorm:"not null"`
	Badge              string    `gorm:"type:varchar(32);not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the LeaderboardEntryModel.
func (LeaderboardEntryModel) TableName() string {
	return "leaderboard_entries"
}

// ToEntity converts a LeaderboardEntryModel to a domain LeaderboardEntry entity.
func (m *LeaderboardEntryModel) ToEntity() *entity.LeaderboardEntry {
	return &entity.LeaderboardEntry{
		UserID:             m.UserID,
		DisplayName:        m.DisplayName,
		EcoPoints:          m.EcoPoints,
		TotalCO2:           m.TotalCO2,
		TotalSpend:         m.TotalSpend,
		TxCount:            m.TxCount,
		EcoScorePercentile: m.EcoScorePercentile,
		Badge:              entity.Badge(m.Badge),
		UpdatedAt:          m.UpdatedAt,
	}
}

// LeaderboardEntryFromEntity creates a LeaderboardEntryModel from a domain LeaderboardEntry entity.
func LeaderboardEntryFromEntity(e *entity.LeaderboardEntry) *LeaderboardEntryModel {
	return &LeaderboardEntryModel{
		UserID:             e.UserID,
		DisplayName:        e.DisplayName,
		EcoPoints:          e.EcoPoints,
		TotalCO2:           e.TotalCO2,
		TotalSpend:         e.TotalSpend,
		TxCount:            e.TxCount,
		EcoScorePercentile: e.EcoScorePercentile,
		Badge:              string(e.Badge),
		UpdatedAt:          e.UpdatedAt,
	}
}
