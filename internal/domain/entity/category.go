// Package entity defines the core business entities for the domain layer.
package entity

// EnvLabel is the coarse environmental classification of a spend category.
type EnvLabel string

const (
	EnvLabelGood    EnvLabel = "good"
	EnvLabelNeutral EnvLabel = "neutral"
	EnvLabelBad     EnvLabel = "bad"
)

// IsValid checks if the label is one of the known values.
func (l EnvLabel) IsValid() bool {
	switch l {
	case EnvLabelGood, EnvLabelNeutral, EnvLabelBad:
		return true
	}
	return false
}

// OtherCategoryID is the fallback category for unknown or missing category ids.
const OtherCategoryID = "other"

// CategoryInfo is static reference data describing the carbon intensity of a category.
type CategoryInfo struct {
	CategoryID   string
	Name         string
	CO2PerDollar float64
	EnvLabel     EnvLabel
}
