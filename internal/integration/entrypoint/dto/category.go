package dto

import "github.com/ecoimpact/backend/internal/domain/entity"

// CategoryResponse is one row of the category emission table.
type CategoryResponse struct {
	CategoryID   string  `json:"category_id"`
	Name         string  `json:"name"`
	CO2PerDollar float64 `json:"co2_per_dollar"`
	EnvLabel     string  `json:"env_label"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	GoodBelow  float64            `json:"good_below"`
	BadAbove   float64            `json:"bad_above"`
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a CategoryInfo to a CategoryResponse DTO.
func ToCategoryResponse(info entity.CategoryInfo) CategoryResponse {
	return CategoryResponse{
		CategoryID:   info.CategoryID,
		Name:         info.Name,
		CO2PerDollar: info.CO2PerDollar,
		EnvLabel:     string(info.EnvLabel),
	}
}
