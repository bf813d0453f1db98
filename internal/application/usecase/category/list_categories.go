// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/ecoimpact/backend/internal/domain/entity"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/domain/valueobject"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	EnvLabel string // Optional filter: good, neutral or bad
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Thresholds valueobject.EmissionThresholds
	Categories []entity.CategoryInfo
}

// ListCategoriesUseCase lists the category emission table.
type ListCategoriesUseCase struct {
	table *valueobject.EmissionTable
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(table *valueobject.EmissionTable) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		table: table,
	}
}

// Execute performs the category listing, ordered by category id.
func (uc *ListCategoriesUseCase) Execute(_ context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories := uc.table.Categories()

	if input.EnvLabel != "" {
		label := entity.EnvLabel(input.EnvLabel)
		if !label.IsValid() {
			return nil, fmt.Errorf("unknown env label %q: %w", input.EnvLabel, domainerror.ErrValidation)
		}
		filtered := categories[:0]
		for _, c := range categories {
			if c.EnvLabel == label {
				filtered = append(filtered, c)
			}
		}
		categories = filtered
	}

	return &ListCategoriesOutput{
		Thresholds: uc.table.Thresholds(),
		Categories: categories,
	}, nil
}
