package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/application/usecase/category"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
)

// CategoryController serves the category emission table.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{
		listUseCase: listUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		EnvLabel: ctx.Query("env_label"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	categories := make([]dto.CategoryResponse, 0, len(output.Categories))
	for _, info := range output.Categories {
		categories = append(categories, dto.ToCategoryResponse(info))
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{
		GoodBelow:  output.Thresholds.GoodBelow,
		BadAbove:   output.Thresholds.BadAbove,
		Categories: categories,
	})
}
