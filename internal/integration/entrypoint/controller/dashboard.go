package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/application/usecase/dashboard"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles the dashboard endpoint.
type DashboardController struct {
	getUseCase *dashboard.GetDashboardUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getUseCase *dashboard.GetDashboardUseCase) *DashboardController {
	return &DashboardController{
		getUseCase: getUseCase,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	days, err := queryInt(ctx, "days")
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardInput{
		UserID: userID,
		Month:  ctx.Query("month"),
		Days:   days,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}
