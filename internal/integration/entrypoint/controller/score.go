package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/application/usecase/scoring"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/middleware"
)

// ScoreController handles eco score endpoints.
type ScoreController struct {
	scoreUseCase   *scoring.GetScoreUseCase
	monthlyUseCase *scoring.GetMonthlyScoresUseCase
}

// NewScoreController creates a new score controller instance.
func NewScoreController(scoreUseCase *scoring.GetScoreUseCase, monthlyUseCase *scoring.GetMonthlyScoresUseCase) *ScoreController {
	return &ScoreController{
		scoreUseCase:   scoreUseCase,
		monthlyUseCase: monthlyUseCase,
	}
}

// Get handles GET /score requests.
func (c *ScoreController) Get(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	days, err := queryInt(ctx, "days")
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.scoreUseCase.Execute(ctx.Request.Context(), scoring.GetScoreInput{
		UserID: userID,
		Month:  ctx.Query("month"),
		Days:   days,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScoreResponse(output))
}

// Monthly handles GET /monthly-scores requests.
func (c *ScoreController) Monthly(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	months, err := queryInt(ctx, "months")
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), scoring.GetMonthlyScoresInput{
		UserID: userID,
		Months: months,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyScoresResponse(output))
}
