package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/application/usecase/leaderboard"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/middleware"
)

// LeaderboardController handles the leaderboard endpoint.
type LeaderboardController struct {
	getUseCase *leaderboard.GetLeaderboardUseCase
}

// NewLeaderboardController creates a new leaderboard controller instance.
func NewLeaderboardController(getUseCase *leaderboard.GetLeaderboardUseCase) *LeaderboardController {
	return &LeaderboardController{
		getUseCase: getUseCase,
	}
}

// Get handles GET /leaderboard requests.
func (c *LeaderboardController) Get(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), leaderboard.GetLeaderboardInput{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLeaderboardResponse(output))
}
