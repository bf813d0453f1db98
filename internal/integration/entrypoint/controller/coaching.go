package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/application/usecase/coaching"
	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/middleware"
)

// CoachingController handles coaching suggestion endpoints.
type CoachingController struct {
	suggestionsUseCase *coaching.GetSuggestionsUseCase
	ackUseCase         *coaching.AcknowledgeUseCase
}

// NewCoachingController creates a new coaching controller instance.
func NewCoachingController(
	suggestionsUseCase *coaching.GetSuggestionsUseCase,
	ackUseCase *coaching.AcknowledgeUseCase,
) *CoachingController {
	return &CoachingController{
		suggestionsUseCase: suggestionsUseCase,
		ackUseCase:         ackUseCase,
	}
}

// Suggestions handles GET /coaching/suggestions requests.
func (c *CoachingController) Suggestions(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	weeks, err := queryInt(ctx, "weeks")
	if err != nil {
		respondError(ctx, domainerror.NewCoachingError(
			domainerror.ErrCodeInvalidWeeks,
			"weeks must be an integer",
			domainerror.ErrInvalidWeeks,
		))
		return
	}

	includeHistory := false
	if raw := ctx.Query("include_history"); raw != "" {
		includeHistory, err = strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "include_history must be true or false",
			})
			return
		}
	}

	output, err := c.suggestionsUseCase.Execute(ctx.Request.Context(), coaching.GetSuggestionsInput{
		UserID:         userID,
		Weeks:          weeks,
		IncludeHistory: includeHistory,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestionsResponse(output))
}

// Acknowledge handles POST /coaching/suggestions/ack requests.
// The token identity wins; the body user_id is only used by anonymous callers.
func (c *CoachingController) Acknowledge(ctx *gin.Context) {
	var req dto.AckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingAckFields),
		})
		return
	}

	userID := req.UserID
	if middleware.IsAuthenticated(ctx) {
		authUserID, _ := middleware.GetUserIDFromContext(ctx)
		if req.UserID != "" && req.UserID != authUserID {
			respondError(ctx, domainerror.NewCoachingError(
				domainerror.ErrCodeAckUserMismatch,
				"user_id does not match the authenticated user",
				domainerror.ErrAckUserMismatch,
			))
			return
		}
		userID = authUserID
	}

	output, err := c.ackUseCase.Execute(ctx.Request.Context(), coaching.AcknowledgeInput{
		UserID:       userID,
		SuggestionID: req.SuggestionID,
		Action:       req.Action,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAckResponse(output))
}
