package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecoimpact/backend/internal/application/usecase/transaction"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase *transaction.ListTransactionsUseCase
	topUseCase  *transaction.GetTopTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	topUseCase *transaction.GetTopTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase: listUseCase,
		topUseCase:  topUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	days, err := queryInt(ctx, "days")
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		Month:  ctx.Query("month"),
		Days:   days,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Top handles GET /transactions/top requests.
func (c *TransactionController) Top(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	days, err := queryInt(ctx, "days")
	if err != nil {
		respondError(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.topUseCase.Execute(ctx.Request.Context(), transaction.GetTopTransactionsInput{
		UserID: userID,
		Month:  ctx.Query("month"),
		Days:   days,
		Limit:  limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTopTransactionsResponse(output))
}
