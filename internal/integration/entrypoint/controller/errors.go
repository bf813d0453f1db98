// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerror "github.com/ecoimpact/backend/internal/domain/error"
	"github.com/ecoimpact/backend/internal/integration/entrypoint/dto"
)

// respondError writes the error response for err. Coded domain errors keep
// their code; anything else is mapped by failure kind.
func respondError(ctx *gin.Context, err error) {
	status, code, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func classifyError(err error) (int, string, string) {
	var (
		scoringErr     *domainerror.ScoringError
		transactionErr *domainerror.TransactionError
		coachingErr    *domainerror.CoachingError
		leaderboardErr *domainerror.LeaderboardError
		goalErr        *domainerror.GoalError
		authErr        *domainerror.AuthError
	)

	switch {
	case errors.As(err, &scoringErr):
		return getStatusCodeForScoringError(scoringErr.Code), string(scoringErr.Code), scoringErr.Message
	case errors.As(err, &transactionErr):
		return getStatusCodeForTransactionError(transactionErr.Code), string(transactionErr.Code), transactionErr.Message
	case errors.As(err, &coachingErr):
		return getStatusCodeForCoachingError(coachingErr.Code), string(coachingErr.Code), coachingErr.Message
	case errors.As(err, &leaderboardErr):
		return getStatusCodeForLeaderboardError(leaderboardErr.Code), string(leaderboardErr.Code), leaderboardErr.Message
	case errors.As(err, &goalErr):
		return getStatusCodeForGoalError(goalErr.Code), string(goalErr.Code), goalErr.Message
	case errors.As(err, &authErr):
		return getStatusCodeForAuthError(authErr.Code), string(authErr.Code), authErr.Message
	case domainerror.IsValidation(err):
		return http.StatusBadRequest, "", err.Error()
	case domainerror.IsNotFound(err):
		return http.StatusNotFound, "", err.Error()
	case domainerror.IsUpstreamUnavailable(err):
		return http.StatusServiceUnavailable, "", "A backing service is unavailable"
	default:
		return http.StatusInternalServerError, "", "An internal error occurred"
	}
}

// getStatusCodeForScoringError maps scoring error codes to HTTP status codes.
func getStatusCodeForScoringError(code domainerror.ScoringErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidDays,
		domainerror.ErrCodeConflictingPeriod,
		domainerror.ErrCodeInvalidMonths:
		return http.StatusBadRequest
	case domainerror.ErrCodeScoringUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidLimit:
		return http.StatusBadRequest
	case domainerror.ErrCodeTransactionStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForCoachingError maps coaching error codes to HTTP status codes.
func getStatusCodeForCoachingError(code domainerror.CoachingErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidAckAction,
		domainerror.ErrCodeMissingAckFields,
		domainerror.ErrCodeInvalidWeeks:
		return http.StatusBadRequest
	case domainerror.ErrCodeSuggestionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAckUserMismatch:
		return http.StatusForbidden
	case domainerror.ErrCodeAckStoreUnavailable, domainerror.ErrCodeCoachingUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForLeaderboardError maps leaderboard error codes to HTTP status codes.
func getStatusCodeForLeaderboardError(code domainerror.LeaderboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidLeaderboardLimit:
		return http.StatusBadRequest
	case domainerror.ErrCodeLeaderboardSourceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
// A stored goal that does not match the schema is a server fault.
func getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidGoalInput:
		return http.StatusBadRequest
	case domainerror.ErrCodeGoalStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// queryInt reads an optional integer query parameter. Missing means 0.
func queryInt(ctx *gin.Context, name string) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be an integer: %w", name, domainerror.ErrValidation)
	}
	return value, nil
}
