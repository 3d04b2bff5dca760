package handlers

import (
	"errors"
	"net/http"

	"coop-budget/internal/analysis"
	"coop-budget/internal/api/models"
	"coop-budget/internal/exercise"

	"github.com/gin-gonic/gin"
)

// errNonFinite marks a result that overflowed to ±Inf or NaN. JSON has no
// encoding for those values.
var errNonFinite = errors.New("result is not a finite number")

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func respondAnalysisError(c *gin.Context, err error) {
	status, detail := analysisError(err)
	c.JSON(status, models.ErrorResponse{Error: detail})
}

// analysisError maps engine and boundary errors to a status and error code.
func analysisError(err error) (int, models.ErrorDetail) {
	status, code := http.StatusUnprocessableEntity, ""
	switch {
	case errors.Is(err, analysis.ErrInvalidElasticity):
		code = "INVALID_ELASTICITY"
	case errors.Is(err, analysis.ErrInvalidAnchor):
		code = "INVALID_ANCHOR"
	case errors.Is(err, analysis.ErrInvalidCost):
		code = "INVALID_COST"
	case errors.Is(err, errNonFinite):
		code = "NON_FINITE_RESULT"
	case errors.Is(err, exercise.ErrInvalidExercise):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	default:
		status, code = http.StatusInternalServerError, "ANALYSIS_ERROR"
	}
	return status, models.ErrorDetail{Code: code, Message: err.Error()}
}
