package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/insights/internal/application/usecase/preference"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/dto"
)

// PreferenceController handles UI preference endpoints.
type PreferenceController struct {
	getPreferenceUseCase *preference.GetPreferenceUseCase
	setPreferenceUseCase *preference.SetPreferenceUseCase
}

// NewPreferenceController creates a new preference controller instance.
func NewPreferenceController(
	getPreferenceUseCase *preference.GetPreferenceUseCase,
	setPreferenceUseCase *preference.SetPreferenceUseCase,
) *PreferenceController {
	return &PreferenceController{
		getPreferenceUseCase: getPreferenceUseCase,
		setPreferenceUseCase: setPreferenceUseCase,
	}
}

// Get handles GET /preferences/:key requests.
func (c *PreferenceController) Get(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.getPreferenceUseCase.Execute(ctx.Request.Context(), preference.GetPreferenceInput{
		Session: session,
		Key:     ctx.Param("key"),
	})
	if err != nil {
		c.handlePreferenceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreferenceResponse(output))
}

// Set handles PUT /preferences/:key requests.
func (c *PreferenceController) Set(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.SetPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.setPreferenceUseCase.Execute(ctx.Request.Context(), preference.SetPreferenceInput{
		Session: session,
		Key:     ctx.Param("key"),
		Value:   *req.Value,
	})
	if err != nil {
		c.handlePreferenceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSetPreferenceResponse(output))
}

// handlePreferenceError maps preference errors to HTTP responses.
func (c *PreferenceController) handlePreferenceError(ctx *gin.Context, err error) {
	var prefErr *domainerror.PreferenceError
	if errors.As(err, &prefErr) {
		ctx.JSON(c.getStatusCodeForPreferenceError(prefErr.Code), dto.ErrorResponse{
			Error: prefErr.Message,
			Code:  string(prefErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForPreferenceError maps preference error codes to HTTP status codes.
func (c *PreferenceController) getStatusCodeForPreferenceError(code domainerror.PreferenceErrorCode) int {
	switch code {
	case domainerror.ErrCodePreferenceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnknownPreferenceKey,
		domainerror.ErrCodePreferenceValueTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
