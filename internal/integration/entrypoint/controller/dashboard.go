// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/insights/internal/application/usecase/dashboard"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getMonthlyBreakdownUseCase *dashboard.GetMonthlyBreakdownUseCase
	getBudgetComparisonUseCase *dashboard.GetBudgetComparisonUseCase
	getTopRecurringUseCase     *dashboard.GetTopRecurringUseCase
	getGoalProgressUseCase     *dashboard.GetGoalProgressUseCase
	getOverviewUseCase         *dashboard.GetOverviewUseCase
	getTimeSeriesUseCase       *dashboard.GetTimeSeriesUseCase
	money                      *dto.MoneyFormatter
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getMonthlyBreakdownUseCase *dashboard.GetMonthlyBreakdownUseCase,
	getBudgetComparisonUseCase *dashboard.GetBudgetComparisonUseCase,
	getTopRecurringUseCase *dashboard.GetTopRecurringUseCase,
	getGoalProgressUseCase *dashboard.GetGoalProgressUseCase,
	getOverviewUseCase *dashboard.GetOverviewUseCase,
	getTimeSeriesUseCase *dashboard.GetTimeSeriesUseCase,
	money *dto.MoneyFormatter,
) *DashboardController {
	return &DashboardController{
		getMonthlyBreakdownUseCase: getMonthlyBreakdownUseCase,
		getBudgetComparisonUseCase: getBudgetComparisonUseCase,
		getTopRecurringUseCase:     getTopRecurringUseCase,
		getGoalProgressUseCase:     getGoalProgressUseCase,
		getOverviewUseCase:         getOverviewUseCase,
		getTimeSeriesUseCase:       getTimeSeriesUseCase,
		money:                      money,
	}
}

// GetMonthlyBreakdown handles GET /dashboard/monthly-breakdown requests.
func (c *DashboardController) GetMonthlyBreakdown(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	year, ok := c.parseYear(ctx)
	if !ok {
		return
	}

	output, err := c.getMonthlyBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetMonthlyBreakdownInput{
		Session: session,
		Kind:    entity.EntryKind(ctx.Query("kind")),
		Month:   ctx.Query("month"),
		Year:    year,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyBreakdownResponse(output, c.money))
}

// GetBudgetComparison handles GET /dashboard/budget-comparison requests.
func (c *DashboardController) GetBudgetComparison(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	year, ok := c.parseYear(ctx)
	if !ok {
		return
	}

	output, err := c.getBudgetComparisonUseCase.Execute(ctx.Request.Context(), dashboard.GetBudgetComparisonInput{
		Session: session,
		Month:   ctx.Query("month"),
		Year:    year,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetComparisonResponse(output, c.money))
}

// GetTopRecurring handles GET /dashboard/top-recurring requests.
func (c *DashboardController) GetTopRecurring(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: domainerror.ErrInvalidLimit.Error(),
				Code:  string(domainerror.ErrCodeInvalidLimit),
			})
			return
		}
		limit = parsed
	}

	output, err := c.getTopRecurringUseCase.Execute(ctx.Request.Context(), dashboard.GetTopRecurringInput{
		Session: session,
		Limit:   limit,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTopRecurringResponse(output, c.money))
}

// GetGoals handles GET /dashboard/goals requests.
func (c *DashboardController) GetGoals(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	kind := entity.GoalKind(ctx.Query("kind"))
	if kind != "" && kind != entity.GoalKindSavings && kind != entity.GoalKindRepayment {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "kind must be: savings or repayment",
			Code:  string(domainerror.ErrCodeInvalidEntryKind),
		})
		return
	}

	output, err := c.getGoalProgressUseCase.Execute(ctx.Request.Context(), dashboard.GetGoalProgressInput{
		Session: session,
		Kind:    kind,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalProgressResponse(output, c.money))
}

// GetOverview handles GET /dashboard/overview requests.
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	year, ok := c.parseYear(ctx)
	if !ok {
		return
	}

	output, err := c.getOverviewUseCase.Execute(ctx.Request.Context(), dashboard.GetOverviewInput{
		Session:     session,
		Granularity: ctx.Query("granularity"),
		Year:        year,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output, c.money))
}

// GetTimeSeries handles GET /dashboard/time-series requests.
func (c *DashboardController) GetTimeSeries(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}
	year, ok := c.parseYear(ctx)
	if !ok {
		return
	}

	output, err := c.getTimeSeriesUseCase.Execute(ctx.Request.Context(), dashboard.GetTimeSeriesInput{
		Session: session,
		Year:    year,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimeSeriesResponse(output, c.money))
}

// parseYear reads the optional year query parameter. Zero means the current year.
func (c *DashboardController) parseYear(ctx *gin.Context) (int, bool) {
	raw := ctx.Query("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: domainerror.ErrInvalidYear.Error(),
			Code:  string(domainerror.ErrCodeInvalidYear),
		})
		return 0, false
	}
	return year, true
}

// handleDashboardError maps dashboard errors to HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(c.getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Dashboard request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func (c *DashboardController) getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidMonthParam,
		domainerror.ErrCodeInvalidEntryKind,
		domainerror.ErrCodeInvalidLimit,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeInvalidYear:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requireSession reads the session set by the session middleware.
func requireSession(ctx *gin.Context) (*entity.Session, bool) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Session not found",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return nil, false
	}
	return session, true
}
