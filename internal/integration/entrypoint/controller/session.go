package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/insights/internal/application/usecase/session"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/dto"
)

// SessionController handles session endpoints.
type SessionController struct {
	issueGuestSessionUseCase *session.IssueGuestSessionUseCase
}

// NewSessionController creates a new session controller instance.
func NewSessionController(issueGuestSessionUseCase *session.IssueGuestSessionUseCase) *SessionController {
	return &SessionController{
		issueGuestSessionUseCase: issueGuestSessionUseCase,
	}
}

// CreateGuest handles POST /sessions/guest requests.
func (c *SessionController) CreateGuest(ctx *gin.Context) {
	output, err := c.issueGuestSessionUseCase.Execute(ctx.Request.Context())
	if err != nil {
		var sesErr *domainerror.SessionError
		if errors.As(err, &sesErr) {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: sesErr.Message,
				Code:  string(sesErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGuestSessionResponse(output))
}
