package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/response"
	"github.com/propside/portal-go/internal/application"
)

// writeError maps service rejections onto HTTP statuses. Anything unknown is
// treated as a persistence failure.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrTemplateNotFound),
		errors.Is(err, application.ErrDocumentNotFound),
		errors.Is(err, application.ErrContractNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrAlreadySigned),
		errors.Is(err, application.ErrNotARecipient),
		errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, application.ErrSignatureInFlight):
		status = http.StatusConflict
	case errors.Is(err, application.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, application.ErrRender):
		status = http.StatusBadGateway
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}
