package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
)

// respondServiceError maps service errors onto HTTP answers.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		utils.RespondFieldErrors(c, http.StatusUnprocessableEntity, "Please correct the highlighted fields", verr.Fields)
		return
	}
	utils.RespondError(c, statusForError(err), err)
}

func statusForError(err error) int {
	var apiErr *services.APIError
	var urlErr *url.Error
	switch {
	case errors.Is(err, services.ErrNotSignedIn),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountInactive):
		return http.StatusForbidden
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrActivationRejected):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoIdentity):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		// backend client errors pass through, its failures do not
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &urlErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
