package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
)

// Business code to HTTP status. Anything unlisted is a 400; a
// non-business error is a 500.
var businessStatus = map[string]int{
	"vehicle_not_found":       http.StatusNotFound,
	"draft_not_found":         http.StatusNotFound,
	"booking_not_found":       http.StatusNotFound,
	"payment_not_found":       http.StatusNotFound,
	"terms_not_found":         http.StatusNotFound,
	"no_active_terms":         http.StatusConflict,
	"settings_not_configured": http.StatusNotFound,

	"vehicle_not_available": http.StatusConflict,
	"already_converted":     http.StatusConflict,
	"already_confirmed":     http.StatusConflict,
	"already_declined":      http.StatusConflict,
	"booking_not_ready":     http.StatusConflict,
}

func writeError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		status, ok := businessStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		httperr.Write(c, status, be.Code, "")
		return
	}
	httperr.Internal(c, "internal_error", "unexpected error")
}
