package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/httpresp"
	"github.com/ridgelinemotors/moto-reservations/internal/timezone"
	ucBooking "github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

type AvailabilityHandler struct {
	availability *ucBooking.GetAvailability
}

func NewAvailabilityHandler(availability *ucBooking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Dates returns the bookable window and the blocked dates within it.
// ?deposit_flow=true caps the window by the deposit hold lifespan.
func (h *AvailabilityHandler) Dates(c *gin.Context) {
	isDepositFlow := c.Query("deposit_flow") == "true"

	window, err := h.availability.DateInfo(c.Request.Context(), isDepositFlow)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"earliest":           window.Earliest.Format("2006-01-02"),
		"latest":             window.Latest.Format("2006-01-02"),
		"blocked_dates":      window.BlockedDates,
		"has_available_date": window.HasAvailableDate,
	})
}

// Times returns the open "15:04" slots on ?date=YYYY-MM-DD.
func (h *AvailabilityHandler) Times(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		httperr.BadRequest(c, "missing_date", "date query parameter is required")
		return
	}

	day, err := timezone.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	times, err := h.availability.TimesForDate(c.Request.Context(), day)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, times)
}
