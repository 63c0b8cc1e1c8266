package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/httpresp"
	"github.com/ridgelinemotors/moto-reservations/internal/middleware"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
	ucAdmin "github.com/ridgelinemotors/moto-reservations/internal/usecase/admin"
	ucBooking "github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

type AdminHandler struct {
	manage  *ucAdmin.Manage
	confirm *ucBooking.ConfirmBooking
	reject  *ucBooking.RejectBooking
}

func NewAdminHandler(
	manage *ucAdmin.Manage,
	confirm *ucBooking.ConfirmBooking,
	reject *ucBooking.RejectBooking,
) *AdminHandler {
	return &AdminHandler{
		manage:  manage,
		confirm: confirm,
		reject:  reject,
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// ------------------------------------------------------
// Settings
// ------------------------------------------------------

func (h *AdminHandler) GetSettings(c *gin.Context) {
	s, err := h.manage.GetSettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req models.InventorySettings
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	s, err := h.manage.UpdateSettings(c.Request.Context(), middleware.OperatorID(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, s)
}

// ------------------------------------------------------
// Blocked dates
// ------------------------------------------------------

type BlockedDateRequest struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description"`
}

func (h *AdminHandler) ListBlockedDates(c *gin.Context) {
	blocks, err := h.manage.ListBlockedDates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, blocks)
}

func (h *AdminHandler) CreateBlockedDate(c *gin.Context) {
	var req BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "end_date must be YYYY-MM-DD")
		return
	}

	block := &models.BlockedSalesDate{
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	}
	if err := h.manage.CreateBlockedDate(c.Request.Context(), middleware.OperatorID(c), block); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

func (h *AdminHandler) DeleteBlockedDate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.manage.DeleteBlockedDate(c.Request.Context(), middleware.OperatorID(c), id); err != nil {
		if err == ucBooking.ErrNotFound {
			httperr.NotFound(c, "blocked_date_not_found", "")
			return
		}
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ------------------------------------------------------
// Terms
// ------------------------------------------------------

type TermsRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *AdminHandler) ListTerms(c *gin.Context) {
	terms, err := h.manage.ListTerms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, terms)
}

func (h *AdminHandler) CreateTerms(c *gin.Context) {
	var req TermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	t, err := h.manage.CreateTerms(c.Request.Context(), middleware.OperatorID(c), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *AdminHandler) ActivateTerms(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := h.manage.ActivateTerms(c.Request.Context(), middleware.OperatorID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, t)
}

// ------------------------------------------------------
// Vehicles
// ------------------------------------------------------

func (h *AdminHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.manage.ListVehicles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, vehicles)
}

func (h *AdminHandler) GetVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	v, err := h.manage.GetVehicle(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, v)
}

func (h *AdminHandler) CreateVehicle(c *gin.Context) {
	var v models.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	v.ID = 0

	if err := h.manage.SaveVehicle(c.Request.Context(), middleware.OperatorID(c), &v); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *AdminHandler) UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var v models.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	v.ID = id

	if err := h.manage.SaveVehicle(c.Request.Context(), middleware.OperatorID(c), &v); err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, v)
}

// ------------------------------------------------------
// Bookings
// ------------------------------------------------------

func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.manage.ListBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, bookings)
}

func (h *AdminHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.manage.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}

type BookingActionRequest struct {
	Message string `json:"message"`

	// Notify defaults to true when omitted.
	Notify *bool `json:"notify"`
}

func (r BookingActionRequest) skipNotification() bool {
	return r.Notify != nil && !*r.Notify
}

func (h *AdminHandler) ConfirmBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BookingActionRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.confirm.Execute(c.Request.Context(), ucBooking.ConfirmInput{
		BookingID:        id,
		OperatorID:       middleware.OperatorID(c),
		Message:          req.Message,
		SkipNotification: req.skipNotification(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *AdminHandler) RejectBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BookingActionRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.reject.Execute(c.Request.Context(), ucBooking.RejectInput{
		BookingID:        id,
		OperatorID:       middleware.OperatorID(c),
		Message:          req.Message,
		SkipNotification: req.skipNotification(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}
