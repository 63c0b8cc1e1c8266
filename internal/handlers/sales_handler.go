package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/httpresp"
	"github.com/ridgelinemotors/moto-reservations/internal/timezone"
	ucBooking "github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

type SalesHandler struct {
	flow     *ucBooking.ReservationFlow
	precheck *ucBooking.PrecheckVehicle
}

func NewSalesHandler(flow *ucBooking.ReservationFlow, precheck *ucBooking.PrecheckVehicle) *SalesHandler {
	return &SalesHandler{flow: flow, precheck: precheck}
}

// PrecheckVehicle lets the storefront verify a listing is still open
// before sending the customer into the flow.
func (h *SalesHandler) PrecheckVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return
	}

	vehicle, err := h.precheck.Execute(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, vehicle)
}

// --------- Requests ---------

type StartDraftRequest struct {
	VehicleID   uint `json:"vehicle_id" binding:"required"`
	DepositFlow bool `json:"deposit_flow"`
}

type DetailsRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`

	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostCode     string `json:"post_code"`
	Country      string `json:"country"`

	DriversLicenseNumber string `json:"drivers_license_number"`
	DriversLicenseExpiry string `json:"drivers_license_expiry"` // "2006-01-02"

	AppointmentDate string `json:"appointment_date"` // "2006-01-02", empty for none
	AppointmentTime string `json:"appointment_time"` // "15:04"
	RequestViewing  bool   `json:"request_viewing"`
	CustomerNotes   string `json:"customer_notes"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

// --------- Handlers ---------

func (h *SalesHandler) StartDraft(c *gin.Context) {
	var req StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	draft, err := h.flow.StartDraft(c.Request.Context(), ucBooking.StartDraftInput{
		VehicleID:   req.VehicleID,
		DepositFlow: req.DepositFlow,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, draft)
}

func (h *SalesHandler) UpdateDetails(c *gin.Context) {
	var req DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := ucBooking.DetailsInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		AddressLine1:         req.AddressLine1,
		AddressLine2:         req.AddressLine2,
		City:                 req.City,
		State:                req.State,
		PostCode:             req.PostCode,
		Country:              req.Country,
		DriversLicenseNumber: req.DriversLicenseNumber,
		AppointmentTime:      req.AppointmentTime,
		RequestViewing:       req.RequestViewing,
		CustomerNotes:        req.CustomerNotes,
		TermsAccepted:        req.TermsAccepted,
	}

	if req.AppointmentDate != "" {
		day, err := timezone.ParseDate(req.AppointmentDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_appointment_date", "appointment_date must be YYYY-MM-DD")
			return
		}
		in.AppointmentDate = &day
	}
	if req.DriversLicenseExpiry != "" {
		exp, err := timezone.ParseDate(req.DriversLicenseExpiry)
		if err != nil {
			httperr.BadRequest(c, "invalid_license_expiry", "drivers_license_expiry must be YYYY-MM-DD")
			return
		}
		in.DriversLicenseExpiry = &exp
	}

	draft, violations, err := h.flow.UpdateDetails(c.Request.Context(), c.Param("token"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(violations) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error_code": "appointment_not_available",
			"violations": violations,
		})
		return
	}

	httpresp.OK(c, draft)
}

func (h *SalesHandler) SetupPayment(c *gin.Context) {
	intent, draft, err := h.flow.SetupPayment(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
		"amount":            draft.AmountPayable,
		"currency":          draft.Currency,
	})
}

func (h *SalesHandler) SubmitEnquiry(c *gin.Context) {
	booking, err := h.flow.SubmitEnquiry(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *SalesHandler) GetDraft(c *gin.Context) {
	draft, err := h.flow.DraftByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, draft)
}

// Confirmation is polled by the card form after the provider reports
// success; 409 booking_not_ready means the webhook has not landed yet.
func (h *SalesHandler) Confirmation(c *gin.Context) {
	intentID := c.Query("payment_intent_id")
	if intentID == "" {
		httperr.BadRequest(c, "missing_payment_intent_id", "payment_intent_id query parameter is required")
		return
	}

	booking, err := h.flow.ConfirmationByIntent(c.Request.Context(), intentID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, booking)
}
