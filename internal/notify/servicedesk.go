package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// ServiceDesk pushes a confirmed booking to the external workshop desk.
// Best-effort: a false return is logged by callers, never raised.
type ServiceDesk interface {
	Notify(booking *models.SalesBooking) bool
}

type DeskClient struct {
	URL    string
	Token  string
	Logger *zap.Logger

	client *http.Client
}

func NewDeskClient(deskURL, token string, logger *zap.Logger) *DeskClient {
	return &DeskClient{
		URL:    deskURL,
		Token:  token,
		Logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *DeskClient) Notify(booking *models.SalesBooking) bool {
	if d.URL == "" || d.Token == "" {
		return false
	}

	profile := booking.SalesProfile
	vehicle := booking.Vehicle

	firstName := profile.Name
	lastName := ""
	if i := strings.Index(profile.Name, " "); i > 0 {
		firstName = profile.Name[:i]
		lastName = profile.Name[i+1:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- SALES BOOKING NOTIFICATION ---\n\n")
	fmt.Fprintf(&b, "Booking Reference: %s\n", booking.Reference)
	fmt.Fprintf(&b, "Booking Status: %s\n", booking.BookingStatus)
	fmt.Fprintf(&b, "Customer Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "Customer Email: %s\n", profile.Email)
	fmt.Fprintf(&b, "Customer Phone: %s\n", profile.Phone)
	fmt.Fprintf(&b, "\nVehicle: %d %s %s", vehicle.Year, vehicle.Make, vehicle.Model)
	if vehicle.VinNumber != "" {
		fmt.Fprintf(&b, " (VIN %s)", vehicle.VinNumber)
	}
	b.WriteString("\n")
	if booking.AppointmentDate != nil {
		fmt.Fprintf(&b, "\nAppointment Requested: %s", booking.AppointmentDate.Format("02/01/2006"))
		if booking.AppointmentTime != "" {
			fmt.Fprintf(&b, " at %s", booking.AppointmentTime)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nAmount Paid: %.2f %s\n", booking.AmountPaid, booking.Currency)

	form := url.Values{}
	form.Set("token", d.Token)
	form.Set("first_name", firstName)
	form.Set("last_name", lastName)
	form.Set("email", profile.Email)
	form.Set("phone", profile.Phone)
	form.Set("note", b.String())
	if booking.AppointmentDate != nil {
		hm := booking.AppointmentTime
		if hm == "" {
			hm = "09:00"
		}
		form.Set("drop_off_time", booking.AppointmentDate.Format("02/01/2006")+" "+hm)
	}

	resp, err := d.client.PostForm(d.URL, form)
	if err != nil {
		d.Logger.Warn("service desk push failed", zap.Error(err), zap.String("booking", booking.Reference))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		d.Logger.Warn("service desk push rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("booking", booking.Reference))
		return false
	}
	return true
}
