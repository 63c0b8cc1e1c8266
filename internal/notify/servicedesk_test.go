package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

func deskBooking() *models.SalesBooking {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &models.SalesBooking{
		Reference:       "SBK-AB12CD34",
		BookingStatus:   "pending_confirmation",
		AmountPaid:      100,
		Currency:        "AUD",
		AppointmentDate: &day,
		AppointmentTime: "10:30",
		Vehicle: models.Vehicle{
			Make:      "Kawasaki",
			Model:     "Z650",
			Year:      2024,
			VinNumber: "JKAER650ABC123456",
		},
		SalesProfile: models.SalesProfile{
			Name:  "Jamie Doe",
			Email: "jamie@example.com",
			Phone: "0400000000",
		},
	}
}

func TestDeskClientPostsForm(t *testing.T) {
	var form map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewDeskClient(srv.URL, "desk-token", zap.NewNop())

	ok := client.Notify(deskBooking())
	require.True(t, ok)

	assert.Equal(t, "desk-token", form["token"][0])
	assert.Equal(t, "Jamie", form["first_name"][0])
	assert.Equal(t, "Doe", form["last_name"][0])
	assert.Equal(t, "jamie@example.com", form["email"][0])
	assert.Equal(t, "10/03/2026 10:30", form["drop_off_time"][0])
	assert.Contains(t, form["note"][0], "SBK-AB12CD34")
	assert.Contains(t, form["note"][0], "2024 Kawasaki Z650")
}

func TestDeskClientRejectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewDeskClient(srv.URL, "desk-token", zap.NewNop())

	assert.False(t, client.Notify(deskBooking()))
}

func TestDeskClientMissingConfig(t *testing.T) {
	client := NewDeskClient("", "", zap.NewNop())

	assert.False(t, client.Notify(deskBooking()))
}
