package booking

import (
	"fmt"
	"time"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// Server-side re-validation of customer-echoed selections. The picker
// already filtered these, but the client is never trusted. Each function
// returns human-readable violations; an empty slice means valid.

func ValidateAppointmentDate(
	day time.Time,
	settings *models.InventorySettings,
	blocks []models.BlockedSalesDate,
	isDepositFlow bool,
	now time.Time,
) []string {

	if settings == nil {
		return nil
	}

	var violations []string

	window := AppointmentDateWindow(settings, blocks, isDepositFlow, now)

	// The window bounds live in the scheduling clock's location; a day
	// parsed elsewhere (UTC request dates) must be rebased before the
	// boundary comparisons or the advertised latest date fails them.
	day = dateOf(day.In(now.Location()))

	if day.Before(window.Earliest) {
		violations = append(violations, fmt.Sprintf(
			"Appointments must be booked at least %d hours in advance.", settings.MinAdvanceHours))
	}
	if day.After(window.Latest) {
		violations = append(violations, fmt.Sprintf(
			"Appointments cannot be booked more than %d days in advance.", settings.MaxAdvanceDays))
	}

	if !OpenWeekdays(settings.OpenDays)[day.Weekday()] {
		violations = append(violations, "Appointments are not available on the selected day of the week.")
	}

	for _, b := range blocks {
		if !day.Before(dateOf(b.StartDate.In(day.Location()))) && !day.After(dateOf(b.EndDate.In(day.Location()))) {
			violations = append(violations, "The selected date is unavailable.")
			break
		}
	}

	return violations
}

func ValidateAppointmentTime(
	day time.Time,
	hm string,
	settings *models.InventorySettings,
	takenTimes []string,
	now time.Time,
) []string {

	if settings == nil {
		return nil
	}

	var violations []string

	t, err := time.Parse("15:04", hm)
	if err != nil {
		return []string{"The appointment time must be in HH:MM format."}
	}

	candidate := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())

	start := parseHM(settings.AppointmentStartTime, candidate)
	end := parseHM(settings.AppointmentEndTime, candidate)
	if candidate.Before(start) || candidate.After(end) {
		violations = append(violations, fmt.Sprintf(
			"Appointments are only available between %s and %s.",
			settings.AppointmentStartTime, settings.AppointmentEndTime))
	}

	if candidate.Before(now.Add(time.Duration(settings.MinAdvanceHours) * time.Hour)) {
		violations = append(violations, fmt.Sprintf(
			"Appointments must be booked at least %d hours in advance.", settings.MinAdvanceHours))
	}

	spacing := time.Duration(settings.AppointmentSpacingMins) * time.Minute
	for _, taken := range takenTimes {
		booked := parseHM(taken, candidate)
		if !candidate.Before(booked.Add(-spacing)) && !candidate.After(booked.Add(spacing)) {
			violations = append(violations, "The selected time is no longer available.")
			break
		}
	}

	return violations
}
