package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

// DefaultHorizonDays bounds the window when no settings row exists, so
// the flow degrades to "anything in the next three months" instead of
// failing.
const DefaultHorizonDays = 90

var weekdayNames = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// OpenWeekdays parses the comma-separated open-days setting. Unknown
// tokens are ignored.
func OpenWeekdays(csv string) map[time.Weekday]bool {
	open := make(map[time.Weekday]bool)
	for _, tok := range strings.Split(csv, ",") {
		if wd, ok := weekdayNames[strings.TrimSpace(tok)]; ok {
			open[wd] = true
		}
	}
	return open
}

// DateWindow is the inclusive bookable range plus the dates inside it
// that cannot be offered.
type DateWindow struct {
	Earliest         time.Time `json:"earliest"`
	Latest           time.Time `json:"latest"`
	BlockedDates     []string  `json:"blocked_dates"`
	HasAvailableDate bool      `json:"has_available_date"`
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseHM(hm string, day time.Time) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

// AppointmentDateWindow computes the bookable [earliest, latest] date
// range and the blocked dates within it.
//
// Earliest is now plus the minimum notice, truncated to a date; if the
// appointment window on that date already ends before the notice floor,
// no slot on it could legally be booked, so earliest rolls to the next
// day. Latest is today plus the maximum notice, additionally capped by
// the deposit hold lifespan on deposit-gated flows. An inverted range
// collapses to a single-date window rather than being emitted.
func AppointmentDateWindow(
	settings *models.InventorySettings,
	blocks []models.BlockedSalesDate,
	isDepositFlow bool,
	now time.Time,
) DateWindow {

	today := dateOf(now)

	if settings == nil {
		return DateWindow{
			Earliest:         today,
			Latest:           today.AddDate(0, 0, DefaultHorizonDays),
			BlockedDates:     []string{},
			HasAvailableDate: true,
		}
	}

	earliestAllowed := now.Add(time.Duration(settings.MinAdvanceHours) * time.Hour)
	earliest := dateOf(earliestAllowed)
	if parseHM(settings.AppointmentEndTime, earliest).Before(earliestAllowed) {
		earliest = earliest.AddDate(0, 0, 1)
	}

	latest := today.AddDate(0, 0, settings.MaxAdvanceDays)
	if isDepositFlow {
		depositExpiry := today.AddDate(0, 0, settings.DepositLifespanDays)
		if depositExpiry.Before(latest) {
			latest = depositExpiry
		}
	}

	if latest.Before(earliest) {
		latest = earliest
	}

	open := OpenWeekdays(settings.OpenDays)

	blockedSet := make(map[string]bool)
	for d := earliest; !d.After(latest); d = d.AddDate(0, 0, 1) {
		if !open[d.Weekday()] {
			blockedSet[d.Format("2006-01-02")] = true
			continue
		}
		for _, b := range blocks {
			if !d.Before(dateOf(b.StartDate.In(d.Location()))) && !d.After(dateOf(b.EndDate.In(d.Location()))) {
				blockedSet[d.Format("2006-01-02")] = true
				break
			}
		}
	}

	blocked := make([]string, 0, len(blockedSet))
	for d := range blockedSet {
		blocked = append(blocked, d)
	}
	sort.Strings(blocked)

	totalDays := int(latest.Sub(earliest).Hours()/24) + 1

	return DateWindow{
		Earliest:         earliest,
		Latest:           latest,
		BlockedDates:     blocked,
		HasAvailableDate: len(blocked) < totalDays,
	}
}

// AppointmentTimes enumerates the offerable slots on a date: candidates
// from the window start to the window end inclusive, stepped by the
// spacing, minus anything under the minimum-notice floor and anything
// within the spacing (inclusive) of a time already taken.
func AppointmentTimes(
	day time.Time,
	settings *models.InventorySettings,
	takenTimes []string,
	now time.Time,
) []string {

	if settings == nil {
		return []string{}
	}

	// Candidates must carry the scheduling clock's location, or the
	// minimum-notice comparison drifts by the day's UTC offset.
	day = dateOf(day.In(now.Location()))

	spacing := time.Duration(settings.AppointmentSpacingMins) * time.Minute
	earliestAllowed := now.Add(time.Duration(settings.MinAdvanceHours) * time.Hour)

	start := parseHM(settings.AppointmentStartTime, day)
	end := parseHM(settings.AppointmentEndTime, day)

	taken := make([]time.Time, 0, len(takenTimes))
	for _, hm := range takenTimes {
		taken = append(taken, parseHM(hm, day))
	}

	var slots []string
	for cur := start; !cur.After(end); cur = cur.Add(spacing) {
		if cur.Before(earliestAllowed) {
			continue
		}

		conflict := false
		for _, t := range taken {
			if !cur.Before(t.Add(-spacing)) && !cur.After(t.Add(spacing)) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		slots = append(slots, cur.Format("15:04"))
	}

	if slots == nil {
		return []string{}
	}
	return slots
}
