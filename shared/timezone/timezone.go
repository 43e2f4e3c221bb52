package timezone

import (
	"booktable/config"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	dayLayout = "2006-01-02"
	day       = 24 * time.Hour
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().Str("timezone", name).Msg("Application timezone initialized")
}

// Location returns the application timezone, UTC when none was loaded.
func Location() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(Location())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(Location())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// DayWindow returns the UTC window [start, start+24h) of a YYYY-MM-DD date.
// An empty date means the current UTC day.
func DayWindow(date string) (time.Time, time.Time, error) {
	start := time.Now().UTC().Truncate(day)

	if date != "" {
		parsed, err := time.ParseInLocation(dayLayout, date, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err //nolint:wrapcheck
		}

		start = parsed
	}

	return start, start.Add(day), nil
}
