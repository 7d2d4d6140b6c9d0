package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ComputeAge returns the number of complete years between birthDate and now,
// clamped at zero. The birthday itself counts as a completed year.
func ComputeAge(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// indonesianMonths maps month numbers to their Indonesian names, as printed
// on the registration form.
var indonesianMonths = [...]string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatIndonesianDate renders a date as "2 Januari 2025"
func FormatIndonesianDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()], t.Year())
}

// FormatIndonesianTimestamp renders a full timestamp for the printed footer,
// e.g. "2 Januari 2025 14.05.09"
func FormatIndonesianTimestamp(t time.Time) string {
	return fmt.Sprintf("%s %02d.%02d.%02d", FormatIndonesianDate(t), t.Hour(), t.Minute(), t.Second())
}
