// Package timezone keeps timestamps in the configured APP_TIMEZONE.
//
// The location is loaded once when the package is imported. Booking dates are
// calendar days and are always handled in UTC through DayWindow, independent of
// the application timezone.
package timezone
