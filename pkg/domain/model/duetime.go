package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DueLayout is the only accepted due time format: 24h clock, host-local time,
// seconds implied zero.
const DueLayout = "2006-01-02 15:04"

// dueShape enforces exact field widths and the single-space separator before
// handing the string to the time package, which would otherwise tolerate some
// non-canonical inputs.
var dueShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

// ParseDue parses a "YYYY-MM-DD HH:mm" string into a host-local instant.
// Any deviation from the fixed shape, including invalid calendar dates,
// returns ErrInvalidDueFormat. Callers must not substitute a fallback instant.
func ParseDue(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if !dueShape.MatchString(s) {
		return time.Time{}, goerr.Wrap(ErrInvalidDueFormat, "malformed due time", goerr.V("input", raw))
	}

	t, err := time.ParseInLocation(DueLayout, s, time.Local)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidDueFormat, "invalid calendar date", goerr.V("input", raw))
	}

	// The time package normalizes out-of-range fields for some layouts
	// instead of rejecting them. Round-tripping catches those.
	if t.Format(DueLayout) != s {
		return time.Time{}, goerr.Wrap(ErrInvalidDueFormat, "non-canonical due time", goerr.V("input", raw))
	}

	return t, nil
}

// FormatDue renders an instant in the canonical "YYYY-MM-DD HH:mm" shape
// using host-local time fields. FormatDue(ParseDue(s)) == s for every valid s.
func FormatDue(t time.Time) string {
	return t.In(time.Local).Format(DueLayout)
}
