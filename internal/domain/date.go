package domain

import (
	"strings"
	"time"
)

// beginDateLayout matches the date token of BGN_DATE: month/day/year without
// zero padding, e.g. "4/18/1950".
const beginDateLayout = "1/2/2006"

// ParseBeginDate parses the first whitespace-delimited token of a BGN_DATE
// field as a calendar date. Trailing content (the always-zero time portion)
// is ignored. Returns the zero time when the token does not parse; a bad
// date is a missing value, never a pipeline failure.
func ParseBeginDate(value string) time.Time {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return time.Time{}
	}

	t, err := time.Parse(beginDateLayout, fields[0])
	if err != nil {
		return time.Time{}
	}
	return t
}
