package adapter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"provide-client/internal/features/commerce/domain"
)

// ErrInvalidDate is returned when a date cannot be encoded or decoded.
var ErrInvalidDate = errors.New("invalid date")

const dateTimeLayout = "2006-01-02 15:04:05"

var jsonDateDigits = regexp.MustCompile(`[0-9]+`)

// DateStringToJSONDate encodes "YYYY-MM-DD" or "YYYY-MM-DD HH:MM:SS" as a
// wire date. The value is read as UTC even though it names a US date.
func DateStringToJSONDate(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/Date(%d)/", t.Unix()*1000), nil
}

// JSONDateToDateString decodes a wire date such as /Date(1390521600000-0800)/
// to "YYYY-MM-DD". Only the first run of digits counts; any offset is ignored.
func JSONDateToDateString(s string) (string, error) {
	match := jsonDateDigits.FindString(s)
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	ms, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	seconds := (ms + 500) / 1000
	return time.Unix(seconds, 0).UTC().Format(domain.DateLayout), nil
}

// parseDate reads a calendar date with an optional time of day as UTC.
func parseDate(s string) (time.Time, error) {
	layout := dateTimeLayout
	if len(s) == len(domain.DateLayout) {
		layout = domain.DateLayout
	}

	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// nextDay returns the calendar day after s.
func nextDay(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(domain.DateLayout), nil
}
