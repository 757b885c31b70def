package types

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all date parameters.
const DateLayout = "2006-01-02"

// DateRangeError reports a malformed or inverted date range passed to a data
// provider capability.
type DateRangeError struct {
	StartDate string
	EndDate   string
	Reason    string
}

// Error implements the error interface
func (e *DateRangeError) Error() string {
	return fmt.Sprintf("invalid date range %q..%q: %s", e.StartDate, e.EndDate, e.Reason)
}

// ValidateDateRange checks that both dates are well-formed YYYY-MM-DD strings
// and that startDate does not come after endDate. Both bounds are inclusive.
func ValidateDateRange(startDate, endDate string) error {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return &DateRangeError{StartDate: startDate, EndDate: endDate, Reason: "start date is not YYYY-MM-DD"}
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return &DateRangeError{StartDate: startDate, EndDate: endDate, Reason: "end date is not YYYY-MM-DD"}
	}
	if start.After(end) {
		return &DateRangeError{StartDate: startDate, EndDate: endDate, Reason: "start date is after end date"}
	}
	return nil
}
