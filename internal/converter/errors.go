package converter

import "errors"

// User-facing validation failures, detected before any distribution work.
var (
	// ErrNoWeekColumns is returned when no header resolves to a week.
	ErrNoWeekColumns = errors.New("no week columns found")
	// ErrNoSalesData is returned when the file parses but holds no strictly
	// positive weekly quantity.
	ErrNoSalesData = errors.New("no valid sales data")
)
