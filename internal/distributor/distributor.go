// Package distributor apportions a weekly sales quantity into daily
// quantities using largest-remainder rounding, conserving the weekly total
// exactly for any non-negative weight profile.
package distributor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Jhonny97or/Skus-Diarios/internal/model"
)

// ErrInvalidQuantity marks a negative weekly quantity reaching the
// distributor. Callers filter these out; hitting this is malformed upstream
// data, not a recoverable condition.
var ErrInvalidQuantity = errors.New("invalid weekly quantity")

// Apportion splits qty across the seven weekday slots of the profile.
//
// Each slot first receives the floor of its raw share qty×weight. The
// remaining deficit (positive when the weights sum to at most 1, negative
// when they oversubscribe the week) is then settled one unit at a time over
// the slots ordered by descending fractional remainder, ties broken by slot
// index. Subtraction never drives a slot below zero. The returned allocation
// always sums to qty exactly.
func Apportion(qty int, profile model.WeightProfile) ([7]int, error) {
	var alloc [7]int

	if qty < 0 {
		return alloc, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if err := profile.Validate(); err != nil {
		return alloc, err
	}

	var raw [7]float64
	floorSum := 0
	for d := 0; d < 7; d++ {
		raw[d] = float64(qty) * profile[d]
		alloc[d] = int(math.Floor(raw[d]))
		floorSum += alloc[d]
	}

	deficit := qty - floorSum
	if deficit == 0 {
		return alloc, nil
	}

	order := remainderOrder(raw)

	for i := 0; deficit > 0; i = (i + 1) % 7 {
		alloc[order[i]]++
		deficit--
	}
	for i := 0; deficit < 0; i = (i + 1) % 7 {
		if alloc[order[i]] > 0 {
			alloc[order[i]]--
			deficit++
		}
	}

	return alloc, nil
}

// remainderOrder returns the slot indexes sorted by descending fractional
// remainder, exact ties resolved by the fixed weekday order.
func remainderOrder(raw [7]float64) [7]int {
	var order [7]int
	for d := range order {
		order[d] = d
	}
	frac := func(d int) float64 { return raw[d] - math.Floor(raw[d]) }
	sort.SliceStable(order[:], func(i, j int) bool {
		fi, fj := frac(order[i]), frac(order[j])
		if fi != fj {
			return fi > fj
		}
		return order[i] < order[j]
	})
	return order
}

// Distribute expands one (product, week) pair into daily records. Days whose
// allocation is zero are omitted; they carry no reporting value. Descriptive
// fields missing from the row come through as empty strings.
func Distribute(row model.WeeklyQuantityRow, profile model.WeightProfile, unitPrice decimal.Decimal) ([]model.DailyRecord, error) {
	alloc, err := Apportion(row.Quantity, profile)
	if err != nil {
		return nil, err
	}

	records := make([]model.DailyRecord, 0, 7)
	for d := 0; d < 7; d++ {
		q := alloc[d]
		if q == 0 {
			continue
		}
		date := row.WeekStart.AddDate(0, 0, d)
		value := unitPrice.Mul(decimal.NewFromInt(int64(q)))
		records = append(records, model.DailyRecord{
			Date:          date,
			Day:           date.Format(model.DayFormat),
			Reference:     row.Fields[model.FieldReference],
			CatalogNumber: row.Fields[model.FieldCatalog],
			Barcode:       row.Fields[model.FieldBarcode],
			Category:      row.Fields[model.FieldCategory],
			Description:   row.Fields[model.FieldDescription],
			Quantity:      q,
			Value:         "$" + value.StringFixed(2),
		})
	}

	return records, nil
}
