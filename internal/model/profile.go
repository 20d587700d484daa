package model

import "fmt"

// Weekday slots of a weight profile. Slot 0 is the day the week start date
// falls on; the labels follow the Monday-first convention of the source
// spreadsheets.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeightProfile assigns a non-negative fraction of a week's volume to each
// weekday slot. The weights are not required to sum to 1; conservation of the
// weekly quantity is guaranteed by the distributor regardless.
type WeightProfile [7]float64

// DefaultWeightProfile returns the stock profile: a Sunday-heavy week with a
// Friday/Saturday bump.
func DefaultWeightProfile() WeightProfile {
	return WeightProfile{
		Monday:    0.10,
		Tuesday:   0.10,
		Wednesday: 0.10,
		Thursday:  0.10,
		Friday:    0.15,
		Saturday:  0.15,
		Sunday:    0.30,
	}
}

// Validate rejects profiles containing negative weights.
func (p WeightProfile) Validate() error {
	for d, w := range p {
		if w < 0 {
			return fmt.Errorf("weight profile: negative weight %v at slot %d", w, d)
		}
	}
	return nil
}

// Sum returns the total weight across all slots.
func (p WeightProfile) Sum() float64 {
	total := 0.0
	for _, w := range p {
		total += w
	}
	return total
}
