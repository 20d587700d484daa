package distributor

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jhonny97or/Skus-Diarios/internal/model"
)

func sum(alloc [7]int) int {
	total := 0
	for _, q := range alloc {
		total += q
	}
	return total
}

func TestApportionConservation(t *testing.T) {
	profiles := map[string]model.WeightProfile{
		"default":       model.DefaultWeightProfile(),
		"uniform":       {1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7, 1.0 / 7},
		"undersum":      {0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05},
		"oversum":       {1, 1, 1, 1, 1, 1, 1},
		"single_day":    {0, 0, 0, 0, 0, 0, 1},
		"all_zero":      {},
		"skewed":        {0.01, 0.02, 0.03, 0.04, 0.2, 0.3, 0.4},
		"tiny_weights":  {0.001, 0.001, 0.001, 0.001, 0.001, 0.001, 0.001},
		"weekend_heavy": {0.05, 0.05, 0.05, 0.05, 0.1, 0.35, 0.35},
	}
	quantities := []int{0, 1, 2, 3, 7, 10, 13, 99, 100, 1000, 9999}

	for name, profile := range profiles {
		for _, qty := range quantities {
			alloc, err := Apportion(qty, profile)
			if err != nil {
				t.Fatalf("%s qty=%d: unexpected error: %v", name, qty, err)
			}
			if got := sum(alloc); got != qty {
				t.Fatalf("%s qty=%d: allocation sums to %d, want %d (alloc=%v)", name, qty, got, qty, alloc)
			}
			for d, q := range alloc {
				if q < 0 {
					t.Fatalf("%s qty=%d: negative allocation %d at slot %d", name, qty, q, d)
				}
			}
		}
	}
}

func TestApportionTieBreakFallsToLowerSlot(t *testing.T) {
	profile := model.WeightProfile{0: 0.5, 1: 0.5}

	alloc, err := Apportion(3, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [7]int{0: 2, 1: 1}
	if alloc != want {
		t.Fatalf("alloc=%v, want %v", alloc, want)
	}
}

func TestApportionDefaultProfile(t *testing.T) {
	alloc, err := Apportion(10, model.DefaultWeightProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sunday takes its full 30% share; the leftover unit lands on Friday,
	// the first slot with the largest fractional remainder.
	want := [7]int{1, 1, 1, 1, 2, 1, 3}
	if alloc != want {
		t.Fatalf("alloc=%v, want %v", alloc, want)
	}
	if alloc[model.Sunday] != 3 {
		t.Fatalf("Sunday allocation=%d, want 3", alloc[model.Sunday])
	}
}

func TestApportionZeroQuantity(t *testing.T) {
	alloc, err := Apportion(0, model.DefaultWeightProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc != ([7]int{}) {
		t.Fatalf("alloc=%v, want all zeros", alloc)
	}
}

func TestApportionNegativeQuantity(t *testing.T) {
	_, err := Apportion(-1, model.DefaultWeightProfile())
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err=%v, want ErrInvalidQuantity", err)
	}
}

func TestApportionNegativeWeight(t *testing.T) {
	profile := model.WeightProfile{0: -0.1, 1: 1.1}
	if _, err := Apportion(5, profile); err == nil {
		t.Fatal("expected error for negative weight, got nil")
	}
}

func TestApportionOversubscribedProfileClampsAtZero(t *testing.T) {
	profile := model.WeightProfile{1, 1, 1, 1, 1, 1, 1}
	alloc, err := Apportion(10, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sum(alloc); got != 10 {
		t.Fatalf("allocation sums to %d, want 10 (alloc=%v)", got, alloc)
	}
	for d, q := range alloc {
		if q < 0 {
			t.Fatalf("slot %d went negative: %v", d, alloc)
		}
	}
}

func TestApportionAllZeroWeightsRoundRobins(t *testing.T) {
	alloc, err := Apportion(5, model.WeightProfile{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [7]int{1, 1, 1, 1, 1, 0, 0}
	if alloc != want {
		t.Fatalf("alloc=%v, want %v", alloc, want)
	}
}

func testRow(qty int) model.WeeklyQuantityRow {
	return model.WeeklyQuantityRow{
		Quantity:  qty,
		WeekStart: time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC),
		Fields: map[string]string{
			model.FieldReference:   "SAP-1001",
			model.FieldCatalog:     "CAT-55",
			model.FieldBarcode:     "7501031311309",
			model.FieldCategory:    "FRAGANCIAS",
			model.FieldDescription: "Perfume 100ml",
		},
	}
}

func TestDistributeEmitsOnlyPositiveDays(t *testing.T) {
	records, err := Distribute(testRow(10), model.DefaultWeightProfile(), decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 7 {
		t.Fatalf("got %d records, want 7", len(records))
	}
	total := 0
	for _, r := range records {
		if r.Quantity <= 0 {
			t.Fatalf("record with non-positive quantity: %+v", r)
		}
		total += r.Quantity
	}
	if total != 10 {
		t.Fatalf("record quantities sum to %d, want 10", total)
	}

	if got, want := records[0].Day, "09/22/2025"; got != want {
		t.Fatalf("first record day=%q, want %q", got, want)
	}
	if got, want := records[len(records)-1].Day, "09/28/2025"; got != want {
		t.Fatalf("last record day=%q, want %q", got, want)
	}
	if got, want := records[0].Reference, "SAP-1001"; got != want {
		t.Fatalf("reference=%q, want %q", got, want)
	}
}

func TestDistributeOmitsZeroDays(t *testing.T) {
	profile := model.WeightProfile{0: 1} // everything lands on the week start
	records, err := Distribute(testRow(3), profile, decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got, want := records[0].Quantity, 3; got != want {
		t.Fatalf("quantity=%d, want %d", got, want)
	}
}

func TestDistributeValueFormatting(t *testing.T) {
	profile := model.WeightProfile{0: 1}
	records, err := Distribute(testRow(3), profile, decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := records[0].Value, "$36.00"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestDistributeZeroQuantityYieldsNoRecords(t *testing.T) {
	records, err := Distribute(testRow(0), model.DefaultWeightProfile(), decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}

func TestDistributeMissingFieldsDefaultEmpty(t *testing.T) {
	row := model.WeeklyQuantityRow{
		Quantity:  4,
		WeekStart: time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC),
		Fields:    map[string]string{model.FieldReference: "SAP-1001"},
	}
	records, err := Distribute(row, model.DefaultWeightProfile(), decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected records")
	}
	if records[0].Category != "" || records[0].Description != "" {
		t.Fatalf("missing fields should be empty, got %+v", records[0])
	}
}

func TestDistributeDeterminism(t *testing.T) {
	first, err := Distribute(testRow(37), model.DefaultWeightProfile(), decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := Distribute(testRow(37), model.DefaultWeightProfile(), decimal.NewFromInt(12))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst=%v\nagain=%v", i, first, again)
		}
	}
}
