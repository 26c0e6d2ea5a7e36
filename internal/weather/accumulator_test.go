package weather

import "testing"

func TestRangeAccumulatorEmpty(t *testing.T) {
	var acc RangeAccumulator
	if !acc.Empty() {
		t.Fatal("expected zero value to be empty")
	}
	if _, _, ok := acc.Bounds(); ok {
		t.Fatal("expected Bounds to report no samples")
	}
}

func TestRangeAccumulatorZeroIsASample(t *testing.T) {
	var acc RangeAccumulator
	acc.Add(0)

	lo, hi, ok := acc.Bounds()
	if !ok {
		t.Fatal("expected a sample of 0 to make the accumulator non-empty")
	}
	if lo != 0 || hi != 0 {
		t.Fatalf("expected bounds 0..0, got %d..%d", lo, hi)
	}
}

func TestRangeAccumulatorTracksMinMax(t *testing.T) {
	var acc RangeAccumulator
	for _, v := range []int{72, -4, 88, 15, 88} {
		acc.Add(v)
	}

	lo, hi, _ := acc.Bounds()
	if lo != -4 || hi != 88 {
		t.Fatalf("expected bounds -4..88, got %d..%d", lo, hi)
	}
	if acc.Count() != 5 {
		t.Fatalf("expected count 5, got %d", acc.Count())
	}
}
