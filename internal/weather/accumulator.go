package weather

// RangeAccumulator tracks the min and max of a stream of integers.
// The zero value is empty; Empty reports whether any sample was added.
type RangeAccumulator struct {
	min, max int
	count    int
}

// Add records one sample.
func (r *RangeAccumulator) Add(v int) {
	if r.count == 0 || v < r.min {
		r.min = v
	}
	if r.count == 0 || v > r.max {
		r.max = v
	}
	r.count++
}

func (r RangeAccumulator) Empty() bool { return r.count == 0 }

func (r RangeAccumulator) Count() int { return r.count }

// Bounds returns min and max; ok is false when no sample was added.
func (r RangeAccumulator) Bounds() (min, max int, ok bool) {
	if r.count == 0 {
		return 0, 0, false
	}
	return r.min, r.max, true
}
