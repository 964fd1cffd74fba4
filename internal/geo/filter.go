package geo

// MinMovementM is the displacement below which a new fix is treated as GPS
// jitter and discarded.
const MinMovementM = 3.0

// Filter suppresses GPS noise with a simple deadband: a fix closer than
// MinMovementM to the last accepted position is ignored and the previous
// estimate is kept. This is deliberately not a Kalman filter; a stationary
// vehicle holds its position exactly, at the cost of quantizing slow
// movement to 3 m steps.
type Filter struct {
	last Position
}

// NewFilter returns a filter anchored at the given starting position.
func NewFilter(start Position) *Filter {
	return &Filter{last: start}
}

// Update feeds a fix into the filter and returns the current best position
// estimate. The reference position only advances on real movement.
func (f *Filter) Update(p Position) Position {
	if Distance(f.last, p) < MinMovementM {
		return f.last
	}
	f.last = p
	return f.last
}

// Position returns the current estimate without feeding a new fix.
func (f *Filter) Position() Position {
	return f.last
}
