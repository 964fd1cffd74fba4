// Package scale provides linear range mapping used for sensor and display
// value conversion (raw readings to screen units, percentages, etc).
package scale

import "errors"

// ErrEmptyRange is returned when the input interval has zero width, which
// would otherwise divide by zero.
var ErrEmptyRange = errors.New("scale: input range is empty")

// MapInt rescales input from [inMin, inMax] to [outMin, outMax] using
// integer arithmetic. Fractional precision is discarded (truncation toward
// zero after the multiply-divide, as in fixed-point embedded scaling).
func MapInt(input, inMin, inMax, outMin, outMax int) (int, error) {
	inputRange := inMax - inMin
	if inputRange == 0 {
		return 0, ErrEmptyRange
	}
	outputRange := outMax - outMin
	return (input-inMin)*outputRange/inputRange + outMin, nil
}

// MapFloat rescales input from [inMin, inMax] to [outMin, outMax] preserving
// fractional precision.
func MapFloat(input, inMin, inMax, outMin, outMax float64) (float64, error) {
	inputRange := inMax - inMin
	if inputRange == 0 {
		return 0, ErrEmptyRange
	}
	refRange := outMax - outMin
	return (refRange*(input-inMin))/inputRange + outMin, nil
}
