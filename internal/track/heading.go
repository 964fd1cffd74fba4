package track

import "math"

// Heading derives the icon rotation angle in degrees from the previous and
// current pixel positions. The angle is measured with atan2 on the
// (previous - current) delta and shifted by 180 so that 0 points west,
// matching the rotation origin of the display's icon asset. The result is
// normalized into [0,360).
//
// Callers must invoke this only when the pixel actually moved; a stationary
// vehicle keeps its last heading.
func Heading(prevX, prevY, x, y int) int {
	rad := math.Atan2(float64(prevY-y), float64(prevX-x))
	deg := rad*(180.0/math.Pi) + 180.0

	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return int(deg)
}
