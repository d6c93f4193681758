package legs

import (
	"math"

	"github.com/adammck/quadruped/math3d"
)

// tiltSigns is the direction which each foot moves on the Y axis for a
// positive pitch and bank.
var tiltSigns = [numLegs][2]float64{
	{+1, +1}, // Front Left
	{-1, +1}, // Back Left
	{-1, -1}, // Back Right
	{+1, -1}, // Front Right
}

// TiltPoints returns the foot positions which tilt the body to the given
// orientation without moving its center. Pitch tilts along the length of the
// body, bank across it, and heading twists it on the spot.
func (g Geometry) TiltPoints(calibration [numLegs]math3d.Vector3, ea math3d.EulerAngles) [numLegs]math3d.Vector3 {
	rot := g.spin(ea.Heading)
	l := g.HalfLength * math.Sin(ea.Pitch)
	w := g.HalfWidth * math.Sin(ea.Bank)

	var v [numLegs]math3d.Vector3
	for i, cal := range calibration {
		v[i] = math3d.Vector3{
			X: cal.X - rot[i].X,
			Y: cal.Y + tiltSigns[i][0]*l + tiltSigns[i][1]*w,
			Z: cal.Z - rot[i].Z,
		}
	}

	return v
}

// HeightPoints returns the calibration points with the feet at height h.
func HeightPoints(calibration [numLegs]math3d.Vector3, h float64) [numLegs]math3d.Vector3 {
	v := calibration
	for i := range v {
		v[i].Y = h
	}

	return v
}
