package legs

import (
	"fmt"
	"math"

	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/utils"
)

const (

	// How far the moving origin is shifted away from the direction of travel,
	// as a fraction of the step. This moves the center of gravity forwards.
	kxTranslate = 0.3
	kzTranslate = 0.15

	// How much the body leans into the direction of travel, as a fraction of
	// the step.
	kxTilt = 0.34
	kzTilt = 0.2
)

// Request is a single movement command.
type Request struct {

	// The direction to move in, in degrees. Zero is forwards, and positive is
	// counterclockwise.
	Direction float64

	// The length of a full stride, in mm. Each call to Move covers half of it.
	StepLength float64

	// The angle to turn on the spot, in degrees. Positive is counterclockwise.
	Spin float64

	// Speed in mm per tick. Constrained to [SpeedMin, SpeedMax].
	Speed int
}

func (r Request) String() string {
	return fmt.Sprintf("&Request{dir=%+.1f° step=%0.1f spin=%+.1f° speed=%d}", r.Direction, r.StepLength, r.Spin, r.Speed)
}

// leanSigns is the direction which each leg's origin moves on the Y axis, per
// unit of travel on the X and Z axes, to lean the body into the direction of
// travel.
var leanSigns = [numLegs][2]float64{
	{-1, -1}, // Front Left
	{+1, -1}, // Back Left
	{+1, +1}, // Back Right
	{-1, +1}, // Front Right
}

// spin returns the offset which each foot must move (on the X/Z axes) to
// rotate the body by c radians around its center. Diagonally opposite legs
// move in opposite directions.
func (g Geometry) spin(c float64) [numLegs]math3d.Vector3 {
	v := g.Diagonal()
	theta := g.Angle()
	l := g.HalfLength
	w := g.HalfWidth

	sinP := v * math.Sin(theta+c)
	sinM := v * math.Sin(theta-c)
	cosP := v * math.Cos(theta+c)
	cosM := v * math.Cos(theta-c)

	return [numLegs]math3d.Vector3{
		{X: cosP - l, Z: sinP - w},
		{X: -cosM + l, Z: sinM - w},
		{X: -cosP + l, Z: -sinP + w},
		{X: cosM - l, Z: -sinM + w},
	}
}

// Compose returns the moving origin and end point of each foot for a single
// step of the given request, starting from the calibration points.
func (g Geometry) Compose(calibration [numLegs]math3d.Vector3, r Request) (origins, ends [numLegs]math3d.Vector3) {
	step := r.StepLength / 2
	dx := step * math.Cos(utils.Rad(r.Direction))
	dz := step * math.Sin(utils.Rad(r.Direction))

	rot := g.spin(utils.Rad(r.Spin))

	for i, cal := range calibration {
		origins[i] = math3d.Vector3{
			X: cal.X - dx*kxTranslate,
			Y: cal.Y + leanSigns[i][0]*dx*kxTilt + leanSigns[i][1]*dz*kzTilt,
			Z: cal.Z - dz*kzTranslate,
		}

		ends[i] = math3d.Vector3{
			X: origins[i].X + dx + rot[i].X,
			Y: origins[i].Y,
			Z: origins[i].Z + dz + rot[i].Z,
		}
	}

	return origins, ends
}
