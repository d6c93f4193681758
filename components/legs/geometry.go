package legs

import (
	"math"
	"time"

	"github.com/adammck/quadruped/math3d"
)

const (
	numLegs = 4

	// The duration of each tick. Every generator writes to the servos and
	// then sleeps for this long, once per tick.
	TickInterval = 10 * time.Millisecond

	// The distance (on the Y axis) which a foot is lifted while stepping.
	StepHeight = 15.0

	// The range of movement speeds, in mm per tick. Going faster than the max
	// will damage the servos.
	SpeedMin     = 1
	SpeedMax     = 8
	DefaultSpeed = 5

	// The range of body heights (distance on the Y axis from the femur joint
	// to the feet), in mm.
	BodyHeightMin     = 60.0
	BodyHeightMax     = 110.0
	DefaultBodyHeight = 99.0

	// The maximum distance which each foot travels per tick when adjusting the
	// body pose, in mm.
	DefaultTickLength = 5.0

	// The number of extra ticks added to each kind of movement, so even a zero
	// distance move takes some time.
	directMargin = 2
	stepMargin   = 3
	linearMargin = 2
)

// Geometry is the physical dimensions of the robot, in mm. It doesn't change
// after construction.
type Geometry struct {

	// The length of each segment of a leg. The coxa is the offset between the
	// hip yaw and hip pitch joints.
	Coxa  float64
	Femur float64
	Tibia float64

	// The maximum distance from the hip pitch joint to the foot. Targets
	// further away are pulled in, because reaching that far puts too much
	// torque on the servos.
	MaxReach float64

	// Half of the distance between adjacent hips, along and across the body.
	HalfLength float64
	HalfWidth  float64
}

// DefaultGeometry returns the dimensions of the stock robot.
func DefaultGeometry() Geometry {
	return Geometry{
		Coxa:       23.0,
		Femur:      55.0,
		Tibia:      59.0,
		MaxReach:   100.0,
		HalfLength: 68.2,
		HalfWidth:  40.0,
	}
}

// Diagonal returns the distance from the center of the body to each hip.
func (g Geometry) Diagonal() float64 {
	return math.Hypot(g.HalfLength, g.HalfWidth)
}

// Angle returns the angle (in radians) between the long axis of the body and
// the line from its center to a hip.
func (g Geometry) Angle() float64 {
	return math.Atan(g.HalfWidth / g.HalfLength)
}

// DefaultCalibration returns the neutral foot position of each leg, in the
// leg's own coordinate space.
func DefaultCalibration() [numLegs]math3d.Vector3 {
	return [numLegs]math3d.Vector3{
		{X: 10, Y: 99, Z: 10},  // Front Left - 0
		{X: 10, Y: 99, Z: 10},  // Back Left  - 1
		{X: 10, Y: 99, Z: -10}, // Back Right - 2
		{X: 10, Y: 99, Z: -10}, // Front Right - 3
	}
}
