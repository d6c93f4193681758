package legs

import (
	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/utils"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "legs",
})

// Legs is the motion controller. It owns the pose, and provides the commands
// which the rest of the robot uses to move. None of the methods are safe to
// call concurrently; they all block until the movement is finished.
type Legs struct {
	Geometry Geometry
	Pose     *Pose

	gen      *Generator
	out      *Output
	speed    int
	height   float64
	standing bool
}

// New creates a controller with the default geometry and calibration, which
// writes to the given driver and sleeps on the given clock.
func New(driver Actuator, clock Sleeper) *Legs {
	return NewWithGeometry(DefaultGeometry(), DefaultCalibration(), driver, clock)
}

func NewWithGeometry(g Geometry, calibration [numLegs]math3d.Vector3, driver Actuator, clock Sleeper) *Legs {
	out := NewOutput(driver)
	return &Legs{
		Geometry: g,
		Pose:     NewPose(g, calibration),
		gen:      NewGenerator(g, out, clock),
		out:      out,
		speed:    DefaultSpeed,
		height:   DefaultBodyHeight,
	}
}

// SetSymmetricLift chooses the lift profile of direct moves. See gait.Triangle.
func (l *Legs) SetSymmetricLift(b bool) {
	l.gen.SymmetricLift = b
}

// SetOffsets replaces the servo offsets of every leg. They're applied from the
// next tick onwards.
func (l *Legs) SetOffsets(offsets [numLegs]Angles) {
	for i := range l.Pose.Legs {
		l.Pose.Legs[i].Offset = offsets[i]
	}
}

// Recalibrate replaces the calibration points. The feet don't move until the
// next command.
func (l *Legs) Recalibrate(points [numLegs]math3d.Vector3) {
	for i := range l.Pose.Legs {
		l.Pose.Legs[i].Calibration = points[i]
	}
}

// Speed returns the speed used by direct moves.
func (l *Legs) Speed() int {
	return l.speed
}

// SetMoveSpeed sets the speed used by direct moves, and returns the speed
// which was actually set after constraining it.
func (l *Legs) SetMoveSpeed(spd int) int {
	l.speed = utils.ConstrainInt(spd, SpeedMin, SpeedMax)
	return l.speed
}

// Height returns the most recently requested body height.
func (l *Legs) Height() float64 {
	return l.height
}

// Standing returns true once the robot has stood up.
func (l *Legs) Standing() bool {
	return l.standing
}

// StandUp assumes that the feet are at their calibration points, and moves
// them there. This is only useful at boot, to get the servos into a known
// state.
func (l *Legs) StandUp() int {
	log.Infof("standing up")

	cal := l.Pose.Calibration()
	l.Pose.commit(cal)
	ticks := l.gen.Direct(l.Pose, cal, cal, l.speed)
	l.standing = true

	return ticks
}

// ResumeStanding returns the body to the default height, unless it's already
// standing.
func (l *Legs) ResumeStanding() {
	if l.standing {
		return
	}

	l.SetBodyHeight(DefaultBodyHeight)
	l.standing = true
}

// Move takes a single step in any direction, optionally spinning at the same
// time. Returns the number of ticks in each half of the step.
func (l *Legs) Move(r Request) int {
	log.Infof("move: %s", r)

	origins, ends := l.Geometry.Compose(l.Pose.Calibration(), r)
	for i := range l.Pose.Legs {
		l.Pose.Legs[i].Origin = origins[i]
	}

	return l.gen.Step(l.Pose, l.Pose.Points(), ends, r.Speed)
}

// Tilt leans the body to the given orientation without moving its center.
func (l *Legs) Tilt(ea math3d.EulerAngles) int {
	log.Infof("tilt: %s", ea)

	end := l.Geometry.TiltPoints(l.Pose.Calibration(), ea)
	return l.gen.Linear(l.Pose, l.Pose.Points(), end, DefaultTickLength, true)
}

// SetBodyHeight raises or lowers the body to height h, which is constrained to
// [BodyHeightMin, BodyHeightMax].
func (l *Legs) SetBodyHeight(h float64) int {
	l.height = utils.Constrain(h, BodyHeightMin, BodyHeightMax)
	log.Infof("height: %0.2f", l.height)

	end := HeightPoints(l.Pose.Calibration(), l.height)
	return l.gen.Linear(l.Pose, l.Pose.Points(), end, DefaultTickLength, true)
}

// SetBeforeCalibrationHeight is like SetBodyHeight, but ignores the servo
// offsets. It doesn't change the height returned by Height.
func (l *Legs) SetBeforeCalibrationHeight(h float64) int {
	h = utils.Constrain(h, BodyHeightMin, BodyHeightMax)
	log.Infof("height (without offsets): %0.2f", h)

	end := HeightPoints(l.Pose.Calibration(), h)
	return l.gen.Linear(l.Pose, l.Pose.Points(), end, DefaultTickLength, false)
}

// ReturnToCalibration moves every foot back to its calibration point in a
// straight line.
func (l *Legs) ReturnToCalibration() int {
	log.Infof("returning to calibration points")
	return l.MoveAll(l.Pose.Calibration(), true)
}

// MoveAll moves every foot to the given points in a straight line.
func (l *Legs) MoveAll(end [numLegs]math3d.Vector3, withOffset bool) int {
	return l.gen.Linear(l.Pose, l.Pose.Points(), end, DefaultTickLength, withOffset)
}

// MoveLeg moves a single foot to the given point in a straight line.
func (l *Legs) MoveLeg(n int, end math3d.Vector3, withOffset bool) int {
	if n < 0 || n >= numLegs {
		log.Warnf("no such leg: %d", n)
		return 0
	}

	return l.gen.LinearLeg(l.Pose, n, l.Pose.Legs[n].Last, end, withOffset)
}

// InstallationPosition moves every servo to its center, ignoring the offsets.
// This is the position which the servos should be in when attaching the legs.
// The pose isn't changed, since it doesn't correspond to any foot position.
func (l *Legs) InstallationPosition() {
	log.Infof("moving servos to installation position")

	l.out.Sync(func() {
		for ch := 0; ch < NumChannels; ch++ {
			l.out.Raw(ch, 90)
		}
	})
}

// BeforeCalibrationPosition moves every foot to its calibration point at once,
// ignoring the offsets. After this, any difference between the actual and
// calibration positions is what the offsets should correct.
func (l *Legs) BeforeCalibrationPosition() {
	log.Infof("moving to calibration points (without offsets)")

	l.out.Sync(func() {
		for i, leg := range l.Pose.Legs {
			a := l.Geometry.Solve(leg.Calibration)
			l.Pose.set(i, leg.Calibration, a)
			l.out.Write(i, a, Angles{})
		}
	})
}
