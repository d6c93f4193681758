package legs

import (
	"testing"

	fake_clock "github.com/adammck/quadruped/fake/clock"
	fake_servos "github.com/adammck/quadruped/fake/servos"
	"github.com/adammck/quadruped/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLegs() (*Legs, *fake_servos.FakeServos, *fake_clock.FakeClock) {
	s := fake_servos.New()
	c := &fake_clock.FakeClock{}
	return New(s, c), s, c
}

func TestNew(t *testing.T) {
	l, s, _ := newTestLegs()

	assert.Equal(t, DefaultSpeed, l.Speed())
	assert.Equal(t, DefaultBodyHeight, l.Height())
	assert.False(t, l.Standing())
	assert.Empty(t, s.Writes)

	assertPoints(t, DefaultCalibration(), l.Pose.Points())
	assertConsistent(t, l.Geometry, l.Pose)
}

func TestStandUp(t *testing.T) {
	l, s, c := newTestLegs()

	ticks := l.StandUp()
	assert.Equal(t, 2, ticks)
	assert.Equal(t, 6, c.Sleeps)
	assert.Len(t, s.Writes, 36)
	assert.True(t, l.Standing())

	// Every servo of every leg was written.
	for ch := 0; ch < NumChannels; ch++ {
		_, ok := s.Angle(ch)
		assert.Equal(t, ch != 3 && ch != 4 && ch != 11 && ch != 12, ok, "channel %d", ch)
	}

	assertPoints(t, DefaultCalibration(), l.Pose.Points())
}

func TestSetMoveSpeed(t *testing.T) {
	l, _, _ := newTestLegs()

	assert.Equal(t, 3, l.SetMoveSpeed(3))
	assert.Equal(t, 3, l.Speed())
	assert.Equal(t, 8, l.SetMoveSpeed(20))
	assert.Equal(t, 1, l.SetMoveSpeed(0))
}

func TestMoveForwards(t *testing.T) {
	l, _, c := newTestLegs()
	l.StandUp()
	c.Sleeps = 0

	ticks := l.Move(Request{Direction: 0, StepLength: 20, Speed: 5})
	assert.Equal(t, 2*(ticks+1), c.Sleeps)

	cal := DefaultCalibration()
	for i, leg := range l.Pose.Legs {
		assert.InDelta(t, cal[i].X-3, leg.Origin.X, 1e-9, leg.Name)
	}

	// The second pair swings last, so they finish ahead of their origin, and
	// the first pair behind it.
	for _, n := range []int{1, 3} {
		assert.InDelta(t, l.Pose.Legs[n].Origin.X+10, l.Pose.Legs[n].Last.X, 1e-9)
	}
	for _, n := range []int{0, 2} {
		assert.InDelta(t, l.Pose.Legs[n].Origin.X-10, l.Pose.Legs[n].Last.X, 1e-9)
	}

	assertConsistent(t, l.Geometry, l.Pose)
}

func TestMoveConstrainsSpeed(t *testing.T) {
	r := Request{Direction: 0, StepLength: 40, Speed: 20}

	l, _, _ := newTestLegs()
	l.StandUp()

	// The furthest foot moves sqrt(14² + 6.8²) = 15.56mm, at 8mm per tick.
	assert.Equal(t, 5, l.Move(r))

	l, _, _ = newTestLegs()
	l.StandUp()
	r.Speed = 1
	assert.Equal(t, 19, l.Move(r))
}

func TestMoveInPlace(t *testing.T) {
	l, _, _ := newTestLegs()
	l.StandUp()

	assert.Equal(t, 3, l.Move(Request{Speed: 5}))
	assertPoints(t, DefaultCalibration(), l.Pose.Points())
}

func TestSetBodyHeight(t *testing.T) {
	l, s, c := newTestLegs()
	l.StandUp()
	s.Reset()

	// Record the height of every foot after each tick.
	var heights [][numLegs]float64
	c.OnSleep = func() {
		var h [numLegs]float64
		for i, v := range l.Pose.Points() {
			h[i] = v.Y
		}
		heights = append(heights, h)
	}

	ticks := l.SetBodyHeight(90)
	assert.Equal(t, 4, ticks)
	assert.Equal(t, 90.0, l.Height())
	assert.Len(t, s.Writes, 5*12)

	// The feet move down together in a straight line.
	exp := []float64{99, 96.75, 94.5, 92.25, 90}
	require.Len(t, heights, len(exp))
	for n, y := range exp {
		for i := range heights[n] {
			assert.InDelta(t, y, heights[n][i], 1e-9, "tick %d, leg %d", n, i)
		}
	}

	c.OnSleep = nil

	for _, leg := range l.Pose.Legs {
		assert.Equal(t, 90.0, leg.Last.Y)
	}

	l.SetBodyHeight(500)
	assert.Equal(t, BodyHeightMax, l.Height())
	assert.Equal(t, BodyHeightMax, l.Pose.Legs[0].Last.Y)

	l.SetBodyHeight(-10)
	assert.Equal(t, BodyHeightMin, l.Height())
}

func TestSetBeforeCalibrationHeight(t *testing.T) {
	l, s, _ := newTestLegs()
	l.SetOffsets([numLegs]Angles{{5, 5, 5}, {}, {}, {}})

	l.SetBeforeCalibrationHeight(80)
	assert.Equal(t, DefaultBodyHeight, l.Height())

	v, _ := s.Angle(0)
	assert.InDelta(t, l.Pose.Legs[0].Angles.Coxa, v, 1e-9)
	assert.Equal(t, 80.0, l.Pose.Legs[0].Last.Y)
}

func TestTiltAndReturn(t *testing.T) {
	l, _, _ := newTestLegs()
	l.StandUp()

	l.Tilt(math3d.Euler(0, 10, 0))
	assert.Greater(t, l.Pose.Legs[0].Last.Y, 99.0)
	assert.Less(t, l.Pose.Legs[1].Last.Y, 99.0)
	assertConsistent(t, l.Geometry, l.Pose)

	l.ReturnToCalibration()
	assertPoints(t, DefaultCalibration(), l.Pose.Points())
}

func TestResumeStanding(t *testing.T) {
	l, s, _ := newTestLegs()

	l.ResumeStanding()
	assert.True(t, l.Standing())
	assert.NotEmpty(t, s.Writes)

	// Already standing, so nothing happens.
	s.Reset()
	l.ResumeStanding()
	assert.Empty(t, s.Writes)
}

func TestInstallationPosition(t *testing.T) {
	l, s, c := newTestLegs()
	l.SetOffsets([numLegs]Angles{{5, 5, 5}, {5, 5, 5}, {5, 5, 5}, {5, 5, 5}})
	before := l.Pose.Points()

	l.InstallationPosition()
	require.Len(t, s.Writes, NumChannels)
	assert.Equal(t, 1, s.Batches)
	assert.Equal(t, 0, c.Sleeps)

	for ch := 0; ch < NumChannels; ch++ {
		v, ok := s.Angle(ch)
		assert.True(t, ok)
		assert.Equal(t, 90.0, v, "channel %d", ch)
	}

	assert.Equal(t, before, l.Pose.Points())
}

func TestBeforeCalibrationPosition(t *testing.T) {
	l, s, _ := newTestLegs()
	l.SetOffsets([numLegs]Angles{{5, 5, 5}, {5, 5, 5}, {5, 5, 5}, {5, 5, 5}})
	l.Pose.Legs[2].Last = math3d.Vector3{X: 0, Y: 70, Z: 0}

	l.BeforeCalibrationPosition()
	assert.Len(t, s.Writes, 12)

	a := l.Geometry.Solve(DefaultCalibration()[2])
	v, _ := s.Angle(9)
	assert.InDelta(t, 180-a.Femur, v, 1e-9)

	assertPoints(t, DefaultCalibration(), l.Pose.Points())
	assertConsistent(t, l.Geometry, l.Pose)
}

func TestMoveLeg(t *testing.T) {
	l, s, _ := newTestLegs()

	end := math3d.Vector3{X: 20, Y: 80, Z: 10}
	assert.Equal(t, 6, l.MoveLeg(0, end, true))
	assert.Equal(t, end, l.Pose.Legs[0].Last)

	s.Reset()
	assert.Equal(t, 0, l.MoveLeg(4, end, true))
	assert.Equal(t, 0, l.MoveLeg(-1, end, true))
	assert.Empty(t, s.Writes)
}

func TestRecalibrate(t *testing.T) {
	l, _, _ := newTestLegs()

	points := DefaultCalibration()
	for i := range points {
		points[i].Y = 80
	}

	l.Recalibrate(points)
	assert.Equal(t, points, l.Pose.Calibration())

	// The feet only move on the next command.
	assert.Equal(t, 99.0, l.Pose.Legs[0].Last.Y)
	l.ReturnToCalibration()
	assertPoints(t, points, l.Pose.Points())
}

func TestSetOffsets(t *testing.T) {
	l, _, _ := newTestLegs()
	offsets := [numLegs]Angles{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}

	l.SetOffsets(offsets)
	assert.Equal(t, offsets, l.Pose.Offsets())
}
