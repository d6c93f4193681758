package legs

import (
	"math"
	"time"

	"github.com/adammck/quadruped/components/legs/gait"
	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/utils"
)

// Sleeper suspends the caller between ticks. clock.Clock satisfies it.
type Sleeper interface {
	Sleep(d time.Duration)
}

var allLegs = []int{0, 1, 2, 3}

// Generator moves the feet along trajectories, one tick at a time. It has no
// state of its own; the pose is passed in and updated in place.
type Generator struct {
	Geometry Geometry

	// Lower the feet gradually in the second half of a direct move, rather
	// than dropping them straight back to the line.
	SymmetricLift bool

	out   *Output
	clock Sleeper
}

func NewGenerator(g Geometry, out *Output, clock Sleeper) *Generator {
	return &Generator{
		Geometry: g,
		out:      out,
		clock:    clock,
	}
}

// maxDistance returns the longest distance which any foot must travel.
func maxDistance(start, end [numLegs]math3d.Vector3) float64 {
	d := 0.0
	for i := range start {
		d = math.Max(d, start[i].Distance(end[i]))
	}

	return d
}

// tick solves and writes the given legs at the given points, records them in
// the pose, and then sleeps for one tick.
func (g *Generator) tick(p *Pose, legs []int, track [numLegs]math3d.Vector3, withOffset bool) {
	g.out.Sync(func() {
		for _, n := range legs {
			a := g.Geometry.Solve(track[n])
			p.set(n, track[n], a)

			offset := Angles{}
			if withOffset {
				offset = p.Legs[n].Offset
			}

			g.out.Write(n, a, offset)
		}
	})

	g.clock.Sleep(TickInterval)
}

// Direct moves every foot from start to end without moving the body. The
// diagonal pairs move one after the other, each foot lifting as it goes.
// Returns the number of ticks in each half of the movement.
func (g *Generator) Direct(p *Pose, start, end [numLegs]math3d.Vector3, speed int) int {
	spd := utils.ConstrainInt(speed, SpeedMin, SpeedMax)
	ticks := gait.Ticks(maxDistance(start, end), float64(spd), directMargin)
	profile := gait.Triangle(ticks, StepHeight, g.SymmetricLift)
	log.Debugf("direct: ticks=%d, speed=%d", ticks, spd)

	var track [numLegs]math3d.Vector3
	for _, pair := range gait.Pairs {
		for t := 0; t <= profile.Length(); t++ {
			f := profile.Frame(t)
			for i := range track {
				track[i] = start[i].Lerp(end[i], f.XZ)
				track[i].Y += f.Y
			}

			g.tick(p, pair[:], track, true)
		}
	}

	p.commit(track)
	return ticks
}

// Step moves the body through one step of the walking gait. In each half of
// the step one diagonal pair swings towards its end point while the other
// pushes back, to the reflection of its end point about its moving origin.
// Returns the number of ticks in each half of the step.
func (g *Generator) Step(p *Pose, start, end [numLegs]math3d.Vector3, speed int) int {
	spd := utils.ConstrainInt(speed, SpeedMin, SpeedMax)
	ticks := gait.Ticks(maxDistance(start, end), float64(spd), stepMargin)
	profile := gait.Trapezoid(ticks, StepHeight)
	log.Debugf("step: ticks=%d, speed=%d", ticks, spd)

	from := start
	var track [numLegs]math3d.Vector3

	for _, ph := range gait.Phases() {
		to := end
		for _, n := range ph.Stance {
			o := p.Legs[n].Origin
			to[n].X = 2*o.X - end[n].X
			to[n].Z = 2*o.Z - end[n].Z
		}

		for t := 0; t <= profile.Length(); t++ {
			f := profile.Frame(t)
			for i := range track {
				track[i] = from[i].Lerp(to[i], f.XZ)
				track[i].Y = to[i].Y
				if ph.Swing.Contains(i) {
					track[i].Y += f.Y
				}
			}

			g.tick(p, allLegs, track, true)
		}

		from = track
	}

	p.commit(track)
	return ticks
}

// Linear moves every foot from start to end in a straight line, all at the
// same time. Each foot moves at most tickLength per tick. If withOffset is
// false, the servo offsets are ignored, which is useful before calibrating.
// Returns the number of ticks.
func (g *Generator) Linear(p *Pose, start, end [numLegs]math3d.Vector3, tickLength float64, withOffset bool) int {
	if tickLength <= 0 {
		tickLength = DefaultTickLength
	}

	ticks := gait.Ticks(maxDistance(start, end), tickLength, linearMargin)
	log.Debugf("linear: ticks=%d, tickLength=%0.2f, offset=%v", ticks, tickLength, withOffset)

	var track [numLegs]math3d.Vector3
	for t := 0; t <= ticks; t++ {
		r := float64(t) / float64(ticks)
		for i := range track {
			track[i] = start[i].Lerp(end[i], r)
		}

		g.tick(p, allLegs, track, withOffset)
	}

	p.commit(track)
	return ticks
}

// LinearLeg moves a single foot in a straight line, at the default tick
// length. The other legs are left alone. Returns the number of ticks.
func (g *Generator) LinearLeg(p *Pose, n int, start, end math3d.Vector3, withOffset bool) int {
	ticks := gait.Ticks(start.Distance(end), DefaultTickLength, linearMargin)
	log.Debugf("linear %s: ticks=%d, offset=%v", p.Legs[n].Name, ticks, withOffset)

	track := p.Points()
	for t := 0; t <= ticks; t++ {
		track[n] = start.Lerp(end, float64(t)/float64(ticks))
		g.tick(p, []int{n}, track, withOffset)
	}

	return ticks
}
