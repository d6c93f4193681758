package legs

import (
	"github.com/adammck/quadruped/math3d"
)

// Leg is the state of a single leg. Everything is in the leg's own coordinate
// space.
type Leg struct {
	Name string

	// The neutral foot position. Only changed by recalibrating.
	Calibration math3d.Vector3

	// The most recently commanded foot position, and the angles which were
	// solved for it. These are always updated together, and are the starting
	// point of the next movement.
	Last   math3d.Vector3
	Angles Angles

	// Per-servo correction, added to the angles only when writing them out.
	Offset Angles

	// The point which the stance leg is reflected about while walking. This
	// is recomputed for every move command.
	Origin math3d.Vector3
}

// Pose is the state of all four legs. The generators read and write it, and
// assume that nothing else is touching it at the same time.
type Pose struct {
	Legs [numLegs]Leg
}

var legNames = [numLegs]string{"FL", "BL", "BR", "FR"}

// NewPose returns a pose with every leg standing on its calibration point.
func NewPose(g Geometry, calibration [numLegs]math3d.Vector3) *Pose {
	p := &Pose{}
	for i := range p.Legs {
		p.Legs[i] = Leg{
			Name:        legNames[i],
			Calibration: calibration[i],
			Last:        calibration[i],
			Angles:      g.Solve(calibration[i]),
			Origin:      calibration[i],
		}
	}

	return p
}

// Points returns the last commanded foot position of each leg.
func (p *Pose) Points() [numLegs]math3d.Vector3 {
	var v [numLegs]math3d.Vector3
	for i, leg := range p.Legs {
		v[i] = leg.Last
	}

	return v
}

// Calibration returns the calibration point of each leg.
func (p *Pose) Calibration() [numLegs]math3d.Vector3 {
	var v [numLegs]math3d.Vector3
	for i, leg := range p.Legs {
		v[i] = leg.Calibration
	}

	return v
}

// Offsets returns the servo offsets of each leg.
func (p *Pose) Offsets() [numLegs]Angles {
	var v [numLegs]Angles
	for i, leg := range p.Legs {
		v[i] = leg.Offset
	}

	return v
}

// set records that leg n has been moved to vt with the given angles.
func (p *Pose) set(n int, vt math3d.Vector3, a Angles) {
	p.Legs[n].Last = vt
	p.Legs[n].Angles = a
}

// commit records the final foot positions at the end of a movement.
func (p *Pose) commit(points [numLegs]math3d.Vector3) {
	for i := range p.Legs {
		p.Legs[i].Last = points[i]
	}
}
