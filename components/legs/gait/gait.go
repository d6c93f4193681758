package gait

import (
	"math"
)

const (
	numLegs = 4
)

// Pair is two legs at diagonally opposite corners of the body. The legs of a
// pair always share a role within a phase, so the body is supported by the
// other pair.
type Pair [2]int

// Pairs are the two diagonal pairs, in the order that they swing: front left
// with rear right, then rear left with front right.
var Pairs = [2]Pair{{0, 2}, {1, 3}}

// Phase assigns the swing and stance roles for one half of a step.
type Phase struct {
	Swing  Pair
	Stance Pair
}

// Phases returns the two phases of a step. The pairs swap roles between them.
func Phases() [2]Phase {
	return [2]Phase{
		{Swing: Pairs[0], Stance: Pairs[1]},
		{Swing: Pairs[1], Stance: Pairs[0]},
	}
}

// Contains returns true if the given leg index is part of the pair.
func (p Pair) Contains(leg int) bool {
	return p[0] == leg || p[1] == leg
}

// Ticks returns the number of ticks needed to move a foot the given distance
// at the given speed (mm per tick). The margin is added so that even a zero
// distance takes some time.
func Ticks(distance, speed float64, margin int) int {
	return int(math.Round(distance/speed)) + margin
}

type Frame struct {
	XZ float64
	Y  float64
}

type Frames []Frame

// Profile is the precomputed path of a foot over one phase.
type Profile struct {
	frames Frames
	length int
}

// Length returns the number of ticks in the phase. There are Length()+1
// frames, since both the start and end positions are included.
func (p *Profile) Length() int {
	return p.length
}

// Frame returns the frame for tick n. XZ is the ratio (0-1) of the distance
// which the foot should have travelled on the X/Z axes, and Y is the offset
// (in mm, negative is up) to add to the foot height.
func (p *Profile) Frame(n int) Frame {
	return p.frames[n]
}
