package gait

// Triangle returns the lift profile used to move feet directly between two
// points. The foot rises for the first half of the phase.
//
// Unless descend is true, the lift drops straight back to zero at the half way
// point and stays there, rather than descending gradually. That's what the
// robot has always done, so it's the default.
func Triangle(ticks int, height float64, descend bool) Profile {
	k := -2 * height / float64(ticks)
	frames := make(Frames, ticks+1)

	for t := 0; t <= ticks; t++ {
		f := Frame{XZ: float64(t) / float64(ticks)}

		if descend {
			if float64(t) < float64(ticks)/2 {
				f.Y = k * float64(t)
			} else {
				f.Y = k * float64(ticks-t)
			}
		} else if t < ticks/2 {
			f.Y = k * float64(t)
		}

		frames[t] = f
	}

	return Profile{
		frames: frames,
		length: ticks,
	}
}

// Trapezoid returns the lift profile of a swing leg while walking. The foot
// rises for the first third of the phase, stays up for the middle third, and
// comes back down from the same height during the last. It never goes higher
// than height.
func Trapezoid(ticks int, height float64) Profile {
	k := -3 * height / float64(ticks)
	third := ticks / 3
	twoThirds := ticks * 2 / 3
	frames := make(Frames, ticks+1)

	for t := 0; t <= ticks; t++ {
		f := Frame{XZ: float64(t) / float64(ticks)}

		switch {
		case t < third:
			f.Y = k * float64(t)

		case t < twoThirds:
			f.Y = k * float64(third)

		default:
			f.Y = k * float64(third) * float64(ticks-t) / float64(ticks-twoThirds)
		}

		frames[t] = f
	}

	return Profile{
		frames: frames,
		length: ticks,
	}
}
