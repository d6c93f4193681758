package math3d

import (
	"fmt"

	"github.com/adammck/quadruped/utils"
)

// EulerAngles is an orientation of the body, in radians.
type EulerAngles struct {
	Heading float64 // y (yaw)
	Pitch   float64 // x (along the body length)
	Bank    float64 // z (along the body width)
}

var (
	IdentityOrientation = EulerAngles{}
)

// Euler returns the EulerAngles for the given heading, pitch, and bank, which
// are specified in degrees.
func Euler(h float64, p float64, b float64) EulerAngles {
	return EulerAngles{utils.Rad(h), utils.Rad(p), utils.Rad(b)}
}

func (ea EulerAngles) String() string {
	return fmt.Sprintf("&Euler{h=%+.2f° p=%+.2f° b=%+.2f°}", utils.Deg(ea.Heading), utils.Deg(ea.Pitch), utils.Deg(ea.Bank))
}
