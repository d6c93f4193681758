package legs

import (
	"fmt"
	"math"

	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/utils"
)

// Angles are the joint angles of a single leg, in degrees, as sent to the
// servos (before offsets and mirroring).
type Angles struct {
	Coxa  float64 // hip yaw
	Femur float64 // hip pitch
	Tibia float64 // knee pitch
}

func (a Angles) Add(aa Angles) Angles {
	return Angles{a.Coxa + aa.Coxa, a.Femur + aa.Femur, a.Tibia + aa.Tibia}
}

func (a Angles) String() string {
	return fmt.Sprintf("&Angles{coxa=%0.2f femur=%0.2f tibia=%0.2f}", a.Coxa, a.Femur, a.Tibia)
}

// coxaAngle returns the angle of the coxa (in radians) needed to point the
// leg at vt. This only depends on the Y/Z position of the target.
func coxaAngle(vt math3d.Vector3) float64 {
	return math.Pi/2 - math.Atan2(vt.Z, vt.Y)
}

// shoulder returns the position of the femur joint when the coxa is at the
// given angle.
func (g Geometry) shoulder(a float64) math3d.Vector3 {
	return math3d.Vector3{X: 0, Y: g.Coxa * math.Sin(a), Z: g.Coxa * math.Cos(a)}
}

// Reach returns the point which the leg will actually be moved to when asked
// to move to vt. This is vt itself unless it's further than the reach radius
// from the femur joint, in which case it's the point on the line between them
// which is exactly the reach radius away.
func (g Geometry) Reach(vt math3d.Vector3) math3d.Vector3 {
	vr := g.shoulder(coxaAngle(vt))
	return g.reach(vr, vt)
}

func (g Geometry) reach(vr, vt math3d.Vector3) math3d.Vector3 {
	d := vr.Distance(vt)
	if d > g.MaxReach {
		return vr.Add(vt.Subtract(vr).MultiplyByScalar(g.MaxReach / d))
	}

	return vt
}

// Solve returns the joint angles needed to place the foot at vt, which is in
// the leg's coordinate space. Unreachable targets are silently pulled in (see
// Reach), so this always returns valid angles.
func (g Geometry) Solve(vt math3d.Vector3) Angles {

	// Solve the coxa by looking at the target from the side (y,z). This also
	// fixes the position of the femur joint.
	a := coxaAngle(vt)
	vr := g.shoulder(a)
	vt = g.reach(vr, vt)

	// The femur and tibia are on the same plane, which contains vr and vt, so
	// the rest is a triangle with known sides:
	//
	//       (?)
	//       / \
	//   femur  tibia
	//     /     \
	//   (vr)---(vt)
	//       l23
	//
	l23 := vr.Distance(vt)

	// Elevation of vt above the plane of the coxa. Straight down if the
	// target is exactly at the femur joint.
	w := 0.0
	if l23 > 0 {
		w = (vt.X - vr.X) / l23
	}

	b := math.Asin(utils.Constrain(w, -1, 1)) - sss(g.Tibia, g.Femur, l23)
	c := math.Pi - sss(l23, g.Femur, g.Tibia)

	return Angles{
		Coxa:  utils.Deg(a),
		Femur: utils.Map(utils.Deg(b), -90, 90, 180, 0),
		Tibia: utils.Deg(c),
	}
}

// Forward returns the foot position for the given joint angles. It's the
// inverse of Solve for any reachable point in front of the femur joint.
func (g Geometry) Forward(ang Angles) math3d.Vector3 {
	a := utils.Rad(ang.Coxa)
	b := utils.Rad(90 - ang.Femur)
	c := utils.Rad(ang.Tibia)

	// Position in the plane of the femur and tibia, where r is the distance
	// outwards from the coxa joint.
	x := g.Femur*math.Sin(b) + g.Tibia*math.Sin(b+c)
	r := g.Coxa + g.Femur*math.Cos(b) + g.Tibia*math.Cos(b+c)

	return math3d.Vector3{X: x, Y: r * math.Sin(a), Z: r * math.Cos(a)}
}

// sss returns the angle α (in radians), given the length of sides a, b, and c.
// See: http://en.wikipedia.org/wiki/Solution_of_triangles
func sss(a float64, b float64, c float64) float64 {
	cos := ((b * b) + (c * c) - (a * a)) / (2 * b * c)
	if math.IsNaN(cos) {
		return 0
	}

	return math.Acos(utils.Constrain(cos, -1, 1))
}
