// Package geometry holds the numeric primitives shared by the posture
// classifiers.
package geometry

import (
	"errors"
	"math"
)

// ErrUndefinedAngle is returned when no angle exists between two
// vectors: either vector is zero, or floating-point error pushed the
// cosine outside the acos domain by more than rounding tolerance.
// Callers treat it as a boundary condition, not a failure.
var ErrUndefinedAngle = errors.New("geometry: angle between vectors is undefined")

// cosTolerance bounds how far outside [-1, 1] a computed cosine may
// fall and still be attributed to rounding.
const cosTolerance = 1e-9

// Vec is a 2D vector anchored at a shared origin, typically a joint.
type Vec struct {
	X, Y float64
}

// IsZero reports whether the vector has no magnitude.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Angle returns the unsigned angle in [0, π] between v1 and v2 via the
// law of cosines. Swapping the arguments yields the identical angle.
func Angle(v1, v2 Vec) (float64, error) {
	if v1.IsZero() || v2.IsZero() {
		return 0, ErrUndefinedAngle
	}

	dot := v1.X*v2.X + v1.Y*v2.Y
	cos := dot / (math.Hypot(v1.X, v1.Y) * math.Hypot(v2.X, v2.Y))

	switch {
	case cos > 1:
		if cos > 1+cosTolerance {
			return 0, ErrUndefinedAngle
		}
		cos = 1
	case cos < -1:
		if cos < -1-cosTolerance {
			return 0, ErrUndefinedAngle
		}
		cos = -1
	}
	return math.Acos(cos), nil
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
