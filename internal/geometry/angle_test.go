package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v1   Vec
		v2   Vec
		want float64
	}{
		{"orthogonal", Vec{0, 1}, Vec{1, 0}, math.Pi / 2},
		{"parallel", Vec{3, 4}, Vec{3, 4}, 0},
		{"opposite", Vec{0, 1}, Vec{0, -1}, math.Pi},
		{"forty five", Vec{1, 0}, Vec{1, 1}, math.Pi / 4},
		{"obtuse", Vec{1, 0}, Vec{-1, 1}, 3 * math.Pi / 4},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Angle(tc.v1, tc.v2)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)

			// Swapping the arguments measures the same angle.
			swapped, err := Angle(tc.v2, tc.v1)
			require.NoError(t, err)
			assert.Equal(t, got, swapped)
		})
	}
}

func TestAngleZeroVector(t *testing.T) {
	t.Parallel()

	others := []Vec{{1, 0}, {0, 1}, {-7, 3}, {0, 0}}
	for _, other := range others {
		_, err := Angle(Vec{}, other)
		assert.ErrorIs(t, err, ErrUndefinedAngle)

		_, err = Angle(other, Vec{})
		assert.ErrorIs(t, err, ErrUndefinedAngle)
	}
}

func TestAngleClampsRoundingError(t *testing.T) {
	t.Parallel()

	// Nearly-parallel long vectors can push the computed cosine a hair
	// past 1; the result must clamp to 0 rather than fail.
	v := Vec{1e8, 1e8 + 1}
	got, err := Angle(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 1e-6)
}

func TestDist(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5.0, Dist(0, 0, 3, 4))
	assert.Equal(t, 0.0, Dist(7, -2, 7, -2))
	assert.InDelta(t, 353.55, Dist(250, 250, 0, 0), 0.01)
}
