package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poselab/posturewatch/internal/pose"
)

var torsoJoints = []pose.Joint{
	pose.LeftShoulder,
	pose.RightShoulder,
	pose.LeftHip,
	pose.RightHip,
}

func torsoPose(ls, rs, lh, rh [2]int) pose.Pose {
	return buildPose(map[pose.Joint]pose.Keypoint{
		pose.LeftShoulder:  kp(ls[0], ls[1]),
		pose.RightShoulder: kp(rs[0], rs[1]),
		pose.LeftHip:       kp(lh[0], lh[1]),
		pose.RightHip:      kp(rh[0], rh[1]),
	})
}

func TestIsLeaningMissingJoints(t *testing.T) {
	t.Parallel()
	eval := testEvaluator()

	base := torsoPose([2]int{1005, 567}, [2]int{825, 564}, [2]int{967, 876}, [2]int{881, 840})
	for mask := 1; mask < 1<<len(torsoJoints); mask++ {
		p := base
		for bit, joint := range torsoJoints {
			if mask&(1<<bit) != 0 {
				p[joint] = pose.Keypoint{}
			}
		}
		assert.False(t, eval.IsLeaning(p), "missing-joint mask %04b", mask)
	}
}

func TestIsLeaning(t *testing.T) {
	t.Parallel()
	eval := testEvaluator()

	t.Run("lateral offset reads as leaning", func(t *testing.T) {
		t.Parallel()
		p := torsoPose([2]int{1005, 567}, [2]int{825, 564}, [2]int{967, 876}, [2]int{881, 840})
		assert.True(t, eval.IsLeaning(p))
	})

	t.Run("near-symmetric torso reads as upright", func(t *testing.T) {
		t.Parallel()
		p := torsoPose([2]int{990, 573}, [2]int{805, 567}, [2]int{994, 860}, [2]int{865, 854})
		assert.False(t, eval.IsLeaning(p))
	})

	t.Run("perfectly vertical torso reads as upright", func(t *testing.T) {
		t.Parallel()
		p := torsoPose([2]int{1000, 500}, [2]int{800, 500}, [2]int{1000, 800}, [2]int{800, 800})
		assert.False(t, eval.IsLeaning(p))
	})
}

func TestIsLeaningDegenerateGeometry(t *testing.T) {
	t.Parallel()
	eval := testEvaluator()

	// Hips collapsing onto the same point yields a zero hip line.
	p := torsoPose([2]int{1000, 500}, [2]int{800, 500}, [2]int{900, 800}, [2]int{900, 800})
	assert.False(t, eval.IsLeaning(p))

	// Shoulder collapsing onto its hip yields a zero torso side.
	p = torsoPose([2]int{1000, 800}, [2]int{800, 500}, [2]int{1000, 800}, [2]int{800, 800})
	assert.False(t, eval.IsLeaning(p))
}

func TestLeanToleranceConfigurable(t *testing.T) {
	t.Parallel()

	// A uniform torso tilt of roughly 17 degrees: outside the default
	// 15 degree tolerance, inside a 20 degree one.
	p := torsoPose([2]int{908, 500}, [2]int{708, 500}, [2]int{1000, 800}, [2]int{800, 800})

	strict := testEvaluator()
	assert.True(t, strict.IsLeaning(p))

	relaxedCfg := DefaultConfig()
	relaxedCfg.LeanTolerance = 20 * math.Pi / 180
	relaxed := NewEvaluator(relaxedCfg, nil)
	assert.False(t, relaxed.IsLeaning(p))
}
