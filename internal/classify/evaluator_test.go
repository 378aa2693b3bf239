package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poselab/posturewatch/internal/pose"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 0.6, cfg.ConfidenceThreshold)
	assert.InDelta(t, 2*math.Pi/3, cfg.FoldAngle, 1e-12)
	assert.InDelta(t, 15*math.Pi/180, cfg.LeanTolerance, 1e-12)
	assert.Equal(t, 100.0, cfg.FaceTouchDistance)
}

func TestEvaluateCombinesSignals(t *testing.T) {
	t.Parallel()
	eval := testEvaluator()

	p := armPose(armsFoldedHalfCross[0])
	res := eval.Evaluate(p)
	assert.True(t, res.ArmsFolded)
	assert.False(t, res.IsLeaning) // hips undefined
	assert.False(t, res.FaceTouched)
}

func TestEvaluateIdempotent(t *testing.T) {
	t.Parallel()
	eval := testEvaluator()

	poses := []pose.Pose{
		{},
		armPose(armsFoldedHalfCross[0]),
		armPose(armsFoldedTouchingFace[0]),
		torsoPose([2]int{1005, 567}, [2]int{825, 564}, [2]int{967, 876}, [2]int{881, 840}),
	}
	for _, p := range poses {
		first := eval.Evaluate(p)
		second := eval.Evaluate(p)
		assert.Equal(t, first, second)
	}
}
