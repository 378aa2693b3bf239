// Package classify implements the rule-based posture classifiers:
// arms folded across the torso, torso leaning to one side, and a hand
// or forearm touching the face. Each classifier is a pure function of
// a single frame's Pose; missing keypoints and degenerate geometry
// resolve to false rather than erroring.
package classify

import (
	"log/slog"

	"github.com/poselab/posturewatch/internal/geometry"
	"github.com/poselab/posturewatch/internal/pose"
)

// Result is the classification triple for one pose in one frame.
type Result struct {
	ArmsFolded  bool `json:"arms_folded"`
	IsLeaning   bool `json:"is_leaning"`
	FaceTouched bool `json:"face_touched"`
}

// Evaluator runs the three posture classifiers over resolved poses.
// It holds no per-frame state and is safe for concurrent use.
type Evaluator struct {
	cfg Config
	log *slog.Logger
}

// NewEvaluator returns an Evaluator with the given thresholds. A nil
// logger falls back to slog.Default.
func NewEvaluator(cfg Config, log *slog.Logger) *Evaluator {
	if log == nil {
		log = slog.Default()
	}
	return &Evaluator{cfg: cfg, log: log}
}

// Config returns the thresholds the evaluator was built with.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate classifies a single pose into the three posture signals.
func (e *Evaluator) Evaluate(p pose.Pose) Result {
	return Result{
		ArmsFolded:  e.ArmsFolded(p),
		IsLeaning:   e.IsLeaning(p),
		FaceTouched: e.FaceTouched(p),
	}
}

// span returns the vector anchored at keypoint at, pointing to
// keypoint to.
func span(at, to pose.Keypoint) geometry.Vec {
	return geometry.Vec{X: float64(to.X - at.X), Y: float64(to.Y - at.Y)}
}

// dist returns the Euclidean distance between two keypoints.
func dist(a, b pose.Keypoint) float64 {
	return geometry.Dist(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
}
