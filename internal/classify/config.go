package classify

import (
	"math"

	"github.com/poselab/posturewatch/internal/pose"
)

// Config holds the tunable thresholds for the posture classifiers.
type Config struct {
	// ConfidenceThreshold is the minimum detector score for a keypoint
	// to count as present.
	ConfidenceThreshold float64

	// FoldAngle is the maximum elbow angle, in radians, for an arm
	// segment to count as bent.
	FoldAngle float64

	// LeanTolerance is the allowed deviation, in radians, from a
	// perpendicular shoulder-hip-hip angle before a pose counts as
	// leaning. Field observations vary between 15 and 20 degrees
	// depending on camera placement, so this stays tunable.
	LeanTolerance float64

	// FaceTouchDistance is the pixel distance below which a limb
	// keypoint and a facial keypoint are considered touching.
	FaceTouchDistance float64
}

// DefaultConfig returns the thresholds used by the production
// pipeline: 0.6 confidence, 120 degree fold angle, 15 degree lean
// tolerance, 100px touch distance.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: pose.DefaultConfidenceThreshold,
		FoldAngle:           2 * math.Pi / 3,
		LeanTolerance:       15 * math.Pi / 180,
		FaceTouchDistance:   100,
	}
}
