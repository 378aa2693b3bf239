package pose

import (
	"fmt"
	"math"
)

// DefaultConfidenceThreshold is the minimum detector score for a
// keypoint to count as present.
const DefaultConfidenceThreshold = 0.6

// ResolveKeypoint maps one relative detector coordinate (0 <= rx,ry
// <= 1) onto the frame's pixel grid. Detections scoring below the
// threshold resolve to an invalid Keypoint.
func ResolveKeypoint(rx, ry, score float64, width, height int, threshold float64) Keypoint {
	if score < threshold {
		return Keypoint{}
	}
	return Keypoint{
		X:     int(math.Round(rx * float64(width))),
		Y:     int(math.Round(ry * float64(height))),
		Valid: true,
	}
}

// ResolvePose maps the detector's parallel keypoint and score arrays
// for one person onto a Pose. Arrays of the wrong length violate the
// upstream contract and are rejected outright; the resolver cannot
// guess which joint is which.
func ResolvePose(keypoints [][2]float64, scores []float64, width, height int, threshold float64) (Pose, error) {
	if len(keypoints) != NumJoints || len(scores) != NumJoints {
		return Pose{}, fmt.Errorf("pose: expected %d keypoints and scores, got %d keypoints and %d scores",
			NumJoints, len(keypoints), len(scores))
	}

	var p Pose
	for j := range p {
		p[j] = ResolveKeypoint(keypoints[j][0], keypoints[j][1], scores[j], width, height, threshold)
	}
	return p, nil
}
