package classify

import (
	"math"

	"github.com/poselab/posturewatch/internal/geometry"
	"github.com/poselab/posturewatch/internal/pose"
)

// IsLeaning reports whether the torso tilts past the configured
// tolerance on either side.
//
// Each side's angle is measured at the hip, between the shoulder above
// it and the opposite hip; an upright torso keeps both angles near
// π/2. The pose counts as leaning once either angle leaves the
// tolerance band around π/2. Missing keypoints or degenerate hip
// geometry resolve to false.
func (e *Evaluator) IsLeaning(p pose.Pose) bool {
	ls, rs := p[pose.LeftShoulder], p[pose.RightShoulder]
	lh, rh := p[pose.LeftHip], p[pose.RightHip]
	if !ls.Valid || !rs.Valid || !lh.Valid || !rh.Valid {
		return false
	}

	leftAngle, leftErr := geometry.Angle(span(lh, ls), span(lh, rh))
	rightAngle, rightErr := geometry.Angle(span(rh, rs), span(rh, lh))
	if leftErr != nil || rightErr != nil {
		e.log.Warn("undefined torso angle while checking lean",
			"left_err", leftErr, "right_err", rightErr)
		return false
	}

	lo := math.Pi/2 - e.cfg.LeanTolerance
	hi := math.Pi/2 + e.cfg.LeanTolerance
	return leftAngle < lo || leftAngle > hi || rightAngle < lo || rightAngle > hi
}
