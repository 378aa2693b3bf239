package classify

import "github.com/poselab/posturewatch/internal/pose"

// FaceTouched reports whether any elbow or wrist keypoint lies within
// the touch distance of any facial keypoint (nose, eyes, ears).
//
// Undefined keypoints on either side are skipped; if every limb
// keypoint or every facial keypoint is undefined there is nothing to
// compare and the result is false. The search short-circuits on the
// first close pair; at most 4x5 distances are checked.
func (e *Evaluator) FaceTouched(p pose.Pose) bool {
	limbs := [...]pose.Keypoint{
		p[pose.LeftElbow],
		p[pose.RightElbow],
		p[pose.LeftWrist],
		p[pose.RightWrist],
	}
	face := [...]pose.Keypoint{
		p[pose.Nose],
		p[pose.LeftEye],
		p[pose.RightEye],
		p[pose.LeftEar],
		p[pose.RightEar],
	}

	for _, limb := range limbs {
		if !limb.Valid {
			continue
		}
		for _, feature := range face {
			if !feature.Valid {
				continue
			}
			if dist(limb, feature) < e.cfg.FaceTouchDistance {
				return true
			}
		}
	}
	return false
}
