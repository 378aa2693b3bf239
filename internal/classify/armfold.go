package classify

import (
	"github.com/poselab/posturewatch/internal/geometry"
	"github.com/poselab/posturewatch/internal/pose"
)

// ArmsFolded reports whether both arms are folded across the torso.
//
// An arm counts as folded when all four hold:
//   - the elbow angle between the shoulder and wrist segments is under
//     the fold angle;
//   - the wrist sits between the two shoulders horizontally;
//   - the wrist sits below the higher shoulder (folded arms, unlike
//     hands raised to the face, stay under the shoulder line);
//   - the forearm spans at least half the shoulder width, ruling out
//     wrists barely bent near the shoulder.
//
// A single unfolded arm makes the whole pose not folded. Any missing
// keypoint or undefined elbow angle resolves to false.
func (e *Evaluator) ArmsFolded(p pose.Pose) bool {
	ls, le, lw := p[pose.LeftShoulder], p[pose.LeftElbow], p[pose.LeftWrist]
	rs, re, rw := p[pose.RightShoulder], p[pose.RightElbow], p[pose.RightWrist]
	if !ls.Valid || !le.Valid || !lw.Valid || !rs.Valid || !re.Valid || !rw.Valid {
		return false
	}

	leftAngle, leftErr := geometry.Angle(span(le, ls), span(le, lw))
	rightAngle, rightErr := geometry.Angle(span(re, rs), span(re, rw))
	if leftErr != nil || rightErr != nil {
		// Degenerate elbow geometry points at anomalous upstream data,
		// unlike an ordinary low-confidence dropout.
		e.log.Warn("undefined elbow angle while checking arm fold",
			"left_err", leftErr, "right_err", rightErr)
		return false
	}

	shoulderDist := dist(ls, rs)
	// In image space "left" keypoints carry the larger x, and y grows
	// downward, so the higher shoulder holds the smaller y.
	upperShoulderY := min(ls.Y, rs.Y)

	leftFolded := leftAngle < e.cfg.FoldAngle &&
		rs.X <= lw.X && lw.X <= ls.X &&
		lw.Y > upperShoulderY &&
		dist(le, lw)*2 >= shoulderDist

	rightFolded := rightAngle < e.cfg.FoldAngle &&
		rs.X <= rw.X && rw.X <= ls.X &&
		rw.Y > upperShoulderY &&
		dist(re, rw)*2 >= shoulderDist

	return leftFolded && rightFolded
}
