package classify

import (
	"io"
	"log/slog"

	"github.com/poselab/posturewatch/internal/pose"
)

func testEvaluator() *Evaluator {
	return NewEvaluator(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func kp(x, y int) pose.Keypoint {
	return pose.Keypoint{X: x, Y: y, Valid: true}
}

func buildPose(joints map[pose.Joint]pose.Keypoint) pose.Pose {
	var p pose.Pose
	for j, keypoint := range joints {
		p[j] = keypoint
	}
	return p
}

// armPose lays out the six arm-fold joints in the order left shoulder,
// left elbow, left wrist, right shoulder, right elbow, right wrist.
func armPose(coords [6][2]int) pose.Pose {
	return buildPose(map[pose.Joint]pose.Keypoint{
		pose.LeftShoulder:  kp(coords[0][0], coords[0][1]),
		pose.LeftElbow:     kp(coords[1][0], coords[1][1]),
		pose.LeftWrist:     kp(coords[2][0], coords[2][1]),
		pose.RightShoulder: kp(coords[3][0], coords[3][1]),
		pose.RightElbow:    kp(coords[4][0], coords[4][1]),
		pose.RightWrist:    kp(coords[5][0], coords[5][1]),
	})
}

// Frame captures of a presenter with arms half-crossed over the torso.
var armsFoldedHalfCross = [][6][2]int{
	{{1153, 239}, {1184, 437}, {1067, 425}, {919, 235}, {864, 425}, {1054, 425}},
	{{1158, 239}, {1186, 434}, {1054, 431}, {917, 236}, {862, 424}, {1055, 424}},
	{{1158, 237}, {1190, 432}, {1051, 432}, {916, 234}, {861, 423}, {1052, 422}},
	{{1160, 238}, {1192, 431}, {1063, 433}, {922, 233}, {862, 420}, {1012, 417}},
	{{1154, 236}, {1189, 433}, {1064, 430}, {919, 233}, {860, 420}, {1013, 416}},
}

// Frame captures of a presenter raising a hand to the face: the bent
// elbow alone must not read as folded arms.
var armsFoldedTouchingFace = [][6][2]int{
	{{1140, 254}, {1197, 359}, {1105, 237}, {934, 252}, {897, 361}, {946, 252}},
	{{1140, 256}, {1194, 356}, {1104, 239}, {930, 259}, {889, 360}, {944, 255}},
	{{1137, 255}, {1191, 359}, {1108, 236}, {925, 262}, {885, 363}, {944, 254}},
	{{1139, 255}, {1194, 358}, {1108, 237}, {925, 262}, {890, 362}, {945, 254}},
}
