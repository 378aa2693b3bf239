// Package pose defines the skeletal keypoint model shared by the
// classifiers and the ingest layer: the 17 canonical landmarks, the
// optional pixel-space keypoint, and the per-person Pose built from
// the upstream detector's relative coordinates and confidence scores.
package pose

// Joint indexes one of the 17 skeletal landmarks reported by the
// upstream pose-estimation model. The ordinal positions are a contract
// with the model's output arrays and must not be reordered.
type Joint int

const (
	Nose Joint = iota
	LeftEye
	RightEye
	LeftEar
	RightEar
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftFoot
	RightFoot

	// NumJoints is the fixed length of the detector's keypoint and
	// score arrays.
	NumJoints = 17
)

var jointNames = [NumJoints]string{
	"nose",
	"left_eye",
	"right_eye",
	"left_ear",
	"right_ear",
	"left_shoulder",
	"right_shoulder",
	"left_elbow",
	"right_elbow",
	"left_wrist",
	"right_wrist",
	"left_hip",
	"right_hip",
	"left_knee",
	"right_knee",
	"left_foot",
	"right_foot",
}

func (j Joint) String() string {
	if j < 0 || j >= NumJoints {
		return "unknown"
	}
	return jointNames[j]
}

// Keypoint is a joint location in absolute pixel space of the current
// frame. Valid is false when the detector's confidence for the joint
// fell below the threshold; an invalid keypoint carries no position
// and is distinct from a keypoint at (0, 0).
type Keypoint struct {
	X, Y  int
	Valid bool
}

// Pose holds one detected person's keypoints for a single frame,
// indexed by Joint. Poses are built fresh every frame and never
// retained across frames.
type Pose [NumJoints]Keypoint

// Vector flattens the pose into a 2*NumJoints embedding of frame
// fractions, x then y per joint in joint order. Absent joints are
// encoded as -1 in both slots, which no present joint can produce.
// The embedding is what the Postgres store indexes for similar-pose
// lookup.
func (p Pose) Vector(width, height int) []float32 {
	vec := make([]float32, 2*NumJoints)
	for j, kp := range p {
		if !kp.Valid {
			vec[2*j] = -1
			vec[2*j+1] = -1
			continue
		}
		vec[2*j] = float32(kp.X) / float32(width)
		vec[2*j+1] = float32(kp.Y) / float32(height)
	}
	return vec
}
