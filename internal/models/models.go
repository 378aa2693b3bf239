package models

// FrameResult is the classification outcome for one person in one
// frame, as handed to the configured store.
type FrameResult struct {
	Frame       int  `json:"frame"`
	TrackID     int  `json:"track_id"`
	ArmsFolded  bool `json:"arms_folded"`
	IsLeaning   bool `json:"is_leaning"`
	FaceTouched bool `json:"face_touched"`

	// PoseVector is the flattened keypoint embedding for similar-pose
	// lookup. Only the Postgres store persists it.
	PoseVector []float32 `json:"-"`
}
