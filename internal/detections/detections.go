// Package detections decodes the upstream pose-estimation model's
// per-frame output: one JSON record per frame carrying the frame's
// pixel dimensions and, per detected person, a track id plus the 17
// parallel keypoint and confidence arrays.
package detections

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/poselab/posturewatch/internal/pose"
)

// PersonDetection is one detected person in one frame, as emitted by
// the upstream model. Keypoints are relative coordinates in [0, 1],
// parallel to KeypointScores, both in the fixed joint order.
type PersonDetection struct {
	TrackID        int          `json:"track_id"`
	Score          float64      `json:"score"`
	Keypoints      [][2]float64 `json:"keypoints"`
	KeypointScores []float64    `json:"keypoint_scores"`
}

// Validate checks the upstream array contract. A length mismatch means
// joint identity can no longer be trusted and is a hard error.
func (d PersonDetection) Validate() error {
	if len(d.Keypoints) != pose.NumJoints || len(d.KeypointScores) != pose.NumJoints {
		return fmt.Errorf("detections: track %d: expected %d keypoints and scores, got %d keypoints and %d scores",
			d.TrackID, pose.NumJoints, len(d.Keypoints), len(d.KeypointScores))
	}
	return nil
}

// Resolve maps the detection onto an absolute-pixel Pose for the given
// frame dimensions, dropping keypoints scoring under the threshold.
func (d PersonDetection) Resolve(width, height int, threshold float64) (pose.Pose, error) {
	if err := d.Validate(); err != nil {
		return pose.Pose{}, err
	}
	return pose.ResolvePose(d.Keypoints, d.KeypointScores, width, height, threshold)
}

// FrameRecord is one line of the detector's JSONL output.
type FrameRecord struct {
	Frame   int               `json:"frame"`
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Persons []PersonDetection `json:"persons"`
}

// Reader decodes frame records from a JSON Lines stream.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader wraps r. Lines up to 4MB are accepted, which comfortably
// covers crowded frames.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next frame record, skipping blank lines. It returns
// io.EOF once the stream is exhausted.
func (r *Reader) Next() (FrameRecord, error) {
	for r.sc.Scan() {
		r.line++
		raw := bytes.TrimSpace(r.sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		var rec FrameRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return FrameRecord{}, fmt.Errorf("detections: line %d: %w", r.line, err)
		}
		if rec.Width <= 0 || rec.Height <= 0 {
			return FrameRecord{}, fmt.Errorf("detections: line %d: frame %d has invalid dimensions %dx%d",
				r.line, rec.Frame, rec.Width, rec.Height)
		}
		return rec, nil
	}
	if err := r.sc.Err(); err != nil {
		return FrameRecord{}, fmt.Errorf("detections: read: %w", err)
	}
	return FrameRecord{}, io.EOF
}
