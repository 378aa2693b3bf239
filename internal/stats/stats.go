// Package stats accumulates classification results per tracked
// identity across frames. The classifiers themselves stay stateless;
// the pipeline injects one Accumulator per session and reads running
// percentages out of it.
package stats

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/poselab/posturewatch/internal/classify"
)

// FramePoint is the fraction of tracked persons flagged per signal in
// one frame, used for the session timeline chart.
type FramePoint struct {
	Frame       int     `json:"frame"`
	ArmsFolded  float64 `json:"arms_folded"`
	IsLeaning   float64 `json:"is_leaning"`
	FaceTouched float64 `json:"face_touched"`
}

// TrackSummary is the running percentages for one tracked identity.
type TrackSummary struct {
	TrackID            int     `json:"track_id"`
	Frames             int     `json:"frames"`
	ArmsFoldedPercent  float64 `json:"arms_folded_percent"`
	IsLeaningPercent   float64 `json:"is_leaning_percent"`
	FaceTouchedPercent float64 `json:"face_touched_percent"`
}

// Summary is a point-in-time snapshot of the whole session.
type Summary struct {
	Frames int            `json:"frames"`
	Tracks []TrackSummary `json:"tracks"`
}

type trackSeries struct {
	armsFolded  []float64
	isLeaning   []float64
	faceTouched []float64
}

// Accumulator is safe for concurrent RecordFrame calls.
type Accumulator struct {
	mu       sync.Mutex
	tracks   map[int]*trackSeries
	timeline []FramePoint
	frames   int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{tracks: make(map[int]*trackSeries)}
}

// RecordFrame records the classification of every person observed in
// one frame, keyed by track id.
func (a *Accumulator) RecordFrame(frame int, results map[int]classify.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.frames++

	var folded, leaning, touched int
	for trackID, res := range results {
		ts := a.tracks[trackID]
		if ts == nil {
			ts = &trackSeries{}
			a.tracks[trackID] = ts
		}
		ts.armsFolded = append(ts.armsFolded, boolToFloat(res.ArmsFolded))
		ts.isLeaning = append(ts.isLeaning, boolToFloat(res.IsLeaning))
		ts.faceTouched = append(ts.faceTouched, boolToFloat(res.FaceTouched))

		if res.ArmsFolded {
			folded++
		}
		if res.IsLeaning {
			leaning++
		}
		if res.FaceTouched {
			touched++
		}
	}

	point := FramePoint{Frame: frame}
	if n := len(results); n > 0 {
		point.ArmsFolded = float64(folded) / float64(n)
		point.IsLeaning = float64(leaning) / float64(n)
		point.FaceTouched = float64(touched) / float64(n)
	}
	a.timeline = append(a.timeline, point)
}

// Frames returns the number of frames recorded so far.
func (a *Accumulator) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}

// Summary snapshots the per-track percentages, sorted by track id.
func (a *Accumulator) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Summary{Frames: a.frames, Tracks: make([]TrackSummary, 0, len(a.tracks))}
	for trackID, ts := range a.tracks {
		s.Tracks = append(s.Tracks, TrackSummary{
			TrackID:            trackID,
			Frames:             len(ts.armsFolded),
			ArmsFoldedPercent:  stat.Mean(ts.armsFolded, nil) * 100,
			IsLeaningPercent:   stat.Mean(ts.isLeaning, nil) * 100,
			FaceTouchedPercent: stat.Mean(ts.faceTouched, nil) * 100,
		})
	}
	sort.Slice(s.Tracks, func(i, j int) bool { return s.Tracks[i].TrackID < s.Tracks[j].TrackID })
	return s
}

// Timeline returns a copy of the per-frame flagged fractions in the
// order frames were recorded.
func (a *Accumulator) Timeline() []FramePoint {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]FramePoint, len(a.timeline))
	copy(out, a.timeline)
	return out
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
