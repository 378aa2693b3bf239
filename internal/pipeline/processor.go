// Package pipeline drives batch classification: it reads the upstream
// detector's frame records, fans them out to a worker pool, and routes
// every person's classification to the configured store and the
// session accumulator.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/poselab/posturewatch/internal/classify"
	"github.com/poselab/posturewatch/internal/detections"
	"github.com/poselab/posturewatch/internal/models"
	"github.com/poselab/posturewatch/internal/stats"
	"github.com/poselab/posturewatch/internal/storage"
)

const maxWorkers = 4

// summaryInterval is how many frames pass between running-percentage
// log lines.
const summaryInterval = 200

// Processor classifies every person in every frame of a session.
type Processor struct {
	eval  *classify.Evaluator
	store storage.Store
	acc   *stats.Accumulator
	log   *slog.Logger
}

func NewProcessor(eval *classify.Evaluator, store storage.Store, acc *stats.Accumulator, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		eval:  eval,
		store: store,
		acc:   acc,
		log:   log,
	}
}

// ProcessStream consumes frame records from r until EOF. Frames are
// classified concurrently; per-frame contract violations are collected
// and surfaced after the stream drains, and pending results are
// flushed either way. Errors beyond the collection buffer are logged
// and reported as a count in the returned error.
func (p *Processor) ProcessStream(ctx context.Context, r *detections.Reader) error {
	workChan := make(chan detections.FrameRecord, maxWorkers*2)
	errsChan := make(chan error, maxWorkers*2)

	var wg sync.WaitGroup
	var processed, dropped atomic.Int64

	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range workChan {
				if err := p.processFrame(ctx, rec); err != nil {
					select {
					case errsChan <- err:
					default:
						dropped.Add(1)
						p.log.Warn("frame error buffer full, dropping error", "frame", rec.Frame, "err", err)
					}
					continue
				}

				if n := processed.Add(1); n%summaryInterval == 0 {
					p.logSummary(n)
				}
			}
		}()
	}

	var readErr error
	for {
		rec, err := r.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}

		select {
		case workChan <- rec:
		case <-ctx.Done():
			readErr = ctx.Err()
		}
		if readErr != nil {
			break
		}
	}
	close(workChan)
	wg.Wait()
	close(errsChan)

	if err := p.store.Flush(); err != nil {
		return fmt.Errorf("pipeline: flush results: %w", err)
	}

	errs := []error{readErr}
	for err := range errsChan {
		errs = append(errs, err)
	}
	if n := dropped.Load(); n > 0 {
		errs = append(errs, fmt.Errorf("pipeline: %d further frame errors dropped", n))
	}
	return errors.Join(errs...)
}

func (p *Processor) processFrame(ctx context.Context, rec detections.FrameRecord) error {
	threshold := p.eval.Config().ConfidenceThreshold
	results := make(map[int]classify.Result, len(rec.Persons))

	for _, person := range rec.Persons {
		resolved, err := person.Resolve(rec.Width, rec.Height, threshold)
		if err != nil {
			return fmt.Errorf("pipeline: frame %d: %w", rec.Frame, err)
		}

		res := p.eval.Evaluate(resolved)
		results[person.TrackID] = res

		result := models.FrameResult{
			Frame:       rec.Frame,
			TrackID:     person.TrackID,
			ArmsFolded:  res.ArmsFolded,
			IsLeaning:   res.IsLeaning,
			FaceTouched: res.FaceTouched,
			PoseVector:  resolved.Vector(rec.Width, rec.Height),
		}
		if err := p.store.AddResult(ctx, result); err != nil {
			return fmt.Errorf("pipeline: frame %d track %d: %w", rec.Frame, person.TrackID, err)
		}
	}

	p.acc.RecordFrame(rec.Frame, results)
	return nil
}

func (p *Processor) logSummary(frames int64) {
	summary := p.acc.Summary()
	for _, track := range summary.Tracks {
		p.log.Info("running posture summary",
			"frames", frames,
			"track", track.TrackID,
			"arms_folded_pct", track.ArmsFoldedPercent,
			"leaning_pct", track.IsLeaningPercent,
			"face_touched_pct", track.FaceTouchedPercent,
		)
	}
}
