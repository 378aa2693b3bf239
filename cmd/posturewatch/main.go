package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/poselab/posturewatch/internal/classify"
	"github.com/poselab/posturewatch/internal/detections"
	"github.com/poselab/posturewatch/internal/pipeline"
	"github.com/poselab/posturewatch/internal/report"
	"github.com/poselab/posturewatch/internal/server"
	"github.com/poselab/posturewatch/internal/stats"
	"github.com/poselab/posturewatch/internal/storage"
)

var (
	detectionsPath = flag.String("detections", "", "JSONL file of per-frame keypoint detections to classify")
	outputDir      = flag.String("output", "output", "Directory for session results")
	sessionName    = flag.String("session", "", "Session name (defaults to the detections file name)")
	reportPath     = flag.String("report", "", "Write an HTML posture timeline to this path after processing")
	listen         = flag.String("listen", "", "Serve the classification API on this address instead of batch processing")

	confidence   = flag.Float64("confidence", 0.6, "Minimum keypoint confidence score")
	foldAngleDeg = flag.Float64("fold-angle-deg", 120, "Maximum elbow angle in degrees for a folded arm")
	leanTolDeg   = flag.Float64("lean-tolerance-deg", 15, "Allowed torso deviation from vertical in degrees")
	touchDist    = flag.Float64("touch-distance", 100, "Pixel distance for face-touch detection")

	pgHost     = flag.String("pg-host", "", "PostgreSQL host (enables the Postgres store)")
	pgPort     = flag.String("pg-port", "5432", "PostgreSQL port")
	pgUser     = flag.String("pg-user", "", "PostgreSQL user")
	pgPassword = flag.String("pg-password", "", "PostgreSQL password")
	pgDB       = flag.String("pg-db", "", "PostgreSQL database name")
)

func main() {
	flag.Parse()

	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05",
		}),
	)
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("posturewatch failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := classify.Config{
		ConfidenceThreshold: *confidence,
		FoldAngle:           *foldAngleDeg * math.Pi / 180,
		LeanTolerance:       *leanTolDeg * math.Pi / 180,
		FaceTouchDistance:   *touchDist,
	}
	eval := classify.NewEvaluator(cfg, logger)
	acc := stats.NewAccumulator()

	session := resolveSession(*sessionName, *detectionsPath)

	var pg *storage.PostgresStore
	if *pgHost != "" {
		var err error
		pg, err = storage.NewPostgresStore(ctx, storage.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			User:     *pgUser,
			Password: *pgPassword,
			DBName:   *pgDB,
		}, session)
		if err != nil {
			return err
		}
		defer pg.Close()
		logger.Info("postgres store ready", "session_id", pg.SessionID())
	}

	switch {
	case *listen != "":
		srv := server.New(eval, acc, finderOrNil(pg), logger)
		go func() {
			<-ctx.Done()
			if err := srv.Shutdown(); err != nil {
				logger.Error("shutdown failed", "err", err)
			}
		}()
		return srv.Listen(*listen)

	case *detectionsPath != "":
		return runBatch(ctx, logger, eval, acc, pg, session)

	default:
		fmt.Fprintln(os.Stderr, "Usage: posturewatch -detections detections.jsonl [-output dir] [-report out.html]")
		fmt.Fprintln(os.Stderr, "       posturewatch -listen :8080")
		flag.PrintDefaults()
		os.Exit(2)
		return nil
	}
}

// resolveSession picks the session name shared by every store: the -session
// flag when given, otherwise the detections file name, otherwise "default".
func resolveSession(name, detectionsPath string) string {
	if name != "" {
		return name
	}
	if detectionsPath != "" {
		base := filepath.Base(detectionsPath)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "default"
}

func runBatch(ctx context.Context, logger *slog.Logger, eval *classify.Evaluator, acc *stats.Accumulator, pg *storage.PostgresStore, session string) error {
	file, err := os.Open(*detectionsPath)
	if err != nil {
		return fmt.Errorf("open detections: %w", err)
	}
	defer file.Close()

	var store storage.Store = storage.NewFileStore(*outputDir, session)
	if pg != nil {
		store = pg
	}

	logger.Info("classifying session", "session", session, "detections", *detectionsPath)
	processor := pipeline.NewProcessor(eval, store, acc, logger)
	if err := processor.ProcessStream(ctx, detections.NewReader(file)); err != nil {
		return err
	}

	summary := acc.Summary()
	logger.Info("session complete", "frames", summary.Frames, "tracks", len(summary.Tracks))
	for _, track := range summary.Tracks {
		logger.Info("track summary",
			"track", track.TrackID,
			"frames", track.Frames,
			"arms_folded_pct", track.ArmsFoldedPercent,
			"leaning_pct", track.IsLeaningPercent,
			"face_touched_pct", track.FaceTouchedPercent,
		)
	}

	if *reportPath != "" {
		if err := report.WriteHTML(*reportPath, acc.Timeline()); err != nil {
			return err
		}
		logger.Info("report written", "path", *reportPath)
	}
	return nil
}

// finderOrNil avoids handing the server a typed-nil interface value.
func finderOrNil(pg *storage.PostgresStore) server.SimilarPoseFinder {
	if pg == nil {
		return nil
	}
	return pg
}
