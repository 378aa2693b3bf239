// Package server exposes pose classification over HTTP for hosts that
// stream detections instead of batching them through the CLI.
package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/poselab/posturewatch/internal/classify"
	"github.com/poselab/posturewatch/internal/stats"
	"github.com/poselab/posturewatch/internal/storage"
)

// SimilarPoseFinder looks up stored poses near a query embedding. The
// Postgres store satisfies it; the server runs without one.
type SimilarPoseFinder interface {
	SimilarPoses(ctx context.Context, embedding []float32, limit int) ([]storage.SimilarPose, error)
}

// Server wires the evaluator and session accumulator into a fiber app.
type Server struct {
	app   *fiber.App
	eval  *classify.Evaluator
	acc   *stats.Accumulator
	poses SimilarPoseFinder
	log   *slog.Logger
}

// New builds the HTTP server. poses may be nil when no pose store is
// configured.
func New(eval *classify.Evaluator, acc *stats.Accumulator, poses SimilarPoseFinder, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		eval:  eval,
		acc:   acc,
		poses: poses,
		log:   log,
	}

	app := fiber.New(fiber.Config{
		AppName:               "posturewatch",
		DisableStartupMessage: true,
	})

	app.Get("/healthz", s.handleHealth)
	app.Post("/v1/classify", s.handleClassify)
	app.Get("/v1/summary", s.handleSummary)
	app.Post("/v1/poses/similar", s.handleSimilarPoses)

	s.app = app
	return s
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
