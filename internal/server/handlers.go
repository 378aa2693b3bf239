package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poselab/posturewatch/internal/detections"
	"github.com/poselab/posturewatch/internal/pose"
)

// ClassifyRequest mirrors one person detection from the upstream
// model, plus the frame dimensions the keypoints are relative to.
type ClassifyRequest struct {
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	TrackID        int          `json:"track_id"`
	Keypoints      [][2]float64 `json:"keypoints"`
	KeypointScores []float64    `json:"keypoint_scores"`
}

func (r ClassifyRequest) resolve(threshold float64) (pose.Pose, error) {
	detection := detections.PersonDetection{
		TrackID:        r.TrackID,
		Keypoints:      r.Keypoints,
		KeypointScores: r.KeypointScores,
	}
	return detection.Resolve(r.Width, r.Height, threshold)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleClassify classifies a single pose and returns the triple.
func (s *Server) handleClassify(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Width <= 0 || req.Height <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "width and height must be positive"})
	}

	resolved, err := req.resolve(s.eval.Config().ConfidenceThreshold)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(s.eval.Evaluate(resolved))
}

// handleSummary returns the session's running per-track percentages.
func (s *Server) handleSummary(c *fiber.Ctx) error {
	return c.JSON(s.acc.Summary())
}

// handleSimilarPoses resolves the posted pose and returns the nearest
// stored poses. Available only when a pose store is configured.
func (s *Server) handleSimilarPoses(c *fiber.Ctx) error {
	if s.poses == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "pose store not configured"})
	}

	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Width <= 0 || req.Height <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "width and height must be positive"})
	}

	resolved, err := req.resolve(s.eval.Config().ConfidenceThreshold)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 5)
	hits, err := s.poses.SimilarPoses(c.Context(), resolved.Vector(req.Width, req.Height), limit)
	if err != nil {
		s.log.Error("similar pose lookup failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "pose lookup failed"})
	}
	return c.JSON(hits)
}
