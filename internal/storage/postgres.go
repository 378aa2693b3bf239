package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/poselab/posturewatch/internal/models"
)

// PostgresConfig holds connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SimilarPose is one hit from a pose-embedding similarity query.
type SimilarPose struct {
	Frame       int     `json:"frame"`
	TrackID     int     `json:"track_id"`
	ArmsFolded  bool    `json:"arms_folded"`
	IsLeaning   bool    `json:"is_leaning"`
	FaceTouched bool    `json:"face_touched"`
	Distance    float64 `json:"distance"`
}

// PostgresStore persists classification results and their pose
// embeddings for one session.
type PostgresStore struct {
	pool      *pgxpool.Pool
	sessionID uuid.UUID
	session   string
}

// NewPostgresStore connects, ensures the schema, and binds the store
// to the named session, creating the session row if needed.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig, session string) (*PostgresStore, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("storage: connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping database: %w", err)
	}

	s := &PostgresStore{pool: pool, session: session}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := s.ensureSession(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SessionID returns the bound session's id.
func (s *PostgresStore) SessionID() uuid.UUID {
	return s.sessionID
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
        CREATE EXTENSION IF NOT EXISTS vector;

        CREATE TABLE IF NOT EXISTS sessions (
            id UUID PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            UNIQUE(name)
        );

        CREATE TABLE IF NOT EXISTS classifications (
            id SERIAL PRIMARY KEY,
            session_id UUID REFERENCES sessions(id) ON DELETE CASCADE,
            frame_number INTEGER NOT NULL,
            track_id INTEGER NOT NULL,
            arms_folded BOOLEAN NOT NULL,
            is_leaning BOOLEAN NOT NULL,
            face_touched BOOLEAN NOT NULL,
            pose vector(34),
            created_at TIMESTAMPTZ NOT NULL
        );
    `)
	if err != nil {
		return fmt.Errorf("storage: create schema: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        CREATE INDEX IF NOT EXISTS idx_classifications_session_id ON classifications(session_id);
        CREATE INDEX IF NOT EXISTS idx_classifications_pose ON classifications USING ivfflat (pose vector_l2_ops) WITH (lists = 100);
    `)
	if err != nil {
		return fmt.Errorf("storage: create indexes: %w", err)
	}
	return nil
}

func (s *PostgresStore) ensureSession(ctx context.Context) error {
	err := s.pool.QueryRow(ctx,
		"SELECT id FROM sessions WHERE name = $1",
		s.session).Scan(&s.sessionID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("storage: look up session: %w", err)
	}

	s.sessionID = uuid.New()
	_, err = s.pool.Exec(ctx,
		"INSERT INTO sessions (id, name, created_at) VALUES ($1, $2, $3)",
		s.sessionID, s.session, time.Now())
	if err != nil {
		return fmt.Errorf("storage: create session: %w", err)
	}
	return nil
}

// AddResult writes one result row immediately.
func (s *PostgresStore) AddResult(ctx context.Context, result models.FrameResult) error {
	var embedding any
	if len(result.PoseVector) > 0 {
		embedding = pgvector.NewVector(result.PoseVector)
	}

	_, err := s.pool.Exec(ctx, `
        INSERT INTO classifications
            (session_id, frame_number, track_id, arms_folded, is_leaning, face_touched, pose, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.sessionID, result.Frame, result.TrackID,
		result.ArmsFolded, result.IsLeaning, result.FaceTouched,
		embedding, time.Now())
	if err != nil {
		return fmt.Errorf("storage: insert classification: %w", err)
	}
	return nil
}

// Flush is a no-op; writes are immediate.
func (s *PostgresStore) Flush() error {
	return nil
}

// SimilarPoses returns the stored poses nearest to the query embedding
// within this session, closest first.
func (s *PostgresStore) SimilarPoses(ctx context.Context, embedding []float32, limit int) ([]SimilarPose, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.pool.Query(ctx, `
        SELECT frame_number, track_id, arms_folded, is_leaning, face_touched, pose <-> $1 AS distance
        FROM classifications
        WHERE session_id = $2 AND pose IS NOT NULL
        ORDER BY pose <-> $1
        LIMIT $3`,
		pgvector.NewVector(embedding), s.sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query similar poses: %w", err)
	}
	defer rows.Close()

	var hits []SimilarPose
	for rows.Next() {
		var hit SimilarPose
		if err := rows.Scan(&hit.Frame, &hit.TrackID, &hit.ArmsFolded, &hit.IsLeaning, &hit.FaceTouched, &hit.Distance); err != nil {
			return nil, fmt.Errorf("storage: scan similar pose: %w", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate similar poses: %w", err)
	}
	return hits, nil
}
