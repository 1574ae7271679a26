package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNoSnapshot is returned when a match has no stored snapshot.
var ErrNoSnapshot = errors.New("no snapshot")

// SnapshotRow is one stored match state.
type SnapshotRow struct {
	Tick  uint64
	Phase string
	State []byte // msgpack-encoded match.State
}

// ResultRow is the final record of a match.
type ResultRow struct {
	Outcome      string
	FinalPhase   string
	Ticks        uint64
	ReplayDigest string
}

// MatchRepo handles match lifecycle rows: creation, snapshots and results.
type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Create registers a new match.
func (r *MatchRepo) Create(ctx context.Context, id uuid.UUID, level string) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO matches (match_id, level) VALUES ($1, $2)`,
		id, level,
	)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

// SaveSnapshot stores the state at a tick, replacing any snapshot already
// stored for that tick.
func (r *MatchRepo) SaveSnapshot(ctx context.Context, id uuid.UUID, s SnapshotRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO match_snapshots (match_id, tick, phase, state)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (match_id, tick) DO UPDATE SET phase = EXCLUDED.phase, state = EXCLUDED.state`,
		id, int64(s.Tick), s.Phase, s.State,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot of a match.
func (r *MatchRepo) LatestSnapshot(ctx context.Context, id uuid.UUID) (SnapshotRow, error) {
	var (
		s    SnapshotRow
		tick int64
	)
	err := r.db.Pool.QueryRow(ctx,
		`SELECT tick, phase, state FROM match_snapshots
		 WHERE match_id = $1 ORDER BY tick DESC LIMIT 1`,
		id,
	).Scan(&tick, &s.Phase, &s.State)
	if errors.Is(err, pgx.ErrNoRows) {
		return SnapshotRow{}, ErrNoSnapshot
	}
	if err != nil {
		return SnapshotRow{}, fmt.Errorf("load snapshot: %w", err)
	}
	s.Tick = uint64(tick)
	return s, nil
}

// Finish stores the match result.
func (r *MatchRepo) Finish(ctx context.Context, id uuid.UUID, res ResultRow) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE matches
		 SET finished_at = now(), outcome = $2, final_phase = $3, ticks = $4, replay_digest = $5
		 WHERE match_id = $1`,
		id, res.Outcome, res.FinalPhase, int64(res.Ticks), res.ReplayDigest,
	)
	if err != nil {
		return fmt.Errorf("finish match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finish match %s: not found", id)
	}
	return nil
}
