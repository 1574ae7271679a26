package persist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EventRow is one match event destined for the match_events log.
type EventRow struct {
	Tick   uint64
	Kind   string // "phase", "outcome", "wave", "actor_removed"
	Detail string
}

// EventLogRepo appends match events in batches.
type EventLogRepo struct {
	db *DB
}

func NewEventLogRepo(db *DB) *EventLogRepo {
	return &EventLogRepo{db: db}
}

// Write atomically appends a batch of events in a single transaction.
// Returns nil on success; on failure none of the batch is stored.
func (r *EventLogRepo) Write(ctx context.Context, matchID uuid.UUID, entries []EventRow) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("event log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_events (match_id, tick, kind, detail)
			 VALUES ($1, $2, $3, $4)`,
			matchID, int64(e.Tick), e.Kind, e.Detail,
		); err != nil {
			return fmt.Errorf("event log insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Count returns the number of logged events for a match.
func (r *EventLogRepo) Count(ctx context.Context, matchID uuid.UUID) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM match_events WHERE match_id = $1`, matchID,
	).Scan(&n)
	return n, err
}
