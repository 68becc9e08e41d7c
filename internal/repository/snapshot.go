package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/beiju/blarser-go/internal/blaseball"
)

// SnapshotRepository stores the ground-truth documents chronicler recorded
// for a game, keyed by (game_id, play_count) — the oracle Property 1
// compares reconstructed output against.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the snapshot recorded for a game at playCount.
func (r *SnapshotRepository) Save(ctx context.Context, gameID string, playCount int, recordedAt time.Time, document map[string]any) error {
	data, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot document: %w", err)
	}

	query := `
		INSERT INTO snapshots (game_id, play_count, recorded_at, document)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id, play_count) DO UPDATE SET
			recorded_at = EXCLUDED.recorded_at,
			document = EXCLUDED.document
	`
	if _, err := r.db.ExecContext(ctx, query, gameID, playCount, recordedAt, data); err != nil {
		return fmt.Errorf("failed to save snapshot for game %s play %d: %w", gameID, playCount, err)
	}
	return nil
}

// ByPlayCount returns the raw document recorded for (gameID, playCount), or
// a NotFoundError if chronicler never recorded one.
func (r *SnapshotRepository) ByPlayCount(ctx context.Context, gameID string, playCount int) (map[string]any, error) {
	query := `SELECT document FROM snapshots WHERE game_id = $1 AND play_count = $2`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, gameID, playCount).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, blaseball.NewNotFoundError("snapshot", fmt.Sprintf("%s@%d", gameID, playCount))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot for game %s play %d: %w", gameID, playCount, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot document: %w", err)
	}
	return doc, nil
}

// PlayCounts lists every play_count a snapshot was recorded for, ascending.
func (r *SnapshotRepository) PlayCounts(ctx context.Context, gameID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT play_count FROM snapshots WHERE game_id = $1 ORDER BY play_count
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot play counts for game %s: %w", gameID, err)
	}
	defer rows.Close()

	var counts []int
	for rows.Next() {
		var c int
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan play count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
