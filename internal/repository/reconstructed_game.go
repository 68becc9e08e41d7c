package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/lib/pq"
)

// ReconstructedGameRepository stores the Replay Driver's output document at
// each tick, plus whether it diverged from the recorded snapshot at that
// tick and which fields disagreed — the persisted half of Property 1.
type ReconstructedGameRepository struct {
	db *sql.DB
}

func NewReconstructedGameRepository(db *sql.DB) *ReconstructedGameRepository {
	return &ReconstructedGameRepository{db: db}
}

// Save upserts the reconstructed document for (gameID, playCount). diff is
// the list of field names that disagreed with the ground-truth snapshot, or
// nil if there was no snapshot to compare against at this tick.
func (r *ReconstructedGameRepository) Save(ctx context.Context, gameID string, playCount int, doc *blaseball.GameState, diff []string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal reconstructed document: %w", err)
	}

	query := `
		INSERT INTO reconstructed_games (game_id, play_count, document, diverged, divergent_fields)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, play_count) DO UPDATE SET
			document = EXCLUDED.document,
			diverged = EXCLUDED.diverged,
			divergent_fields = EXCLUDED.divergent_fields,
			reconstructed_at = NOW()
	`
	_, err = r.db.ExecContext(ctx, query, gameID, playCount, data, len(diff) > 0, pq.Array(diff))
	if err != nil {
		return fmt.Errorf("failed to save reconstructed game %s play %d: %w", gameID, playCount, err)
	}
	return nil
}

// FirstDivergence returns the earliest play_count at which reconstruction
// disagreed with the recorded snapshot, and the fields that disagreed — or
// ok=false if the game never diverged.
func (r *ReconstructedGameRepository) FirstDivergence(ctx context.Context, gameID string) (playCount int, fields []string, ok bool, err error) {
	query := `
		SELECT play_count, divergent_fields
		FROM reconstructed_games
		WHERE game_id = $1 AND diverged
		ORDER BY play_count
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, gameID)
	if scanErr := row.Scan(&playCount, pq.Array(&fields)); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return 0, nil, false, nil
		}
		return 0, nil, false, fmt.Errorf("failed to query first divergence for game %s: %w", gameID, scanErr)
	}
	return playCount, fields, true, nil
}
