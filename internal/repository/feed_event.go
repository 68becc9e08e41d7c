// Package repository implements the PostgreSQL-backed stores behind the
// Replay Driver: raw feed events, ground-truth snapshots, and reconstructed
// output documents. Queries follow the teacher's raw-SQL-with-$N-placeholders
// style rather than an ORM.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/lib/pq"
)

// FeedEventRepository is an append-only store of the raw feed events fetched
// for a game, kept around for replay and post-hoc debugging.
type FeedEventRepository struct {
	db *sql.DB
}

func NewFeedEventRepository(db *sql.DB) *FeedEventRepository {
	return &FeedEventRepository{db: db}
}

// Save upserts one feed event. Re-fetching the same game is idempotent: the
// event's id is the natural primary key chronicler assigns it.
func (r *FeedEventRepository) Save(ctx context.Context, gameID string, event blaseball.FeedEvent) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal feed event data: %w", err)
	}

	query := `
		INSERT INTO feed_events (id, game_id, event_type, description, created_at, player_tags, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			data = EXCLUDED.data
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, gameID, event.Type, event.Description, event.Created,
		pq.Array(event.PlayerTags), data,
	)
	if err != nil {
		return fmt.Errorf("failed to save feed event %s: %w", event.ID, err)
	}
	return nil
}

// ByGame returns every stored feed event for gameID, ordered by when it was
// created — the order the state machine must apply them in.
func (r *FeedEventRepository) ByGame(ctx context.Context, gameID string) ([]blaseball.FeedEvent, error) {
	query := `
		SELECT id, event_type, description, created_at, player_tags, data
		FROM feed_events
		WHERE game_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed events for game %s: %w", gameID, err)
	}
	defer rows.Close()

	var events []blaseball.FeedEvent
	for rows.Next() {
		var e blaseball.FeedEvent
		var created time.Time
		var tags []string
		var data []byte

		if err := rows.Scan(&e.ID, &e.Type, &e.Description, &created, pq.Array(&tags), &data); err != nil {
			return nil, fmt.Errorf("failed to scan feed event: %w", err)
		}

		e.Created = created
		e.PlayerTags = tags
		if err := json.Unmarshal(data, &e.Data); err != nil {
			return nil, fmt.Errorf("failed to decode feed event data for %s: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
