package api

import (
	"net/http"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/beiju/blarser-go/internal/blaseball/replay"
	"github.com/beiju/blarser-go/internal/feedclient"
	"github.com/beiju/blarser-go/internal/repository"
	"github.com/charmbracelet/log"
)

// ReconstructRoutes exposes the Replay Driver as an HTTP service: fetch a
// game's feed and snapshots, run it through the state machine, and report
// the resulting documents or the first reconstruction failure.
type ReconstructRoutes struct {
	feed       *feedclient.Client
	roster     blaseball.RosterResolver
	snapshots  *repository.SnapshotRepository
	recons     *repository.ReconstructedGameRepository
	feedEvents *repository.FeedEventRepository
	logger     *log.Logger
}

func NewReconstructRoutes(feed *feedclient.Client, roster blaseball.RosterResolver, snapshots *repository.SnapshotRepository, recons *repository.ReconstructedGameRepository, feedEvents *repository.FeedEventRepository, logger *log.Logger) *ReconstructRoutes {
	return &ReconstructRoutes{feed: feed, roster: roster, snapshots: snapshots, recons: recons, feedEvents: feedEvents, logger: logger}
}

func (rr *ReconstructRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/games/{id}/reconstruct", rr.handleReconstruct)
	mux.HandleFunc("GET /v1/games/{id}/events/{play_count}", rr.handleEventAt)
}

type reconstructResponse struct {
	GameID    string                  `json:"game_id"`
	Documents []*blaseball.GameState  `json:"documents"`
	Mismatch  map[int][]string        `json:"mismatches,omitempty"`
}

// handleReconstruct godoc
// @Summary Reconstruct a game
// @Description Fetches a game's feed and ground-truth snapshots, replays it through the state machine, and returns every produced document
// @Tags reconstruct
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} reconstructResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /games/{id}/reconstruct [get]
func (rr *ReconstructRoutes) handleReconstruct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := r.PathValue("id")

	events, err := rr.feed.FetchEvents(ctx, gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(events) == 0 {
		writeError(w, blaseball.NewNotFoundError("game feed", gameID))
		return
	}

	for _, event := range events {
		if err := rr.feedEvents.Save(ctx, gameID, event); err != nil {
			rr.logger.Warn("failed to persist feed event", "game_id", gameID, "event_id", event.ID, "err", err)
		}
	}

	bootstrapCount := bootstrapEventCount(events)
	bootstrap, rest := events[:bootstrapCount], events[bootstrapCount:]

	lookup := func(event blaseball.FeedEvent) *blaseball.GameState {
		playCount := event.Data.Int("playCount")
		doc, err := rr.snapshots.ByPlayCount(ctx, gameID, playCount)
		if err != nil {
			return nil
		}
		return feedclient.DecodeSnapshot(doc)
	}

	result, err := replay.Run(ctx, gameID, bootstrap, rest, rr.roster, lookup, rr.logger)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := reconstructResponse{GameID: gameID, Documents: result.Documents, Mismatch: map[int][]string{}}
	for i, step := range result.Steps {
		if len(step.Mismatch) > 0 {
			resp.Mismatch[i] = step.Mismatch
		}
		playCount := step.Event.Data.Int("playCount")
		if err := rr.recons.Save(ctx, gameID, playCount, step.Document, step.Mismatch); err != nil {
			rr.logger.Warn("failed to persist reconstructed document", "game_id", gameID, "play_count", playCount, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleEventAt godoc
// @Summary Get the stored snapshot at one tick
// @Description Returns the stored ground-truth snapshot for a given play count, decoded into a document; the engine's reconstructed document for that tick is not returned
// @Tags reconstruct
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param play_count path int true "Play count"
// @Success 200 {object} blaseball.GameState
// @Failure 404 {object} ErrorResponse
// @Router /games/{id}/events/{play_count} [get]
func (rr *ReconstructRoutes) handleEventAt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := r.PathValue("id")
	playCount := getIntPathValue(r, "play_count")

	doc, err := rr.snapshots.ByPlayCount(ctx, gameID, playCount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedclient.DecodeSnapshot(doc))
}

// bootstrapEventCount returns how many leading events belong to the
// bootstrap phase, i.e. every event up to and including the first one with
// playCount > 0 — mirroring the engine's own bootstrap-scan rule.
func bootstrapEventCount(events []blaseball.FeedEvent) int {
	for i, e := range events {
		if e.Data.Int("playCount") > 0 {
			return i + 1
		}
	}
	return len(events)
}
