// Package api exposes the Replay Driver as an HTTP service.
//
// @title Blaseball Reconstruction API
// @version 1.0
// @description Replays a game's feed through the deterministic state machine and reports the resulting documents.
// @BasePath /v1
package api

import (
	"database/sql"
	"net/http"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/beiju/blarser-go/internal/docs"
	"github.com/beiju/blarser-go/internal/feedclient"
	"github.com/beiju/blarser-go/internal/repository"
	"github.com/charmbracelet/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server is the top-level HTTP handler: a ServeMux with every route
// registrar wired in, plus the health check, docs, and debug/vars mounts.
type Server struct {
	*http.ServeMux
}

// NewServer wires the repositories backing persisted feed events,
// snapshots, and reconstructed documents, and registers every route group
// on a fresh mux.
func NewServer(db *sql.DB, feed *feedclient.Client, roster blaseball.RosterResolver, logger *log.Logger) *Server {
	feedEvents := repository.NewFeedEventRepository(db)
	snapshots := repository.NewSnapshotRepository(db)
	recons := repository.NewReconstructedGameRepository(db)

	reconstruct := NewReconstructRoutes(feed, roster, snapshots, recons, feedEvents, logger)

	return newServer(reconstruct)
}

func newServer(registrars ...Registrar) *Server {
	docs.SwaggerInfo.BasePath = "/v1"
	mux := http.NewServeMux()

	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	})

	mux.Handle("/docs/", httpSwagger.WrapHandler)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusFound)
	})
	mux.Handle("GET /debug/vars", http.DefaultServeMux)

	return &Server{ServeMux: mux}
}
