package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beiju/blarser-go/internal/blaseball"
)

func TestWriteErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", blaseball.NewNotFoundError("snapshot", "game-1@3"), http.StatusNotFound},
		{"reconstruction error", blaseball.NewReconstructionError("game-1", "evt-1", 99, "unknown event type", nil), http.StatusUnprocessableEntity},
		{"generic error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			if rec.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestGetIntPathValueDefaultsOnBadInput(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/games/{id}/events/{play_count}", nil)
	req.SetPathValue("play_count", "not-a-number")
	if got := getIntPathValue(req, "play_count"); got != 0 {
		t.Errorf("expected 0 for unparseable path value, got %d", got)
	}
}

func TestGetIntQueryUsesDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=10", nil)
	if got := getIntQuery(req, "limit", 5); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
	if got := getIntQuery(req, "missing", 5); got != 5 {
		t.Errorf("expected default 5, got %d", got)
	}
}
