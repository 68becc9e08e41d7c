package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beiju/blarser-go/internal/cache"
)

func TestLoadTeamDecodesLineupAndMods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := teamResponse{
			Nickname: "Tigers",
			Lineup: []playerSource{
				{ID: "p1", Name: "Jessica Telephone", SeasAttr: []string{"COFFEE_RALLY"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	r := New(nil, server.URL, cache.NewClient(nil, cache.Config{Enabled: false}), time.Hour, nil)
	team, err := r.LoadTeam(context.Background(), "team-1", time.Now())
	if err != nil {
		t.Fatalf("LoadTeam: %v", err)
	}
	if team.Nickname != "Tigers" || len(team.Lineup) != 1 {
		t.Fatalf("unexpected team: %+v", team)
	}
	if !team.Lineup[0].HasMod("COFFEE_RALLY") {
		t.Errorf("expected lineup player to carry COFFEE_RALLY")
	}
}

func TestLoadPlayerUnionsAttrGroups(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := playerResponse{ID: "p1", Name: "York Silk", PermAttr: []string{"BLASERUNNING"}}
		resp.Bat.Name = "Vibe Check"
		resp.Bat.Attr = []string{"COFFEE_RALLY"}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	r := New(nil, server.URL, cache.NewClient(nil, cache.Config{Enabled: false}), time.Hour, nil)
	player, err := r.LoadPlayer(context.Background(), "p1", time.Now())
	if err != nil {
		t.Fatalf("LoadPlayer: %v", err)
	}
	if !player.HasMod("BLASERUNNING") || !player.HasMod("COFFEE_RALLY") {
		t.Errorf("expected union of perm and bat attrs, got %+v", player.Mods)
	}
	if player.LegacyItem != "Vibe Check" {
		t.Errorf("expected legacy item from bat.name, got %q", player.LegacyItem)
	}
}

func TestLoadTeamPropagatesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	r := New(nil, server.URL, cache.NewClient(nil, cache.Config{Enabled: false}), time.Hour, nil)
	if _, err := r.LoadTeam(context.Background(), "team-1", time.Now()); err == nil {
		t.Errorf("expected an error for a non-200 upstream response")
	}
}
