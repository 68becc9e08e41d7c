package replay

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/charmbracelet/log"
)

type fakeRoster struct {
	teams map[string]*blaseball.ResolvedTeam
}

func (f *fakeRoster) LoadTeam(_ context.Context, teamID string, _ time.Time) (*blaseball.ResolvedTeam, error) {
	return f.teams[teamID], nil
}

func (f *fakeRoster) LoadPlayer(_ context.Context, _ string, _ time.Time) (*blaseball.Player, error) {
	return nil, nil
}

func TestRunAdvancesThroughEvents(t *testing.T) {
	away := &blaseball.Player{ID: "away-batter-1", Name: "Jessica Telephone", Mods: map[blaseball.Mod]bool{}}
	home := &blaseball.Player{ID: "home-batter-1", Name: "York Silk", Mods: map[blaseball.Mod]bool{}}
	roster := &fakeRoster{teams: map[string]*blaseball.ResolvedTeam{
		"away-team": {Nickname: "Tigers", Lineup: []*blaseball.Player{away}},
		"home-team": {Nickname: "Moist Talkers", Lineup: []*blaseball.Player{home}},
	}}

	bootstrap := []blaseball.FeedEvent{
		{
			Type: 0, Created: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Data: blaseball.FeedEventData{
				"day": 0, "season": 0, "playCount": 0,
				"awayTeam": "away-team", "homeTeam": "home-team",
				"awayPitcher": "p1", "awayPitcherName": "NaN",
				"homePitcher": "p2", "homePitcherName": "Qais Dogwalker",
				"awayOuts": 3, "homeOuts": 3, "awayStrikes": 3, "homeStrikes": 3, "awayBases": 4, "homeBases": 4,
			},
		},
		{
			Type: 0, Created: time.Date(2024, 3, 1, 0, 0, 1, 0, time.UTC),
			Data: blaseball.FeedEventData{
				"playCount": 1,
				"awayTeam": "away-team", "homeTeam": "home-team",
				"awayPitcher": "p1", "awayPitcherName": "NaN",
				"homePitcher": "p2", "homePitcherName": "Qais Dogwalker",
			},
		},
	}

	rest := []blaseball.FeedEvent{
		{Type: 0, Description: "Let's Go!"},
		{Type: 1, Description: "Play ball!"},
		{Type: 2, Description: "Top of 1, Tigers batting."},
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	result, err := Run(context.Background(), "game-1", bootstrap, rest, roster, nil, logger)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Documents) != len(rest) {
		t.Fatalf("expected %d documents, got %d", len(rest), len(result.Documents))
	}
	if result.Documents[len(result.Documents)-1].Inning != 0 {
		t.Errorf("expected inning 0 after half_inning_start, got %d", result.Documents[len(result.Documents)-1].Inning)
	}
}

func TestDiffReportsFieldMismatches(t *testing.T) {
	got := &blaseball.GameState{Inning: 1, AwayScore: 2}
	want := &blaseball.GameState{Inning: 1, AwayScore: 3}

	mismatches := Diff(got, want)
	found := false
	for _, m := range mismatches {
		if m == "awayScore" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected awayScore mismatch, got %v", mismatches)
	}
}
