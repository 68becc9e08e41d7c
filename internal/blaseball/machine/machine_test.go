package machine

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/charmbracelet/log"
)

type fakeRoster struct {
	teams   map[string]*blaseball.ResolvedTeam
	players map[string]*blaseball.Player
}

func (f *fakeRoster) LoadTeam(_ context.Context, teamID string, _ time.Time) (*blaseball.ResolvedTeam, error) {
	return f.teams[teamID], nil
}

func (f *fakeRoster) LoadPlayer(_ context.Context, playerID string, _ time.Time) (*blaseball.Player, error) {
	return f.players[playerID], nil
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	away := &blaseball.Player{ID: "away-batter-1", Name: "Jessica Telephone", Mods: map[blaseball.Mod]bool{}}
	home := &blaseball.Player{ID: "home-batter-1", Name: "York Silk", Mods: map[blaseball.Mod]bool{}}

	roster := &fakeRoster{
		teams: map[string]*blaseball.ResolvedTeam{
			"away-team": {Nickname: "Tigers", Lineup: []*blaseball.Player{away}},
			"home-team": {Nickname: "Moist Talkers", Lineup: []*blaseball.Player{home}},
		},
	}

	bootstrap := []blaseball.FeedEvent{
		{
			Type:    0,
			Created: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Data: blaseball.FeedEventData{
				"day": 0, "season": 0, "weather": 1, "playCount": 0,
				"awayTeam": "away-team", "homeTeam": "home-team",
				"awayTeamName": "Tigers", "awayTeamNickname": "Tigers",
				"homeTeamName": "Moist Talkers", "homeTeamNickname": "Moist Talkers",
				"awayPitcher": "away-pitcher", "awayPitcherName": "NaN",
				"homePitcher": "home-pitcher", "homePitcherName": "Qais Dogwalker",
				"awayOuts": 3, "homeOuts": 3, "awayStrikes": 3, "homeStrikes": 3, "awayBases": 4, "homeBases": 4,
			},
		},
		{
			Type:    0,
			Created: time.Date(2024, 3, 1, 0, 0, 1, 0, time.UTC),
			Data: blaseball.FeedEventData{
				"playCount": 1,
				"awayTeam": "away-team", "homeTeam": "home-team",
				"awayPitcher": "away-pitcher", "awayPitcherName": "NaN",
				"homePitcher": "home-pitcher", "homePitcherName": "Qais Dogwalker",
			},
		},
	}

	engine, err := NewEngine(context.Background(), "game-1", bootstrap, roster, testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestBootstrapInitialDocument(t *testing.T) {
	e := newTestEngine(t)

	if e.Doc.Phase != 2 || e.Doc.Inning != 0 || !e.Doc.TopOfInning {
		t.Errorf("unexpected initial document: phase=%d inning=%d top=%v", e.Doc.Phase, e.Doc.Inning, e.Doc.TopOfInning)
	}
	if e.Doc.AwayTeamState.Pitcher.Name != "NaN" || e.Doc.HomeTeamState.Pitcher.Name != "Qais Dogwalker" {
		t.Errorf("pitchers not resolved: away=%q home=%q", e.Doc.AwayTeamState.Pitcher.Name, e.Doc.HomeTeamState.Pitcher.Name)
	}
}

func TestLetsGoThenPlayBall(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	doc, err := e.Apply(ctx, blaseball.FeedEvent{Type: 0, Description: "Let's Go!"}, nil)
	if err != nil {
		t.Fatalf("lets_go: %v", err)
	}
	if doc.PlayCount != 1 || !doc.GameStart {
		t.Errorf("unexpected document after lets_go: %+v", doc)
	}
	if doc.AwayPitcherName != "NaN" || doc.AwayTeamBatterCount != -1 {
		t.Errorf("pitcher fields not populated after lets_go: %+v", doc)
	}

	doc, err = e.Apply(ctx, blaseball.FeedEvent{Type: 1, Description: "Play ball!"}, nil)
	if err != nil {
		t.Fatalf("play_ball: %v", err)
	}
	if doc.PlayCount != 2 {
		t.Errorf("expected playCount=2 after play_ball, got %d", doc.PlayCount)
	}
	if doc.AwayPitcherName != "" || doc.HomePitcherName != "" {
		t.Errorf("expected blanked pitcher fields in the play_ball snapshot, got %+v", doc)
	}
	if e.Doc.AwayPitcherName != "NaN" {
		t.Errorf("running state should keep the populated pitcher name, got %q", e.Doc.AwayPitcherName)
	}
}

func TestHalfInningStartThenBatterUp(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 0, Description: "Let's Go!"}, nil); err != nil {
		t.Fatalf("lets_go: %v", err)
	}
	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 1, Description: "Play ball!"}, nil); err != nil {
		t.Fatalf("play_ball: %v", err)
	}

	doc, err := e.Apply(ctx, blaseball.FeedEvent{Type: 2, Description: "Top of 1, Tigers batting."}, nil)
	if err != nil {
		t.Fatalf("half_inning_start: %v", err)
	}
	if doc.Inning != 0 || !doc.TopOfInning {
		t.Errorf("unexpected inning state: inning=%d top=%v", doc.Inning, doc.TopOfInning)
	}

	doc, err = e.Apply(ctx, blaseball.FeedEvent{Type: 12, Description: "Jessica Telephone batting for the Tigers."}, nil)
	if err != nil {
		t.Fatalf("batter_up: %v", err)
	}
	if doc.AwayBatterName != "Jessica Telephone" {
		t.Errorf("expected Jessica Telephone at bat, got %q", doc.AwayBatterName)
	}
}

func playThroughBatterUp(t *testing.T, e *Engine, description string) {
	t.Helper()
	ctx := context.Background()
	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 0, Description: "Let's Go!"}, nil); err != nil {
		t.Fatalf("lets_go: %v", err)
	}
	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 1, Description: "Play ball!"}, nil); err != nil {
		t.Fatalf("play_ball: %v", err)
	}
	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 2, Description: "Top of 1, Tigers batting."}, nil); err != nil {
		t.Fatalf("half_inning_start: %v", err)
	}
	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 12, Description: description}, nil); err != nil {
		t.Fatalf("batter_up: %v", err)
	}
}

func TestBallAndStrikeCounting(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	playThroughBatterUp(t, e, "Jessica Telephone batting for the Tigers.")

	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 14, Description: "Ball. 1-0"}, nil); err != nil {
		t.Fatalf("ball: %v", err)
	}
	if e.Doc.AtBatBalls != 1 {
		t.Errorf("expected 1 ball, got %d", e.Doc.AtBatBalls)
	}

	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 13, Description: "Strike, swinging. 1-1"}, nil); err != nil {
		t.Fatalf("strike: %v", err)
	}
	if e.Doc.AtBatStrikes != 1 {
		t.Errorf("expected 1 strike, got %d", e.Doc.AtBatStrikes)
	}

	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 14, Description: "wrong description"}, nil); err == nil {
		t.Errorf("expected an error for a mismatched count description")
	}
}

func TestHomeRunClearsBasesAndScores(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	playThroughBatterUp(t, e, "Jessica Telephone batting for the Tigers.")

	doc, err := e.Apply(ctx, blaseball.FeedEvent{Type: 9, Description: "Jessica Telephone hits a solo home run!"}, nil)
	if err != nil {
		t.Fatalf("home_run: %v", err)
	}
	if doc.AwayScore != 1 {
		t.Errorf("expected away score 1, got %v", doc.AwayScore)
	}
	if doc.Baserunners.Len() != 0 {
		t.Errorf("expected empty bases after a solo home run, got %d", doc.Baserunners.Len())
	}
	if doc.ScoreUpdate != "1 Run scored!" {
		t.Errorf("expected singular run message, got %q", doc.ScoreUpdate)
	}
}

func TestStrikeoutEndsAtBatNotHalfInning(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	playThroughBatterUp(t, e, "Jessica Telephone batting for the Tigers.")

	e.Doc.AtBatStrikes = 2
	doc, err := e.Apply(ctx, blaseball.FeedEvent{Type: 6, Description: "Jessica Telephone strikes out swinging."}, nil)
	if err != nil {
		t.Fatalf("strikeout: %v", err)
	}
	if doc.HalfInningOuts != 1 {
		t.Errorf("expected 1 out, got %d", doc.HalfInningOuts)
	}
	if doc.AwayBatterName != "" {
		t.Errorf("expected the at-bat to be cleared, got batter %q", doc.AwayBatterName)
	}
}

func TestWalkPlacesBatterOnFirst(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	playThroughBatterUp(t, e, "Jessica Telephone batting for the Tigers.")

	doc, err := e.Apply(ctx, blaseball.FeedEvent{Type: 5, Description: "Jessica Telephone draws a walk."}, nil)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if doc.Baserunners.Len() != 1 || doc.Baserunners.Names[0] != "Jessica Telephone" || doc.Baserunners.Bases[0] != 0 {
		t.Errorf("unexpected baserunners: %+v", doc.Baserunners)
	}
}

func TestWrongExpectationIsRejected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if _, err := e.Apply(ctx, blaseball.FeedEvent{Type: 1, Description: "Play ball!"}, nil); err == nil {
		t.Errorf("expected an error applying play_ball before lets_go")
	}
}

func TestPlayCountIncreasesMonotonically(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	last := -1
	events := []blaseball.FeedEvent{
		{Type: 0, Description: "Let's Go!"},
		{Type: 1, Description: "Play ball!"},
		{Type: 2, Description: "Top of 1, Tigers batting."},
		{Type: 12, Description: "Jessica Telephone batting for the Tigers."},
	}
	for _, event := range events {
		doc, err := e.Apply(ctx, event, nil)
		if err != nil {
			t.Fatalf("applying event type %d: %v", event.Type, err)
		}
		if doc.PlayCount <= last {
			t.Errorf("playCount did not strictly increase: was %d, now %d", last, doc.PlayCount)
		}
		last = doc.PlayCount
	}
}
