package machine

import (
	"context"
	"fmt"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/charmbracelet/log"
)

// Engine owns one game's document and the expectation flags that gate which
// event types may legally arrive next. It is not safe for concurrent use —
// the spec models one game as strictly single-threaded and cooperative.
type Engine struct {
	GameID string
	Doc    *blaseball.GameState
	exp    expectations
	roster blaseball.RosterResolver
	logger *log.Logger
}

// NewEngine bootstraps a fresh Engine from the ordered collection of
// bootstrap events a game's feed begins with, resolving both teams' rosters
// through roster. Events with playCount == 0 carry the wrong timestamp (a
// quirk of the upstream feed), so the roster-resolution timestamp is taken
// from the first event with playCount > 0.
func NewEngine(ctx context.Context, gameID string, bootstrap []blaseball.FeedEvent, roster blaseball.RosterResolver, logger *log.Logger) (*Engine, error) {
	if len(bootstrap) == 0 {
		return nil, blaseball.NewReconstructionError(gameID, "", 0, "bootstrap has no events", nil)
	}

	var timestamp *blaseball.FeedEvent
	for i := range bootstrap {
		if bootstrap[i].Data.Int("playCount") > 0 {
			timestamp = &bootstrap[i]
			break
		}
	}
	if timestamp == nil {
		return nil, blaseball.NewReconstructionError(gameID, "", 0, "no bootstrap event with playCount > 0", nil)
	}

	awayTeamID := blaseball.FirstTruthyString(bootstrap, "awayTeam")
	homeTeamID := blaseball.FirstTruthyString(bootstrap, "homeTeam")

	awayTeam, err := roster.LoadTeam(ctx, awayTeamID, timestamp.Created)
	if err != nil {
		return nil, blaseball.NewReconstructionError(gameID, "", 0, "loading away roster", err)
	}
	homeTeam, err := roster.LoadTeam(ctx, homeTeamID, timestamp.Created)
	if err != nil {
		return nil, blaseball.NewReconstructionError(gameID, "", 0, "loading home roster", err)
	}

	awayPitcher := &blaseball.Player{
		ID:   blaseball.FirstTruthyString(bootstrap, "awayPitcher"),
		Name: blaseball.FirstTruthyString(bootstrap, "awayPitcherName"),
		Mods: blaseball.UnionNonEmpty(bootstrap, "awayPitcherMod"),
	}
	homePitcher := &blaseball.Player{
		ID:   blaseball.FirstTruthyString(bootstrap, "homePitcher"),
		Name: blaseball.FirstTruthyString(bootstrap, "homePitcherName"),
		Mods: blaseball.UnionNonEmpty(bootstrap, "homePitcherMod"),
	}
	if awayPitcher.ID == "" || awayPitcher.Name == "" {
		return nil, blaseball.NewReconstructionError(gameID, "", 0, "away pitcher missing id or name in bootstrap", nil)
	}
	if homePitcher.ID == "" || homePitcher.Name == "" {
		return nil, blaseball.NewReconstructionError(gameID, "", 0, "home pitcher missing id or name in bootstrap", nil)
	}

	first := bootstrap[0].Data

	doc := &blaseball.GameState{
		ID:            gameID,
		Day:           first.Int("day"),
		RulesID:       first.String("rules"),
		Shame:         false,
		Inning:        0,
		Season:        first.Int("season"),
		Weather:       first.Int("weather"),
		StadiumID:     first.String("stadiumId"),
		StatsheetID:   first.String("statsheet"),
		Tournament:    first.Int("tournament"),
		SeriesIndex:   first.Int("seriesIndex"),
		SeriesLength:  first.Int("seriesLength"),
		TerminologyID: first.String("terminology"),
		IsPostseason:  first.Bool("isPostseason"),
		IsTitleMatch:  first.Bool("isTitleMatch"),

		AwayOdds:               blaseball.FirstTruthyFloat(bootstrap, "awayOdds"),
		AwayOuts:               blaseball.FirstTruthyInt(bootstrap, "awayOuts"),
		AwayTeamID:             awayTeamID,
		AwayBalls:              blaseball.FirstTruthyInt(bootstrap, "awayBalls"),
		AwayBases:              blaseball.FirstTruthyInt(bootstrap, "awayBases"),
		AwayStrikes:            blaseball.FirstTruthyInt(bootstrap, "awayStrikes"),
		AwayTeamName:           blaseball.FirstTruthyString(bootstrap, "awayTeamName"),
		AwayTeamNickname:       blaseball.FirstTruthyString(bootstrap, "awayTeamNickname"),
		AwayTeamColor:          blaseball.FirstTruthyString(bootstrap, "awayTeamColor"),
		AwayTeamSecondaryColor: blaseball.FirstTruthyString(bootstrap, "awayTeamSecondaryColor"),
		AwayTeamEmoji:          blaseball.FirstTruthyString(bootstrap, "awayTeamEmoji"),

		HomeOdds:               blaseball.FirstTruthyFloat(bootstrap, "homeOdds"),
		HomeOuts:               blaseball.FirstTruthyInt(bootstrap, "homeOuts"),
		HomeTeamID:             homeTeamID,
		HomeBalls:              blaseball.FirstTruthyInt(bootstrap, "homeBalls"),
		HomeBases:              blaseball.FirstTruthyInt(bootstrap, "homeBases"),
		HomeStrikes:            blaseball.FirstTruthyInt(bootstrap, "homeStrikes"),
		HomeTeamName:           blaseball.FirstTruthyString(bootstrap, "homeTeamName"),
		HomeTeamNickname:       blaseball.FirstTruthyString(bootstrap, "homeTeamNickname"),
		HomeTeamColor:          blaseball.FirstTruthyString(bootstrap, "homeTeamColor"),
		HomeTeamSecondaryColor: blaseball.FirstTruthyString(bootstrap, "homeTeamSecondaryColor"),
		HomeTeamEmoji:          blaseball.FirstTruthyString(bootstrap, "homeTeamEmoji"),

		Phase:          2,
		GameStartPhase: -1,
		NewInningPhase: -1,
		TopOfInning:    true,

		AwayTeamState: blaseball.TeamState{
			Nickname:    awayTeam.Nickname,
			Pitcher:     awayPitcher,
			Lineup:      awayTeam.Lineup,
			BatterIndex: -1,
		},
		HomeTeamState: blaseball.TeamState{
			Nickname:    homeTeam.Nickname,
			Pitcher:     homePitcher,
			Lineup:      homeTeam.Lineup,
			BatterIndex: -1,
		},
	}

	return &Engine{
		GameID: gameID,
		Doc:    doc,
		exp:    newExpectations(),
		roster: roster,
		logger: logger,
	}, nil
}

func (e *Engine) fail(event blaseball.FeedEvent, reason string, cause error) error {
	err := blaseball.NewReconstructionError(e.GameID, event.ID, event.Type, reason, cause)
	if e.logger != nil {
		e.logger.With("game_id", e.GameID, "event_id", event.ID, "event_type", event.Type).Error(reason, "err", err)
	}
	return err
}

func (e *Engine) failf(event blaseball.FeedEvent, format string, args ...any) error {
	return e.fail(event, fmt.Sprintf(format, args...), nil)
}
