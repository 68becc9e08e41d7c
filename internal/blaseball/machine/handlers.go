package machine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/beiju/blarser-go/internal/blaseball/descriptor"
)

var baseNumForName = map[string]int{
	"first":  0,
	"second": 1,
	"third":  2,
	"fourth": 3,
}

func (e *Engine) handleLetsGo(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.letsGo, "lets_go"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	const description = "Let's Go!"
	if event.Description != description {
		return nil, e.failf(event, "expected description %q, got %q", description, event.Description)
	}
	e.exp.toPlayBall()

	e.Doc.LastUpdate = description
	e.Doc.GameStart = true
	e.Doc.Phase = 1

	e.Doc.AwayPitcher = e.Doc.AwayTeamState.Pitcher.ID
	e.Doc.AwayPitcherName = e.Doc.AwayTeamState.Pitcher.Name
	e.Doc.AwayPitcherMod = e.Doc.AwayTeamState.Pitcher.DisplayMod(blaseball.PitcherModOrder)
	e.Doc.AwayTeamBatterCount = -1

	e.Doc.HomePitcher = e.Doc.HomeTeamState.Pitcher.ID
	e.Doc.HomePitcherName = e.Doc.HomeTeamState.Pitcher.Name
	e.Doc.HomePitcherMod = e.Doc.HomeTeamState.Pitcher.DisplayMod(blaseball.PitcherModOrder)
	e.Doc.HomeTeamBatterCount = -1

	return nil, nil
}

// handlePlayBall emits a document with pitcher fields blanked to match the
// intermission snapshot, while the running state keeps populated pitcher
// fields. The handler performs the playCount increment itself (matching the
// running state to the emitted copy) and returns a non-nil override, which
// causes Apply to skip its own increment.
func (e *Engine) handlePlayBall(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.playBall, "play_ball"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	const description = "Play ball!"
	if event.Description != description {
		return nil, e.failf(event, "expected description %q, got %q", description, event.Description)
	}
	e.exp.toHalfInningStart()

	e.Doc.Phase = 2
	e.Doc.Inning = -1
	e.Doc.LastUpdate = description
	e.Doc.TopOfInning = false
	e.Doc.PlayCount++

	override := e.Doc.Clone()
	override.AwayPitcher, override.AwayPitcherName, override.AwayPitcherMod = "", "", ""
	override.HomePitcher, override.HomePitcherName, override.HomePitcherMod = "", "", ""
	override.HomeTeamBatterCount = -1
	return override, nil
}

func (e *Engine) handleHalfInningStart(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.halfInningStart, "half_inning_start"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}

	e.Doc.Phase = 6
	if !e.Doc.TopOfInning {
		if e.Doc.Inning == -1 {
			e.Doc.GameStartPhase = 10
		} else {
			e.Doc.GameStartPhase++
		}
		e.Doc.Inning++
	}
	e.Doc.TopOfInning = !e.Doc.TopOfInning
	e.Doc.HalfInningScore = 0

	topOrBottom := "Bottom"
	if e.Doc.TopOfInning {
		topOrBottom = "Top"
	}
	description := fmt.Sprintf("%s of %d, %s batting.", topOrBottom, e.Doc.Inning+1, e.Doc.TeamName(e.Doc.BattingSide()))
	if description != event.Description {
		return nil, e.failf(event, "expected description %q, got %q", description, event.Description)
	}
	e.Doc.LastUpdate = description

	e.exp.toBatterUp()
	return nil, nil
}

func (e *Engine) handleBatterUp(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.batterUp, "batter_up"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}

	parsed, err := descriptor.ParseBatterUp(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing batter_up", err)
	}

	side := e.Doc.BattingSide()
	ts := e.battingTeam()
	if e.exp.reverberate[side] != blaseball.TriTrue {
		ts.AdvanceBatter()
	}

	if parsed.Haunting != nil {
		if len(event.PlayerTags) == 0 {
			return nil, e.failf(event, "inhabiting batter_up has no playerTags to resolve the haunter")
		}
		haunter, err := e.roster.LoadPlayer(context.Background(), event.PlayerTags[0], event.Created)
		if err != nil {
			return nil, e.fail(event, "loading haunter", err)
		}
		if haunter.Name != parsed.Haunting.HaunterName {
			return nil, e.failf(event, "haunter name %q does not match resolved player %q", parsed.Haunting.HaunterName, haunter.Name)
		}
		current := e.batter()
		if current == nil || current.Name != parsed.Haunting.HauntedName {
			return nil, e.failf(event, "haunted name %q does not match current lineup batter", parsed.Haunting.HauntedName)
		}
		e.Doc.Haunter = &blaseball.Haunter{Player: haunter, HauntedName: parsed.Haunting.HauntedName}
	}

	batter := e.batter()
	if batter == nil {
		return nil, e.failf(event, "no current batter to resolve batter_up against")
	}

	if ts.Nickname != parsed.TeamNickname {
		return nil, e.failf(event, "parsed team nickname %q does not match %q", parsed.TeamNickname, ts.Nickname)
	}
	if batter.Name != parsed.BatterName {
		return nil, e.failf(event, "parsed batter name %q does not match %q", parsed.BatterName, batter.Name)
	}
	for _, item := range parsed.Wielding {
		if item != batter.LegacyItem {
			return nil, e.failf(event, "wielding item %q does not match legacy item %q", item, batter.LegacyItem)
		}
	}

	if side == blaseball.Away {
		e.Doc.AwayBatter, e.Doc.AwayBatterName, e.Doc.AwayBatterMod = batter.ID, batter.Name, batter.DisplayMod(blaseball.BatterModOrder)
	} else {
		e.Doc.HomeBatter, e.Doc.HomeBatterName, e.Doc.HomeBatterMod = batter.ID, batter.Name, batter.DisplayMod(blaseball.BatterModOrder)
	}

	e.Doc.LastUpdate = event.Description
	e.Doc.SetTeamBatterCount(side, e.Doc.TeamBatterCount(side)+1)

	e.exp.toPitch()
	return nil, nil
}

func (e *Engine) handleBaseSteal(event blaseball.FeedEvent, snapshot *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseSteal(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing steal", err)
	}

	baseStolen, ok := baseNumForName[parsed.BaseName]
	if !ok {
		return nil, e.failf(event, "unknown base name %q", parsed.BaseName)
	}

	stealerIdx := e.Doc.Baserunners.IndexAtBase(baseStolen - 1)
	if stealerIdx < 0 {
		return nil, e.failf(event, "no runner on base %d to attempt a steal of %s", baseStolen-1, parsed.BaseName)
	}
	if e.Doc.Baserunners.Names[stealerIdx] != parsed.Runner {
		return nil, e.failf(event, "stealer name %q does not match %q on base", parsed.Runner, e.Doc.Baserunners.Names[stealerIdx])
	}

	var runsScored float64
	if !parsed.CaughtStealing {
		e.Doc.Baserunners.Bases[stealerIdx]++
		expectsExtras := false

		if parsed.Blaserunning {
			runsScored += e.scoreRuns(0.2)
			expectsExtras = true
		}

		if baseStolen+1 == e.Doc.TeamBases(e.Doc.BattingSide()) {
			r, err := e.scorePlayer(event, parsed.Runner)
			if err != nil {
				return nil, err
			}
			runsScored += r
			expectsExtras = true
		}

		if expectsExtras {
			if err := e.applyScoringExtras(event, parsed.Extras); err != nil {
				return nil, err
			}
		} else if len(parsed.Extras) != 0 {
			return nil, e.failf(event, "unexpected free refill on a steal that did not score")
		}
	} else {
		e.Doc.Baserunners.RemoveAt(stealerIdx)
		if err := e.updateOut(event, snapshot, false); err != nil {
			return nil, err
		}
	}

	e.recordRuns(runsScored)
	e.Doc.LastUpdate = event.Description
	return nil, nil
}

func (e *Engine) handleWalk(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseWalk(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing walk", err)
	}
	batter := e.batter()
	if batter == nil || batter.Name != parsed.BatterName {
		return nil, e.failf(event, "walker %q does not match current batter", parsed.BatterName)
	}

	e.playerToBase(batter, 0)
	e.endAtBat()
	if err := e.updateScores(event, parsed.Scores); err != nil {
		return nil, err
	}
	e.Doc.LastUpdate = event.Description
	return nil, nil
}

func (e *Engine) handleStrikeout(event blaseball.FeedEvent, snapshot *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseStrikeout(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing strikeout", err)
	}

	batter := e.batter()
	if batter == nil {
		return nil, e.failf(event, "no current batter")
	}
	side := e.Doc.BattingSide()

	if !parsed.Charm {
		if batter.Name != parsed.BatterName {
			return nil, e.failf(event, "strikeout batter %q does not match %q", parsed.BatterName, batter.Name)
		}
		if e.Doc.AtBatStrikes+1 != e.Doc.TeamStrikes(side) {
			return nil, e.failf(event, "strikeout with atBatStrikes=%d, teamStrikes=%d", e.Doc.AtBatStrikes, e.Doc.TeamStrikes(side))
		}
	} else {
		if parsed.PitcherName != e.fieldingTeam().Pitcher.Name {
			return nil, e.failf(event, "charming pitcher %q does not match fielding pitcher %q", parsed.PitcherName, e.fieldingTeam().Pitcher.Name)
		}
		if parsed.BatterName != batter.Name {
			return nil, e.failf(event, "charmed batter %q does not match current batter %q", parsed.BatterName, batter.Name)
		}
		if parsed.Swings != e.Doc.TeamStrikes(side) {
			return nil, e.failf(event, "charm swings %d does not equal teamStrikes %d", parsed.Swings, e.Doc.TeamStrikes(side))
		}
	}

	e.Doc.LastUpdate = event.Description
	if err := e.updateOut(event, snapshot, true); err != nil {
		return nil, err
	}
	return nil, nil
}

func (e *Engine) handleFlyout(event blaseball.FeedEvent, snapshot *blaseball.GameState) (*blaseball.GameState, error) {
	return nil, e.updateFieldingOut(event, snapshot)
}

func (e *Engine) handleGroundOut(event blaseball.FeedEvent, snapshot *blaseball.GameState) (*blaseball.GameState, error) {
	return nil, e.updateFieldingOut(event, snapshot)
}

func (e *Engine) updateFieldingOut(event blaseball.FeedEvent, snapshot *blaseball.GameState) error {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseFieldingOut(event.Description)
	if err != nil {
		return e.fail(event, "parsing fielding_out", err)
	}

	batter := e.batter()
	if batter == nil {
		return e.failf(event, "no current batter")
	}

	scores := parsed.Scores
	batterName := parsed.BatterName

	switch parsed.Kind {
	case descriptor.GroundOut, descriptor.Flyout:
		found := false
		for _, d := range e.fieldingTeam().Lineup {
			if d.Name == parsed.Fielder {
				found = true
				break
			}
		}
		if !found {
			return e.failf(event, "fielder %q is not in the fielding lineup", parsed.Fielder)
		}

	case descriptor.DoublePlay:
		side := e.Doc.BattingSide()
		e.Doc.HalfInningOuts++
		if e.Doc.HalfInningOuts >= e.Doc.TeamOuts(side) {
			return e.failf(event, "the first out of a double play cannot end the half-inning")
		}
		if err := e.updateScores(event, scores); err != nil {
			return err
		}
		scores = nil

		if e.Doc.HalfInningOuts+1 < e.Doc.TeamOuts(side) {
			if snapshot == nil {
				return e.failf(event, "double play out identity requires a snapshot hint")
			}
			outID, err := diffOneBaserunner(e.Doc.Baserunners.IDs, snapshot.Baserunners.IDs)
			if err != nil {
				return e.fail(event, "identifying double play out", err)
			}
			if idx := indexOfString(e.Doc.Baserunners.IDs, outID); idx >= 0 {
				e.Doc.Baserunners.RemoveAt(idx)
			}
		}

	case descriptor.FieldersChoice:
		runnerIdx := e.Doc.Baserunners.IndexByName(parsed.RunnerOut)
		if runnerIdx < 0 {
			return e.failf(event, "fielder's choice runner %q is not on base", parsed.RunnerOut)
		}
		e.Doc.Baserunners.RemoveAt(runnerIdx)
		e.playerToBase(batter, 0)
	}

	if batter.Name != batterName {
		return e.failf(event, "batter %q does not match %q", batterName, batter.Name)
	}

	if err := e.updateScores(event, scores); err != nil {
		return err
	}
	e.Doc.LastUpdate = event.Description

	if err := e.updateOut(event, snapshot, true); err != nil {
		return err
	}
	e.maybeAdvanceBaserunners(snapshot)
	return nil
}

func diffOneBaserunner(running, snap []string) (string, error) {
	snapSet := make(map[string]bool, len(snap))
	for _, id := range snap {
		snapSet[id] = true
	}
	var diff []string
	for _, id := range running {
		if !snapSet[id] {
			diff = append(diff, id)
		}
	}
	if len(diff) != 1 {
		return "", fmt.Errorf("expected exactly one baserunner absent from the snapshot, got %d", len(diff))
	}
	return diff[0], nil
}

func indexOfString(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func (e *Engine) handleHomeRun(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseHomeRun(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing home_run", err)
	}

	if err := e.applyScoringExtras(event, parsed.Extras); err != nil {
		return nil, err
	}

	for i := 0; i < parsed.Count-1; i++ {
		if e.Doc.Baserunners.Len() == 0 {
			return nil, e.failf(event, "home run for %d runs but fewer baserunners remained", parsed.Count)
		}
		e.Doc.Baserunners.RemoveAt(0)
	}
	if e.Doc.Baserunners.Len() != 0 {
		return nil, e.failf(event, "home run did not clear the bases: %d baserunners remain", e.Doc.Baserunners.Len())
	}

	e.Doc.LastUpdate = event.Description
	runs := e.scoreRuns(float64(parsed.Count))
	e.recordRuns(runs)
	e.endAtBat()
	return nil, nil
}

func (e *Engine) handleHit(event blaseball.FeedEvent, snapshot *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseHit(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing hit", err)
	}

	batter := e.batter()
	if batter == nil || batter.Name != parsed.BatterName {
		return nil, e.failf(event, "hit batter %q does not match current batter", parsed.BatterName)
	}

	if err := e.updateScores(event, parsed.Scores); err != nil {
		return nil, err
	}

	baseNum, ok := blaseball.BaseNumForHit[parsed.BaseName]
	if !ok {
		return nil, e.failf(event, "unknown hit base name %q", parsed.BaseName)
	}

	e.Doc.LastUpdate = event.Description
	e.playerToBase(batter, baseNum)
	e.endAtBat()
	e.maybeAdvanceBaserunners(snapshot)
	return nil, nil
}

func (e *Engine) handleGameScore(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.gameEnd, "game_end"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}

	awayText := fmt.Sprintf("%s %s", e.Doc.AwayTeamNickname, formatScore(e.Doc.AwayScore))
	homeText := fmt.Sprintf("%s %s", e.Doc.HomeTeamNickname, formatScore(e.Doc.HomeScore))

	var description string
	if e.Doc.HomeScore > e.Doc.AwayScore {
		description = homeText + ", " + awayText
	} else {
		description = awayText + ", " + homeText
	}
	if description != event.Description {
		return nil, e.failf(event, "expected description %q, got %q", description, event.Description)
	}

	e.Doc.LastUpdate = description
	e.Doc.Finalized = true
	e.Doc.GameComplete = true
	return nil, nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

func (e *Engine) handleBall(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	e.Doc.AtBatBalls++
	if err := e.updateCount(event, []string{"Ball"}); err != nil {
		return nil, err
	}
	return nil, nil
}

func (e *Engine) handleStrike(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	e.Doc.AtBatStrikes++
	if err := e.updateCount(event, []string{"Strike, swinging", "Strike, looking", "Strike, flinching"}); err != nil {
		return nil, err
	}
	return nil, nil
}

func (e *Engine) handleFoulBall(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	side := e.Doc.BattingSide()
	if e.Doc.AtBatStrikes+1 < e.Doc.TeamStrikes(side) {
		e.Doc.AtBatStrikes++
	}
	if err := e.updateCount(event, []string{"Foul Ball"}); err != nil {
		return nil, err
	}
	return nil, nil
}

func (e *Engine) updateCount(event blaseball.FeedEvent, options []string) error {
	for _, text := range options {
		description := fmt.Sprintf("%s. %d-%d", text, e.Doc.AtBatBalls, e.Doc.AtBatStrikes)
		if description == event.Description {
			e.Doc.LastUpdate = description
			return nil
		}
	}
	return e.failf(event, "description %q does not match any of %v at count %d-%d", event.Description, options, e.Doc.AtBatBalls, e.Doc.AtBatStrikes)
}

func (e *Engine) handleStrikeZapped(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	const description = "The Electricity zaps a strike away!"
	if event.Description != description {
		return nil, e.failf(event, "expected description %q, got %q", description, event.Description)
	}
	e.Doc.LastUpdate = description
	if e.Doc.AtBatStrikes <= 0 {
		return nil, e.failf(event, "strike_zapped with atBatStrikes=%d", e.Doc.AtBatStrikes)
	}
	e.Doc.AtBatStrikes--
	return nil, nil
}

func (e *Engine) handleMildPitch(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseMildPitch(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing mild_pitch", err)
	}

	if parsed.PitcherName != e.fieldingTeam().Pitcher.Name {
		return nil, e.failf(event, "mild pitch pitcher %q does not match fielding pitcher %q", parsed.PitcherName, e.fieldingTeam().Pitcher.Name)
	}

	if !parsed.IsWalk {
		e.Doc.AtBatBalls++
		if e.Doc.AtBatBalls != parsed.Balls || e.Doc.AtBatStrikes != parsed.Strikes {
			return nil, e.failf(event, "mild pitch count %d-%d does not match running %d-%d", parsed.Balls, parsed.Strikes, e.Doc.AtBatBalls, e.Doc.AtBatStrikes)
		}
	} else {
		batter := e.batter()
		if batter == nil || batter.Name != parsed.WalkerName {
			return nil, e.failf(event, "mild pitch walker %q does not match current batter", parsed.WalkerName)
		}
		e.playerToBase(batter, 0)
		e.endAtBat()
	}

	if err := e.updateScores(event, parsed.Scores); err != nil {
		return nil, err
	}
	e.Doc.LastUpdate = event.Description
	return nil, nil
}

func (e *Engine) handleInningEnd(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.inningEnd, "inning_end"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	description := fmt.Sprintf("Inning %d is now an Outing.", e.Doc.Inning+1)
	if description != event.Description {
		return nil, e.failf(event, "expected description %q, got %q", description, event.Description)
	}
	e.Doc.LastUpdate = description
	e.Doc.Phase = 2
	e.exp.toHalfInningStart()
	return nil, nil
}

func (e *Engine) handleBlooddrain(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	if _, err := descriptor.ParseBlooddrainStrike(event.Description); err != nil {
		return nil, e.fail(event, "parsing blooddrain (only the blooddrain_strike siphon action is supported)", err)
	}

	e.Doc.AtBatStrikes++
	side := e.Doc.BattingSide()
	if e.Doc.AtBatStrikes >= e.Doc.TeamStrikes(side) {
		return nil, e.failf(event, "blooddrain strike cannot be the strike that ends the at-bat")
	}

	e.Doc.LastUpdate = event.Description
	return nil, nil
}

func (e *Engine) handleCoffeeBean(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	parsed, err := descriptor.ParseCoffeeBean(event.Description)
	if err != nil {
		return nil, e.fail(event, "parsing coffee_bean", err)
	}
	if parsed.PlayerName != parsed.ModPlayerName {
		return nil, e.failf(event, "coffee bean player %q does not match mod player %q", parsed.PlayerName, parsed.ModPlayerName)
	}

	e.Doc.LastUpdate = event.Description
	return nil, nil
}

func (e *Engine) handleNoStateChangePitch(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.pitch, "pitch"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	e.Doc.LastUpdate = event.Description
	return nil, nil
}

func (e *Engine) handleNoStateChangeBatterUp(event blaseball.FeedEvent, _ *blaseball.GameState) (*blaseball.GameState, error) {
	if err := e.exp.require(e.exp.batterUp, "batter_up"); err != nil {
		return nil, e.fail(event, err.Error(), err)
	}
	e.Doc.LastUpdate = event.Description
	return nil, nil
}
