package machine

import (
	"context"
	"strconv"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/beiju/blarser-go/internal/blaseball/descriptor"
)

// handlerFunc processes one feed event against the engine's running
// document. A non-nil override is returned verbatim to the caller instead
// of a copy of the running document, for the one handler (play_ball) whose
// emitted snapshot deliberately diverges from the state it leaves behind.
type handlerFunc func(e *Engine, event blaseball.FeedEvent, snapshot *blaseball.GameState) (override *blaseball.GameState, err error)

var dispatch = map[int]handlerFunc{
	0:  (*Engine).handleLetsGo,
	1:  (*Engine).handlePlayBall,
	2:  (*Engine).handleHalfInningStart,
	4:  (*Engine).handleBaseSteal,
	5:  (*Engine).handleWalk,
	6:  (*Engine).handleStrikeout,
	7:  (*Engine).handleFlyout,
	8:  (*Engine).handleGroundOut,
	9:  (*Engine).handleHomeRun,
	10: (*Engine).handleHit,
	11: (*Engine).handleGameScore,
	12: (*Engine).handleBatterUp,
	13: (*Engine).handleStrike,
	14: (*Engine).handleBall,
	15: (*Engine).handleFoulBall,
	25: (*Engine).handleStrikeZapped,
	27: (*Engine).handleMildPitch,
	28: (*Engine).handleInningEnd,
	39: (*Engine).handleCoffeeBean,
	52: (*Engine).handleBlooddrain,
	73: (*Engine).handleNoStateChangePitch,
	92: (*Engine).handleNoStateChangeBatterUp,
}

// Apply dispatches one feed event against the engine's document, returning
// the resulting document. snapshot, if non-nil, is consulted by the
// advancement oracle and by reverberation/double-play out detection; it is
// never required.
func (e *Engine) Apply(ctx context.Context, event blaseball.FeedEvent, snapshot *blaseball.GameState) (*blaseball.GameState, error) {
	e.Doc.ScoreUpdate = ""

	h, ok := dispatch[event.Type]
	if !ok {
		return nil, e.failf(event, "unknown event type %d", event.Type)
	}

	override, err := h(e, event, snapshot)
	if err != nil {
		return nil, err
	}
	if override != nil {
		return override, nil
	}

	e.Doc.PlayCount++
	return e.Doc.Clone(), nil
}

// batter returns the haunter if one is set for this at-bat, else the
// batting team's current lineup slot.
func (e *Engine) batter() *blaseball.Player {
	if e.Doc.Haunter != nil {
		return e.Doc.Haunter.Player
	}
	ts := e.Doc.TeamState(e.Doc.BattingSide())
	return ts.CurrentBatter()
}

func (e *Engine) battingTeam() *blaseball.TeamState { return e.Doc.TeamState(e.Doc.BattingSide()) }
func (e *Engine) fieldingTeam() *blaseball.TeamState { return e.Doc.TeamState(e.Doc.FieldingSide()) }

// playerToBase appends player to the baserunner arrays at baseNum, then
// walks occupancy from the highest base down, pushing any runner at or
// below the highest base seen so far ahead of it. This keeps baseOccupied
// strictly increasing from the back without renumbering scored runners.
func (e *Engine) playerToBase(player *blaseball.Player, baseNum int) {
	br := &e.Doc.Baserunners
	br.IDs = append(br.IDs, player.ID)
	br.Names = append(br.Names, player.Name)
	br.Mods = append(br.Mods, player.DisplayMod(blaseball.BaserunnerModOrder))
	br.Bases = append(br.Bases, baseNum)

	highest := -1
	for i := len(br.Bases) - 1; i >= 0; i-- {
		if br.Bases[i] <= highest {
			br.Bases[i] = highest + 1
		}
		highest = br.Bases[i]
	}
}

// scorePlayer removes the named baserunner (first occurrence) and credits
// one run.
func (e *Engine) scorePlayer(event blaseball.FeedEvent, name string) (float64, error) {
	idx := e.Doc.Baserunners.IndexByName(name)
	if idx < 0 {
		return 0, e.failf(event, "scoring player %q is not on base", name)
	}
	e.Doc.Baserunners.RemoveAt(idx)
	return e.scoreRuns(1), nil
}

// scoreRuns credits r runs (possibly fractional, e.g. 0.2 for blaserunning)
// to the batting team's score and the relevant inning totals.
func (e *Engine) scoreRuns(r float64) float64 {
	side := e.Doc.BattingSide()
	if side == blaseball.Away {
		e.Doc.AwayScore += r
	} else {
		e.Doc.HomeScore += r
	}
	e.Doc.HalfInningScore += r
	if e.Doc.TopOfInning {
		e.Doc.TopInningScore += r
	} else {
		e.Doc.BottomInningScore += r
	}
	return r
}

func (e *Engine) recordRuns(runsScored float64) {
	if runsScored == 1 {
		e.Doc.ScoreUpdate = "1 Run scored!"
	} else if runsScored != 0 {
		e.Doc.ScoreUpdate = formatRuns(runsScored)
	}
}

func formatRuns(r float64) string {
	return strconv.FormatFloat(r, 'g', -1, 64) + " Runs scored!"
}

// updateScores applies zero or more score/sacrifice children: for each,
// apply its free-refill extras first (while the baserunner arrays still
// hold the about-to-score player), then credit the run.
func (e *Engine) updateScores(event blaseball.FeedEvent, scores []descriptor.ScoreEvent) error {
	var total float64
	for _, s := range scores {
		if err := e.applyScoringExtras(event, s.Extras); err != nil {
			return err
		}
		runs, err := e.scorePlayer(event, s.Name)
		if err != nil {
			return err
		}
		total += runs
	}
	e.recordRuns(total)
	return nil
}

// applyScoringExtras consumes one use_free_refill(name, name) child per
// extra: decrements halfInningOuts, then clears COFFEE_RALLY from the
// fielding pitcher (checked first) or else the unique batting-lineup player
// matching by name, updating whichever display-mod field shows it.
func (e *Engine) applyScoringExtras(event blaseball.FeedEvent, extras []string) error {
	for _, name := range extras {
		batter := e.batter()
		pitcher := e.fieldingTeam().Pitcher
		onBase := e.Doc.Baserunners.IndexByName(name) >= 0

		if batter == nil || (name != batter.Name && name != pitcher.Name && !onBase) {
			return e.failf(event, "free refill used by %q who is not the batter, fielding pitcher, or a baserunner", name)
		}

		e.Doc.HalfInningOuts--

		if pitcher.Name == name && pitcher.HasMod(blaseball.ModCoffeeRally) {
			pitcher.RemoveMod(blaseball.ModCoffeeRally)
			fieldingSide := e.Doc.FieldingSide()
			mod := pitcher.DisplayMod(blaseball.PitcherModOrder)
			if fieldingSide == blaseball.Away {
				e.Doc.AwayPitcherMod = mod
			} else {
				e.Doc.HomePitcherMod = mod
			}
			continue
		}

		var refiller *blaseball.Player
		for _, p := range e.battingTeam().Lineup {
			if p.Name == name && p.HasMod(blaseball.ModCoffeeRally) {
				if refiller != nil {
					return e.failf(event, "ambiguous free refill: two players named %q carry COFFEE_RALLY", name)
				}
				refiller = p
			}
		}
		if refiller == nil {
			return e.failf(event, "no COFFEE_RALLY holder named %q found to consume free refill", name)
		}
		refiller.RemoveMod(blaseball.ModCoffeeRally)

		if b := e.batter(); b != nil && b.ID == refiller.ID {
			mod := refiller.DisplayMod(blaseball.BatterModOrder)
			if e.Doc.BattingSide() == blaseball.Away {
				e.Doc.AwayBatterMod = mod
			} else {
				e.Doc.HomeBatterMod = mod
			}
		}
		for i, id := range e.Doc.Baserunners.IDs {
			if id == refiller.ID {
				e.Doc.Baserunners.Mods[i] = refiller.DisplayMod(blaseball.BaserunnerModOrder)
			}
		}
	}
	return nil
}

// updateOut increments halfInningOuts and ends the half-inning or the
// at-bat as appropriate, then resolves the reverberation latch for the
// fielding... no, for the *current batting* side from the snapshot's batter
// count, exactly as the source's `prefix()`-scoped comparison does.
func (e *Engine) updateOut(event blaseball.FeedEvent, snapshot *blaseball.GameState, forBatter bool) error {
	e.Doc.HalfInningOuts++
	side := e.Doc.BattingSide()

	ended := e.Doc.HalfInningOuts >= e.Doc.TeamOuts(side)
	if ended {
		if err := e.endHalfInning(event, forBatter); err != nil {
			return err
		}
	} else if forBatter {
		e.endAtBat()
	}

	if snapshot == nil {
		e.exp.reverberate[side] = blaseball.TriUnknown
		return nil
	}

	diff := e.Doc.TeamBatterCount(side) - snapshot.TeamBatterCount(side)
	switch diff {
	case 0:
		e.exp.reverberate[side] = blaseball.TriFalse
	case 1:
		e.exp.reverberate[side] = blaseball.TriTrue
		e.Doc.SetTeamBatterCount(side, e.Doc.TeamBatterCount(side)-1)
	default:
		return e.failf(event, "team batter count diverged from snapshot by %d, expected 0 or 1", diff)
	}
	return nil
}

// endAtBat blanks the current batter's at-bat fields and clears the
// haunter, flipping expectations back to batter_up.
func (e *Engine) endAtBat() {
	side := e.Doc.BattingSide()
	if side == blaseball.Away {
		e.Doc.AwayBatter, e.Doc.AwayBatterName, e.Doc.AwayBatterMod = "", "", ""
	} else {
		e.Doc.HomeBatter, e.Doc.HomeBatterName, e.Doc.HomeBatterMod = "", "", ""
	}
	e.Doc.AtBatBalls = 0
	e.Doc.AtBatStrikes = 0
	e.Doc.Haunter = nil

	e.exp.pitch = false
	e.exp.batterUp = true
}

// endHalfInning clears baserunners and outs, resets the half/inning score
// totals if the bottom half just ended, and — if the out did not belong to
// the batter — un-counts this at-bat and rewinds the batting order so the
// same batter leads off next half. If the game is now over (9th inning or
// later, batting team trailing on the cumulative score) it ends the game
// instead of expecting the next half or the inning-end event.
func (e *Engine) endHalfInning(event blaseball.FeedEvent, forBatter bool) error {
	e.endAtBat()

	e.Doc.Baserunners.Clear()
	e.Doc.HalfInningOuts = 0
	e.Doc.Phase = 3

	wasBottom := !e.Doc.TopOfInning
	if wasBottom {
		e.Doc.TopInningScore = 0
		e.Doc.BottomInningScore = 0
		e.Doc.HalfInningScore = 0
	}

	side := e.Doc.BattingSide()
	if !forBatter {
		e.Doc.SetTeamBatterCount(side, e.Doc.TeamBatterCount(side)-1)
		e.battingTeam().RetreatBatter()
	}

	e.exp.batterUp = false

	battingScore, opponentScore := e.Doc.AwayScore, e.Doc.HomeScore
	if side == blaseball.Home {
		battingScore, opponentScore = e.Doc.HomeScore, e.Doc.AwayScore
	}
	if e.Doc.Inning >= 8 && battingScore < opponentScore {
		e.endGame()
		return nil
	}

	if e.Doc.TopOfInning {
		e.exp.toHalfInningStart()
	} else {
		e.exp.toInningEnd()
	}
	return nil
}

func (e *Engine) endGame() {
	e.Doc.TopInningScore = 0
	e.Doc.BottomInningScore = 0
	e.Doc.HalfInningScore = 0
	e.Doc.Phase = 7
	e.exp.toGameEnd()
}

// maybeAdvanceBaserunners is the advancement oracle: the feed can't express
// non-forced base advances on hits and outs, so when a snapshot is present
// and its occupancy array is the same length as ours, we just copy it over.
func (e *Engine) maybeAdvanceBaserunners(snapshot *blaseball.GameState) {
	if snapshot == nil {
		return
	}
	if len(e.Doc.Baserunners.Bases) != len(snapshot.Baserunners.Bases) {
		return
	}
	copy(e.Doc.Baserunners.Bases, snapshot.Baserunners.Bases)
}
