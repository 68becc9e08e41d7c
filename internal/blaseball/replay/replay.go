// Package replay drives the state machine across one game's full feed,
// event by event, and reports where the produced documents diverge from
// ground-truth snapshots.
package replay

import (
	"context"
	"fmt"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/beiju/blarser-go/internal/blaseball/machine"
	"github.com/charmbracelet/log"
)

// SnapshotLookup returns the ground-truth document to compare against for a
// given feed event, or nil if none is available. The replay driver treats a
// missing snapshot as routine, not an error.
type SnapshotLookup func(event blaseball.FeedEvent) *blaseball.GameState

// Step is one event's outcome: the document the engine produced, and, if a
// snapshot was available, whether every field the snapshot reports matched.
type Step struct {
	Event    blaseball.FeedEvent
	Document *blaseball.GameState
	Mismatch []string // field names that diverged from the snapshot, if any
}

// Result is the full output of replaying one game.
type Result struct {
	GameID    string
	Steps     []Step
	Documents []*blaseball.GameState
}

// Run drives bootstrap then the remainder of events through a fresh Engine,
// in arrival order. lookup may be nil, in which case no snapshot comparison
// is performed.
func Run(ctx context.Context, gameID string, bootstrap []blaseball.FeedEvent, rest []blaseball.FeedEvent, roster blaseball.RosterResolver, lookup SnapshotLookup, logger *log.Logger) (*Result, error) {
	engine, err := machine.NewEngine(ctx, gameID, bootstrap, roster, logger)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping game %s: %w", gameID, err)
	}

	result := &Result{GameID: gameID}
	for _, event := range rest {
		var snapshot *blaseball.GameState
		if lookup != nil {
			snapshot = lookup(event)
		}

		doc, err := engine.Apply(ctx, event, snapshot)
		if err != nil {
			return result, err
		}

		step := Step{Event: event, Document: doc}
		if snapshot != nil {
			step.Mismatch = Diff(doc, snapshot)
		}
		result.Steps = append(result.Steps, step)
		result.Documents = append(result.Documents, doc)
	}
	return result, nil
}

// Diff reports the document fields that differ between a produced document
// and a ground-truth snapshot. It compares the externally observable surface
// a consumer would check, not internal engine bookkeeping.
func Diff(got, want *blaseball.GameState) []string {
	var mismatches []string
	check := func(name string, g, w any) {
		if g != w {
			mismatches = append(mismatches, name)
		}
	}

	check("inning", got.Inning, want.Inning)
	check("topOfInning", got.TopOfInning, want.TopOfInning)
	check("phase", got.Phase, want.Phase)
	check("awayScore", got.AwayScore, want.AwayScore)
	check("homeScore", got.HomeScore, want.HomeScore)
	check("halfInningOuts", got.HalfInningOuts, want.HalfInningOuts)
	check("atBatBalls", got.AtBatBalls, want.AtBatBalls)
	check("atBatStrikes", got.AtBatStrikes, want.AtBatStrikes)
	check("awayBatterName", got.AwayBatterName, want.AwayBatterName)
	check("homeBatterName", got.HomeBatterName, want.HomeBatterName)
	check("lastUpdate", got.LastUpdate, want.LastUpdate)
	check("baserunnerCount", got.BaserunnerCount(), want.BaserunnerCount())
	check("gameComplete", got.GameComplete, want.GameComplete)

	if len(got.Baserunners.Bases) == len(want.Baserunners.Bases) {
		for i := range got.Baserunners.Bases {
			if got.Baserunners.Bases[i] != want.Baserunners.Bases[i] {
				mismatches = append(mismatches, fmt.Sprintf("baserunners[%d].base", i))
			}
		}
	} else {
		mismatches = append(mismatches, "baserunnerCount")
	}

	return mismatches
}
