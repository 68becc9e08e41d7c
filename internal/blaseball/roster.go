package blaseball

import (
	"context"
	"time"
)

// RosterResolver is the only I/O surface the reconstruction engine touches
// directly. Results must be idempotent for the same (id, timestamp) pair;
// implementations are free to cache internally.
type RosterResolver interface {
	// LoadTeam returns the team's nickname and its ordered lineup as of
	// timestamp.
	LoadTeam(ctx context.Context, teamID string, timestamp time.Time) (*ResolvedTeam, error)
	// LoadPlayer returns a single player as of timestamp, including the
	// union of their perm/seas/game/item attributes and bat attribute as
	// the effective mod set.
	LoadPlayer(ctx context.Context, playerID string, timestamp time.Time) (*Player, error)
}

// ResolvedTeam is the Roster Resolver's response shape for a team lookup.
type ResolvedTeam struct {
	Nickname string
	Lineup   []*Player
}
