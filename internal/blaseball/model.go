// Package blaseball defines the game-state document, the player/team value
// types, and the narrow interfaces the reconstruction engine depends on.
package blaseball

// Mod is an opaque capability/affliction tag drawn from a known vocabulary.
type Mod string

const (
	ModCoffeeRally Mod = "COFFEE_RALLY"
	ModBlaserunning Mod = "BLASERUNNING"
)

// BatterModOrder and BaserunnerModOrder give the first-present-wins display
// order for the mod shown alongside a player's name in the document.
var (
	PitcherModOrder    = []Mod{ModCoffeeRally}
	BatterModOrder     = []Mod{ModCoffeeRally}
	BaserunnerModOrder = []Mod{ModBlaserunning, ModCoffeeRally}
)

// Player is a roster entity. It is immutable except for its Mods set, which
// is mutated in place when a free refill consumes COFFEE_RALLY. The lineup
// and pitcher slots hold *Player, so the mutation is visible through every
// such reference; the document's baserunner arrays and display-mod fields
// hold copied strings and are rewritten separately when a mod is consumed.
type Player struct {
	ID         string
	Name       string
	Mods       map[Mod]bool
	LegacyItem string
}

// HasMod reports whether the player currently carries the given mod.
func (p *Player) HasMod(m Mod) bool {
	if p == nil || p.Mods == nil {
		return false
	}
	return p.Mods[m]
}

// RemoveMod clears a mod from the player, returning whether it was present.
func (p *Player) RemoveMod(m Mod) bool {
	if p == nil || !p.Mods[m] {
		return false
	}
	delete(p.Mods, m)
	return true
}

// DisplayMod returns the first mod from order that the player carries, or
// the empty string if none match.
func (p *Player) DisplayMod(order []Mod) string {
	if p == nil {
		return ""
	}
	for _, m := range order {
		if p.Mods[m] {
			return string(m)
		}
	}
	return ""
}

// TeamState is the lineup-and-rotation half of a team owned by a GameState.
type TeamState struct {
	Nickname    string
	Pitcher     *Player
	Lineup      []*Player
	BatterIndex int // -1 before the first at-bat
}

// CurrentBatter returns the lineup slot BatterIndex points at, or nil before
// the first at-bat or for an empty lineup.
func (t *TeamState) CurrentBatter() *Player {
	if t == nil || t.BatterIndex < 0 || len(t.Lineup) == 0 {
		return nil
	}
	return t.Lineup[t.BatterIndex%len(t.Lineup)]
}

// AdvanceBatter moves BatterIndex to the next lineup slot, wrapping from the
// last slot back to zero.
func (t *TeamState) AdvanceBatter() {
	if len(t.Lineup) == 0 {
		t.BatterIndex++
		return
	}
	t.BatterIndex = (t.BatterIndex + 1) % len(t.Lineup)
}

// RetreatBatter undoes one AdvanceBatter, used when a half-inning ends on a
// non-batter out so the same batter replays next half.
func (t *TeamState) RetreatBatter() {
	if len(t.Lineup) == 0 {
		t.BatterIndex--
		return
	}
	t.BatterIndex = (t.BatterIndex - 1 + len(t.Lineup)) % len(t.Lineup)
}

// Baserunners holds the four parallel arrays the emitted document contract
// requires. Invariant: all four slices always have equal length.
type Baserunners struct {
	IDs    []string
	Names  []string
	Mods   []string
	Bases  []int
}

// Len returns the baserunner count, i.e. BaserunnerCount in the document.
func (b *Baserunners) Len() int { return len(b.IDs) }

// IndexAtBase returns the slice index of the runner occupying base, or -1.
func (b *Baserunners) IndexAtBase(base int) int {
	for i, occ := range b.Bases {
		if occ == base {
			return i
		}
	}
	return -1
}

// RemoveAt deletes the runner at slice index i from all four arrays.
func (b *Baserunners) RemoveAt(i int) {
	b.IDs = append(b.IDs[:i], b.IDs[i+1:]...)
	b.Names = append(b.Names[:i], b.Names[i+1:]...)
	b.Mods = append(b.Mods[:i], b.Mods[i+1:]...)
	b.Bases = append(b.Bases[:i], b.Bases[i+1:]...)
}

// IndexByName returns the slice index of the first runner with the given
// name, or -1.
func (b *Baserunners) IndexByName(name string) int {
	for i, n := range b.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Clear empties all four arrays, used at the end of a half-inning.
func (b *Baserunners) Clear() {
	b.IDs = nil
	b.Names = nil
	b.Mods = nil
	b.Bases = nil
}

// Haunter is a non-lineup player temporarily occupying the current at-bat.
type Haunter struct {
	Player       *Player
	HauntedName  string // the lineup batter's name this haunter displaced
}

// TriState models expects_reverberate[side]: false, true, or unknown (no
// snapshot was available to decide).
type TriState int

const (
	TriFalse TriState = iota
	TriTrue
	TriUnknown
)

// Side identifies which team is at bat.
type Side int

const (
	Away Side = iota
	Home
)

func (s Side) String() string {
	if s == Away {
		return "away"
	}
	return "home"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Away {
		return Home
	}
	return Away
}

// GameState is the full document the reconstruction engine mutates. Field
// names mirror the emitted document's keys; consumers compare by equality,
// so renaming a field changes the wire contract.
type GameState struct {
	// identity
	ID             string
	Day            int
	Season         int
	Weather        int
	StadiumID      string
	Tournament     int
	SeriesIndex    int
	SeriesLength   int
	StatsheetID    string
	RulesID        string
	TerminologyID  string
	IsPostseason   bool
	IsTitleMatch   bool

	// teams
	AwayTeamID            string
	AwayTeamName          string
	AwayTeamNickname      string
	AwayTeamColor         string
	AwayTeamSecondaryColor string
	AwayTeamEmoji         string
	AwayOdds              float64
	AwayOuts              int
	AwayStrikes           int
	AwayBalls             int
	AwayBases             int

	HomeTeamID             string
	HomeTeamName           string
	HomeTeamNickname       string
	HomeTeamColor          string
	HomeTeamSecondaryColor string
	HomeTeamEmoji          string
	HomeOdds               float64
	HomeOuts               int
	HomeStrikes            int
	HomeBalls              int
	HomeBases              int

	// scoreboard
	AwayScore         float64
	HomeScore         float64
	TopInningScore    float64
	BottomInningScore float64
	HalfInningScore   float64
	Inning            int // -1 = pre-game
	TopOfInning       bool

	// at-bat
	AtBatBalls   int
	AtBatStrikes int

	// away/home rosters and rotation
	AwayTeamState TeamState
	HomeTeamState TeamState

	AwayBatter     string
	AwayBatterName string
	AwayBatterMod  string
	HomeBatter     string
	HomeBatterName string
	HomeBatterMod  string

	AwayPitcher     string
	AwayPitcherName string
	AwayPitcherMod  string
	HomePitcher     string
	HomePitcherName string
	HomePitcherMod  string

	// baserunners
	Baserunners Baserunners

	// progress
	Phase             int
	GameStartPhase    int
	NewInningPhase    int
	HalfInningOuts    int
	PlayCount         int
	AwayTeamBatterCount int
	HomeTeamBatterCount int

	// presentation
	LastUpdate  string
	ScoreUpdate string
	Outcomes    []string

	// termination
	GameStart    bool
	GameComplete bool
	Finalized    bool
	Shame        bool

	// non-document engine state
	Haunter *Haunter
}

// BaserunnerCount mirrors the document's baserunnerCount field.
func (g *GameState) BaserunnerCount() int { return g.Baserunners.Len() }

// Clone returns a deep-enough copy of the document safe to hand to a caller
// while the engine keeps mutating its own copy. Player pointers inside
// TeamState/Haunter are shared (they are looked up, not owned, by the
// document), which matches the arena-of-players model mods mutate through.
func (g *GameState) Clone() *GameState {
	clone := *g
	clone.Baserunners = Baserunners{
		IDs:   append([]string(nil), g.Baserunners.IDs...),
		Names: append([]string(nil), g.Baserunners.Names...),
		Mods:  append([]string(nil), g.Baserunners.Mods...),
		Bases: append([]int(nil), g.Baserunners.Bases...),
	}
	clone.Outcomes = append([]string(nil), g.Outcomes...)
	clone.AwayTeamState.Lineup = append([]*Player(nil), g.AwayTeamState.Lineup...)
	clone.HomeTeamState.Lineup = append([]*Player(nil), g.HomeTeamState.Lineup...)
	return &clone
}

// TeamState returns the TeamState for side.
func (g *GameState) TeamState(side Side) *TeamState {
	if side == Away {
		return &g.AwayTeamState
	}
	return &g.HomeTeamState
}

// TeamOuts, TeamStrikes, TeamBases return the configured limits
// for side, set once from bootstrap events.
func (g *GameState) TeamOuts(side Side) int {
	if side == Away {
		return g.AwayOuts
	}
	return g.HomeOuts
}

func (g *GameState) TeamStrikes(side Side) int {
	if side == Away {
		return g.AwayStrikes
	}
	return g.HomeStrikes
}

func (g *GameState) TeamBases(side Side) int {
	if side == Away {
		return g.AwayBases
	}
	return g.HomeBases
}

// BattingSide/FieldingSide derive from TopOfInning: the away team bats on
// top, the home team bats on the bottom.
func (g *GameState) BattingSide() Side {
	if g.TopOfInning {
		return Away
	}
	return Home
}

func (g *GameState) FieldingSide() Side {
	return g.BattingSide().Opponent()
}

// TeamBatterCount returns the per-team batter counter for side.
func (g *GameState) TeamBatterCount(side Side) int {
	if side == Away {
		return g.AwayTeamBatterCount
	}
	return g.HomeTeamBatterCount
}

func (g *GameState) SetTeamBatterCount(side Side, v int) {
	if side == Away {
		g.AwayTeamBatterCount = v
	} else {
		g.HomeTeamBatterCount = v
	}
}

func (g *GameState) TeamName(side Side) string {
	if side == Away {
		return g.AwayTeamName
	}
	return g.HomeTeamName
}

// BaseNumForHit maps a hit's base name to the zero-indexed base it places
// the batter on.
var BaseNumForHit = map[string]int{
	"Single":     0,
	"Double":     1,
	"Triple":     2,
	"Quadruple":  3,
}

// BaseOrdinalName maps a zero-indexed base to the ordinal name used in
// descriptions like "steals second base!".
var BaseOrdinalName = map[int]string{
	0: "first",
	1: "second",
	2: "third",
	3: "fourth",
}
