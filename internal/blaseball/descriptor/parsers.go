package descriptor

import (
	"strconv"
	"strings"
)

func lines(description string) []string {
	return strings.Split(description, "\n")
}

// parseScores parses zero or more trailing score/sacrifice lines, each
// optionally followed by use_free_refill lines that belong to it.
func parseScores(ls []string) []ScoreEvent {
	var out []ScoreEvent
	for i := 0; i < len(ls); i++ {
		var ev ScoreEvent
		if g := match(reScore, ls[i]); g != nil {
			ev = ScoreEvent{Name: g["name"]}
		} else if g := match(reSacrifice, ls[i]); g != nil {
			ev = ScoreEvent{Name: g["name"], Sacrifice: true}
		} else {
			continue
		}
		for i+1 < len(ls) {
			g := match(reUseFreeRefill, ls[i+1])
			if g == nil {
				break
			}
			ev.Extras = append(ev.Extras, g["name"])
			i++
		}
		out = append(out, ev)
	}
	return out
}

// ParseBatterUp parses a batter_up event description.
func ParseBatterUp(description string) (*BatterUp, error) {
	ls := lines(description)
	idx := 0

	var haunting *Haunting
	if idx < len(ls) {
		if g := match(reInhabiting, ls[idx]); g != nil {
			haunting = &Haunting{HaunterName: g["haunter"], HauntedName: g["haunted"]}
			idx++
		}
	}

	if idx >= len(ls) {
		return nil, &ParseError{Family: "batter_up", Description: description}
	}
	g := match(reBatterUp, ls[idx])
	if g == nil {
		return nil, &ParseError{Family: "batter_up", Description: description}
	}
	idx++

	result := &BatterUp{BatterName: g["batter"], TeamNickname: g["team"], Haunting: haunting}
	for ; idx < len(ls); idx++ {
		wg := match(reWielding, ls[idx])
		if wg == nil {
			return nil, &ParseError{Family: "batter_up", Description: description}
		}
		result.Wielding = append(result.Wielding, wg["item"])
	}
	return result, nil
}

// ParseSteal parses a base_steal event description.
func ParseSteal(description string) (*Steal, error) {
	ls := lines(description)
	if len(ls) == 0 {
		return nil, &ParseError{Family: "steal", Description: description}
	}

	if g := match(reStolenBase, ls[0]); g != nil {
		result := &Steal{Runner: g["runner"], BaseName: g["base"]}
		idx := 1
		if idx < len(ls) {
			if bg := match(reBlaserunning, ls[idx]); bg != nil {
				result.Blaserunning = true
				idx++
			}
		}
		for ; idx < len(ls); idx++ {
			rg := match(reUseFreeRefill, ls[idx])
			if rg == nil {
				return nil, &ParseError{Family: "steal", Description: description}
			}
			result.Extras = append(result.Extras, rg["name"])
		}
		return result, nil
	}

	if g := match(reCaughtStealing, ls[0]); g != nil {
		return &Steal{CaughtStealing: true, Runner: g["runner"], BaseName: g["base"]}, nil
	}

	return nil, &ParseError{Family: "steal", Description: description}
}

// ParseWalk parses a walk event description.
func ParseWalk(description string) (*Walk, error) {
	ls := lines(description)
	if len(ls) == 0 {
		return nil, &ParseError{Family: "walk", Description: description}
	}
	g := match(reWalk, ls[0])
	if g == nil {
		return nil, &ParseError{Family: "walk", Description: description}
	}
	return &Walk{BatterName: g["batter"], Scores: parseScores(ls[1:])}, nil
}

// ParseStrikeout parses a strikeout event description.
func ParseStrikeout(description string) (*Strikeout, error) {
	ls := lines(description)
	if len(ls) == 0 {
		return nil, &ParseError{Family: "strikeout", Description: description}
	}
	if g := match(reStrikeoutSwinging, ls[0]); g != nil {
		return &Strikeout{BatterName: g["batter"], Looking: false}, nil
	}
	if g := match(reStrikeoutLooking, ls[0]); g != nil {
		return &Strikeout{BatterName: g["batter"], Looking: true}, nil
	}
	if len(ls) >= 2 {
		if cg := match(reCharmed, ls[0]); cg != nil {
			if sg := match(reCharmSwings, ls[1]); sg != nil {
				swings, err := strconv.Atoi(sg["swings"])
				if err != nil {
					return nil, &ParseError{Family: "strikeout", Description: description}
				}
				return &Strikeout{
					Charm:       true,
					PitcherName: cg["pitcher"],
					BatterName:  cg["batter"],
					Swings:      swings,
				}, nil
			}
		}
	}
	return nil, &ParseError{Family: "strikeout", Description: description}
}

// ParseFieldingOut parses a flyout/ground_out event description.
func ParseFieldingOut(description string) (*FieldingOut, error) {
	ls := lines(description)
	if len(ls) == 0 {
		return nil, &ParseError{Family: "fielding_out", Description: description}
	}

	if g := match(reGroundOut, ls[0]); g != nil {
		return &FieldingOut{Kind: GroundOut, BatterName: g["batter"], Fielder: g["fielder"], Scores: parseScores(ls[1:])}, nil
	}
	if g := match(reFlyout, ls[0]); g != nil {
		return &FieldingOut{Kind: Flyout, BatterName: g["batter"], Fielder: g["fielder"], Scores: parseScores(ls[1:])}, nil
	}
	if g := match(reDoublePlay, ls[0]); g != nil {
		return &FieldingOut{Kind: DoublePlay, BatterName: g["batter"], Scores: parseScores(ls[1:])}, nil
	}
	if g := match(reOutAtBase, ls[0]); g != nil {
		// Trailing lines are: zero-or-more scores, then the reaches(batter)
		// line as the last entry.
		if len(ls) < 2 {
			return nil, &ParseError{Family: "fielding_out", Description: description}
		}
		last := ls[len(ls)-1]
		rg := match(reReachesFC, last)
		if rg == nil {
			return nil, &ParseError{Family: "fielding_out", Description: description}
		}
		return &FieldingOut{
			Kind:       FieldersChoice,
			RunnerOut:  g["runner"],
			BaseName:   g["base"],
			BatterName: rg["batter"],
			Scores:     parseScores(ls[1 : len(ls)-1]),
		}, nil
	}

	return nil, &ParseError{Family: "fielding_out", Description: description}
}

// ParseHit parses a hit event description.
func ParseHit(description string) (*Hit, error) {
	ls := lines(description)
	if len(ls) == 0 {
		return nil, &ParseError{Family: "hit", Description: description}
	}
	g := match(reHit, ls[0])
	if g == nil {
		return nil, &ParseError{Family: "hit", Description: description}
	}
	result := &Hit{BatterName: g["batter"], BaseName: g["base"]}
	idx := 1
	if idx < len(ls) {
		if hg := match(reHeatingUp, ls[idx]); hg != nil {
			result.HeatingUp = true
			idx++
		}
	}
	result.Scores = parseScores(ls[idx:])
	return result, nil
}

// ParseHomeRun parses a home_run event description.
func ParseHomeRun(description string) (*HomeRun, error) {
	ls := lines(description)
	if len(ls) == 0 {
		return nil, &ParseError{Family: "home_run", Description: description}
	}
	if g := match(reSoloHR, ls[0]); g != nil {
		return &HomeRun{BatterName: g["batter"], Count: 1, Extras: parseFreeRefills(ls[1:])}, nil
	}
	if g := match(reMultiHR, ls[0]); g != nil {
		count, err := strconv.Atoi(g["count"])
		if err != nil {
			return nil, &ParseError{Family: "home_run", Description: description}
		}
		return &HomeRun{BatterName: g["batter"], Count: count, Extras: parseFreeRefills(ls[1:])}, nil
	}
	return nil, &ParseError{Family: "home_run", Description: description}
}

func parseFreeRefills(ls []string) []string {
	var names []string
	for _, l := range ls {
		if g := match(reUseFreeRefill, l); g != nil {
			names = append(names, g["name"])
		}
	}
	return names
}

// ParseMildPitch parses a mild_pitch event description.
func ParseMildPitch(description string) (*MildPitch, error) {
	ls := lines(description)
	if len(ls) < 2 {
		return nil, &ParseError{Family: "mild_pitch", Description: description}
	}
	g := match(reMildPitch, ls[0])
	if g == nil {
		return nil, &ParseError{Family: "mild_pitch", Description: description}
	}
	result := &MildPitch{PitcherName: g["pitcher"]}

	if bg := match(reMildBall, ls[1]); bg != nil {
		balls, err1 := strconv.Atoi(bg["balls"])
		strikes, err2 := strconv.Atoi(bg["strikes"])
		if err1 != nil || err2 != nil {
			return nil, &ParseError{Family: "mild_pitch", Description: description}
		}
		result.Balls = balls
		result.Strikes = strikes
		result.Scores = parseScores(ls[2:])
		return result, nil
	}

	if wg := match(reWalk, ls[1]); wg != nil {
		result.IsWalk = true
		result.WalkerName = wg["batter"]
		result.Scores = parseScores(ls[2:])
		return result, nil
	}

	return nil, &ParseError{Family: "mild_pitch", Description: description}
}

// ParseBlooddrainStrike parses the blooddrain_strike siphon subcase. Other
// siphon actions and non-siphon blooddrains are out of scope (the source
// asserts false on them too), and return a ParseError.
func ParseBlooddrainStrike(description string) (*Blooddrain, error) {
	ls := lines(description)
	if len(ls) != 3 {
		return nil, &ParseError{Family: "blooddrain", Description: description}
	}
	if match(reBlooddrainHeader, ls[0]) == nil {
		return nil, &ParseError{Family: "blooddrain", Description: description}
	}
	g := match(reBlooddrainSiphon, ls[1])
	if g == nil {
		return nil, &ParseError{Family: "blooddrain", Description: description}
	}
	sg := match(reBlooddrainStrike, ls[2])
	if sg == nil || sg["sipper"] != g["sipper"] {
		return nil, &ParseError{Family: "blooddrain", Description: description}
	}
	return &Blooddrain{SipperName: g["sipper"], SippeeName: g["sippee"], Category: g["category"]}, nil
}

// ParseCoffeeBean parses a coffee_bean event description.
func ParseCoffeeBean(description string) (*CoffeeBean, error) {
	ls := lines(description)
	if len(ls) != 2 {
		return nil, &ParseError{Family: "coffee_bean", Description: description}
	}
	pg := match(reCoffeeBeanPlayer, ls[0])
	mg := match(reCoffeeBeanMod, ls[1])
	if pg == nil || mg == nil {
		return nil, &ParseError{Family: "coffee_bean", Description: description}
	}
	return &CoffeeBean{
		PlayerName:    pg["player"],
		Flavor:        pg["flavor"],
		ModPlayerName: mg["player"],
		ModName:       mg["mod"],
	}, nil
}
