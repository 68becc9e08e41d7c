package descriptor

import "testing"

func TestParseBatterUp(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		got, err := ParseBatterUp("Jessica Telephone batting for the Tigers.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.BatterName != "Jessica Telephone" || got.TeamNickname != "Tigers" {
			t.Errorf("got %+v", got)
		}
		if got.Haunting != nil {
			t.Errorf("expected no haunting, got %+v", got.Haunting)
		}
	})

	t.Run("inhabiting", func(t *testing.T) {
		description := "Wyatt Mason is Inhabiting Jessica Telephone!\nWyatt Mason batting for the Tigers."
		got, err := ParseBatterUp(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Haunting == nil {
			t.Fatalf("expected haunting, got nil")
		}
		if got.Haunting.HaunterName != "Wyatt Mason" || got.Haunting.HauntedName != "Jessica Telephone" {
			t.Errorf("got %+v", got.Haunting)
		}
	})

	t.Run("wielding", func(t *testing.T) {
		description := "Jessica Telephone batting for the Tigers.\nJessica Telephone is wielding the Vibe Check."
		got, err := ParseBatterUp(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Wielding) != 1 || got.Wielding[0] != "Vibe Check" {
			t.Errorf("got wielding %+v", got.Wielding)
		}
	})

	t.Run("does not match", func(t *testing.T) {
		if _, err := ParseBatterUp("nonsense"); err == nil {
			t.Errorf("expected error for unmatched description")
		}
	})
}

func TestParseSteal(t *testing.T) {
	t.Run("stolen base", func(t *testing.T) {
		got, err := ParseSteal("York Silk steals second base!")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CaughtStealing || got.Runner != "York Silk" || got.BaseName != "second" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("caught stealing", func(t *testing.T) {
		got, err := ParseSteal("York Silk gets caught stealing third base.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.CaughtStealing || got.Runner != "York Silk" || got.BaseName != "third" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("scores with blaserunning and a free refill", func(t *testing.T) {
		description := "York Silk steals fourth base!\nYork Silk scores with Blaserunning!\nJaylen Hotdogfingers used their Free Refill."
		got, err := ParseSteal(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Blaserunning {
			t.Errorf("expected blaserunning")
		}
		if len(got.Extras) != 1 || got.Extras[0] != "Jaylen Hotdogfingers" {
			t.Errorf("got extras %+v", got.Extras)
		}
	})
}

func TestParseStrikeout(t *testing.T) {
	t.Run("swinging", func(t *testing.T) {
		got, err := ParseStrikeout("Jessica Telephone strikes out swinging.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Looking || got.BatterName != "Jessica Telephone" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("looking", func(t *testing.T) {
		got, err := ParseStrikeout("Jessica Telephone strikes out looking.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Looking {
			t.Errorf("expected looking strikeout")
		}
	})

	t.Run("charmed", func(t *testing.T) {
		description := "NaN charmed Jessica Telephone!\nJessica Telephone swings 3 times to strike out willingly."
		got, err := ParseStrikeout(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Charm || got.PitcherName != "NaN" || got.Swings != 3 {
			t.Errorf("got %+v", got)
		}
	})
}

func TestParseFieldingOut(t *testing.T) {
	t.Run("ground out", func(t *testing.T) {
		got, err := ParseFieldingOut("Jessica Telephone grounds out to Qais Dogwalker.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Kind != GroundOut || got.Fielder != "Qais Dogwalker" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("double play with a scoring runner", func(t *testing.T) {
		description := "Jessica Telephone hit into a double play!\nYork Silk scores!"
		got, err := ParseFieldingOut(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Kind != DoublePlay || len(got.Scores) != 1 || got.Scores[0].Name != "York Silk" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("fielders choice", func(t *testing.T) {
		description := "York Silk out at second base.\nJessica Telephone reaches on fielder's choice."
		got, err := ParseFieldingOut(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Kind != FieldersChoice || got.RunnerOut != "York Silk" || got.BatterName != "Jessica Telephone" {
			t.Errorf("got %+v", got)
		}
	})
}

func TestParseHit(t *testing.T) {
	got, err := ParseHit("Jessica Telephone hits a Double!\nYork Silk scores!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BaseName != "Double" || len(got.Scores) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestParseHomeRun(t *testing.T) {
	t.Run("solo", func(t *testing.T) {
		got, err := ParseHomeRun("Jessica Telephone hits a solo home run!")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Count != 1 {
			t.Errorf("got count %d", got.Count)
		}
	})

	t.Run("multi with a free refill", func(t *testing.T) {
		description := "Jessica Telephone hits a 3-run home run!\nYork Silk used their Free Refill."
		got, err := ParseHomeRun(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Count != 3 || len(got.Extras) != 1 || got.Extras[0] != "York Silk" {
			t.Errorf("got %+v", got)
		}
	})
}

func TestParseMildPitch(t *testing.T) {
	t.Run("ball", func(t *testing.T) {
		description := "NaN throws a Mild pitch!\nBall, 2-1."
		got, err := ParseMildPitch(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.IsWalk || got.Balls != 2 || got.Strikes != 1 {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("walk", func(t *testing.T) {
		description := "NaN throws a Mild pitch!\nJessica Telephone draws a walk."
		got, err := ParseMildPitch(description)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsWalk || got.WalkerName != "Jessica Telephone" {
			t.Errorf("got %+v", got)
		}
	})
}

func TestParseBlooddrainStrike(t *testing.T) {
	description := "The Blooddrain gurgled!\nNaN siphoned some of Jessica Telephone's strikes.\nNaN increased their strikes!"
	got, err := ParseBlooddrainStrike(description)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SipperName != "NaN" || got.SippeeName != "Jessica Telephone" || got.Category != "strikes" {
		t.Errorf("got %+v", got)
	}
}

func TestParseCoffeeBean(t *testing.T) {
	description := "Jessica Telephone is Beaning with the Dark Roast coffee.\nJessica Telephone got COFFEE_RALLY."
	got, err := ParseCoffeeBean(description)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PlayerName != got.ModPlayerName || got.ModName != "COFFEE_RALLY" {
		t.Errorf("got %+v", got)
	}
}
