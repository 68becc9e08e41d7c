package cache

import "testing"

func TestHashParamsStableAcrossKeyOrder(t *testing.T) {
	a := HashParams(map[string]string{"gameId": "1", "season": "2"})
	b := HashParams(map[string]string{"season": "2", "gameId": "1"})
	if a != b {
		t.Errorf("expected stable hash regardless of map iteration order, got %s != %s", a, b)
	}
}

func TestHashParamsSkipsEmptyValues(t *testing.T) {
	a := HashParams(map[string]string{"gameId": "1", "season": ""})
	b := HashParams(map[string]string{"gameId": "1"})
	if a != b {
		t.Errorf("expected empty-valued params to be dropped, got %s != %s", a, b)
	}
}

func TestBuildKeyFormat(t *testing.T) {
	c := &Client{config: Config{App: "blaseball", Env: "test", Version: "v1"}}
	got := c.buildKey("roster", "team-1")
	want := "blaseball:test:v1:roster:team-1"
	if got != want {
		t.Errorf("buildKey() = %q, want %q", got, want)
	}
}

func TestGetOrComputeBypassesWhenDisabled(t *testing.T) {
	c := &Client{config: Config{Enabled: false}}
	calls := 0
	val, err := c.GetOrCompute(nil, "key", 0, func() (any, error) {
		calls++
		return "computed", nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if val != "computed" || calls != 1 {
		t.Errorf("expected compute to run exactly once, got val=%v calls=%d", val, calls)
	}
}
