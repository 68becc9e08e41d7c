// Package roster implements the Roster Resolver over a Chronicler-style
// roster service: HTTP fetch, JSON decode, cache-aside with stampede
// protection. It is the reconstruction engine's only I/O dependency.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/beiju/blarser-go/internal/cache"
	"github.com/charmbracelet/log"
)

// Resolver fetches teams and players from an upstream roster service,
// caching results keyed by (id, timestamp) since entries are immutable once
// observed at a given instant.
type Resolver struct {
	client  *http.Client
	baseURL string
	cache   *cache.Client
	ttl     time.Duration
	logger  *log.Logger
}

// New constructs a Resolver. client defaults to a 10-second-timeout
// *http.Client if nil.
func New(client *http.Client, baseURL string, cacheClient *cache.Client, ttl time.Duration, logger *log.Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resolver{client: client, baseURL: baseURL, cache: cacheClient, ttl: ttl, logger: logger}
}

type teamResponse struct {
	Nickname string         `json:"nickname"`
	Lineup   []playerSource `json:"lineup"`
}

type playerResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	PermAttr []string `json:"permAttr"`
	SeasAttr []string `json:"seasAttr"`
	GameAttr []string `json:"gameAttr"`
	ItemAttr []string `json:"itemAttr"`
	Bat      struct {
		ID   string   `json:"id"`
		Name string   `json:"name"`
		Attr []string `json:"attr"`
	} `json:"bat"`
}

type playerSource = playerResponse

// LoadTeam fetches a team's nickname and ordered lineup as of timestamp.
func (r *Resolver) LoadTeam(ctx context.Context, teamID string, timestamp time.Time) (*blaseball.ResolvedTeam, error) {
	key := fmt.Sprintf("roster:team:%s:%d", teamID, timestamp.UnixNano())

	val, err := r.cache.GetOrCompute(ctx, key, r.ttl, func() (any, error) {
		var resp teamResponse
		if err := r.fetchJSON(ctx, "/team", teamID, timestamp, &resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading team %s: %w", teamID, err)
	}

	resp, ok := val.(teamResponse)
	if !ok {
		// Round-tripped through JSON in the cache path; re-decode defensively.
		raw, _ := json.Marshal(val)
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("decoding cached team %s: %w", teamID, err)
		}
	}

	lineup := make([]*blaseball.Player, len(resp.Lineup))
	for i, p := range resp.Lineup {
		lineup[i] = toPlayer(p)
	}
	return &blaseball.ResolvedTeam{Nickname: resp.Nickname, Lineup: lineup}, nil
}

// LoadPlayer fetches a single player as of timestamp, with effective mods
// computed as the union of perm/seas/game/item attributes plus the bat's
// attribute, per the roster interface contract.
func (r *Resolver) LoadPlayer(ctx context.Context, playerID string, timestamp time.Time) (*blaseball.Player, error) {
	key := fmt.Sprintf("roster:player:%s:%d", playerID, timestamp.UnixNano())

	val, err := r.cache.GetOrCompute(ctx, key, r.ttl, func() (any, error) {
		var resp playerResponse
		if err := r.fetchJSON(ctx, "/player", playerID, timestamp, &resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading player %s: %w", playerID, err)
	}

	resp, ok := val.(playerResponse)
	if !ok {
		raw, _ := json.Marshal(val)
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("decoding cached player %s: %w", playerID, err)
		}
	}
	return toPlayer(resp), nil
}

func toPlayer(p playerResponse) *blaseball.Player {
	mods := make(map[blaseball.Mod]bool)
	for _, group := range [][]string{p.PermAttr, p.SeasAttr, p.GameAttr, p.ItemAttr, p.Bat.Attr} {
		for _, a := range group {
			if a != "" {
				mods[blaseball.Mod(a)] = true
			}
		}
	}
	name := p.Name
	id := p.ID
	legacyItem := p.Bat.Name
	return &blaseball.Player{ID: id, Name: name, Mods: mods, LegacyItem: legacyItem}
}

func (r *Resolver) fetchJSON(ctx context.Context, path, id string, timestamp time.Time, dest any) error {
	target, err := url.JoinPath(r.baseURL, path, id)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	q.Set("at", timestamp.UTC().Format(time.RFC3339))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "blarser-go/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("roster service returned status %d for %s", resp.StatusCode, target)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decoding roster response from %s: %w", target, err)
	}
	if r.logger != nil {
		r.logger.Debug("resolved roster entity", "path", path, "id", id)
	}
	return nil
}
