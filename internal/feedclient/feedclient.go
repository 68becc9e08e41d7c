// Package feedclient fetches feed events and ground-truth snapshots for a
// game from the upstream feed/chronicler archive. It is consumed by the
// Replay Driver's orchestration layer, never by the state machine itself.
package feedclient

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

// Client fetches a game's feed events (paged) and its periodic document
// snapshots, each cached independently.
type Client struct {
	http             *http.Client
	feedBaseURL      string
	chroniclerBaseURL string
	cache            *cache.Client
	ttl              time.Duration
	logger           *log.Logger
}

func New(httpClient *http.Client, feedBaseURL, chroniclerBaseURL string, cacheClient *cache.Client, ttl time.Duration, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		http:              httpClient,
		feedBaseURL:       feedBaseURL,
		chroniclerBaseURL: chroniclerBaseURL,
		cache:             cacheClient,
		ttl:               ttl,
		logger:            logger,
	}
}

type feedEventWire struct {
	ID          string         `json:"id"`
	Type        int            `json:"type"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	PlayerTags  []string       `json:"playerTags"`
	Data        map[string]any `json:"metadata"`
}

type feedPage struct {
	Events []feedEventWire `json:"events"`
	Next   string          `json:"nextPage"`
}

// FetchEvents retrieves the complete, time-ordered feed for a game, paging
// through the upstream archive until it reports no further page.
func (c *Client) FetchEvents(ctx context.Context, gameID string) ([]blaseball.FeedEvent, error) {
	var all []blaseball.FeedEvent
	page := ""

	for {
		key := fmt.Sprintf("feed:events:%s:%s", gameID, page)
		val, err := c.cache.GetOrCompute(ctx, key, c.ttl, func() (any, error) {
			return c.fetchFeedPage(ctx, gameID, page)
		})
		if err != nil {
			return nil, fmt.Errorf("fetching feed page for game %s: %w", gameID, err)
		}

		fp, ok := val.(feedPage)
		if !ok {
			raw, _ := json.Marshal(val)
			if err := json.Unmarshal(raw, &fp); err != nil {
				return nil, fmt.Errorf("decoding cached feed page for game %s: %w", gameID, err)
			}
		}

		for _, w := range fp.Events {
			all = append(all, blaseball.FeedEvent{
				ID:          w.ID,
				Type:        w.Type,
				Description: w.Description,
				Created:     w.Created,
				PlayerTags:  w.PlayerTags,
				Data:        blaseball.FeedEventData(w.Data),
			})
		}

		if fp.Next == "" {
			break
		}
		page = fp.Next
	}

	if c.logger != nil {
		c.logger.Debug("fetched feed events", "game_id", gameID, "count", len(all))
	}
	return all, nil
}

func (c *Client) fetchFeedPage(ctx context.Context, gameID, page string) (feedPage, error) {
	target, err := url.JoinPath(c.feedBaseURL, "games", gameID, "events")
	if err != nil {
		return feedPage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return feedPage{}, err
	}
	if page != "" {
		q := req.URL.Query()
		q.Set("page", page)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return feedPage{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return feedPage{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return feedPage{}, fmt.Errorf("feed archive returned status %d for %s", resp.StatusCode, target)
	}

	var fp feedPage
	if err := json.Unmarshal(body, &fp); err != nil {
		return feedPage{}, fmt.Errorf("decoding feed page from %s: %w", target, err)
	}
	return fp, nil
}

type snapshotWire struct {
	Data map[string]any `json:"data"`
}

// FetchSnapshot retrieves the ground-truth document chronicler recorded for
// gameID at or before timestamp, or nil if chronicler has none. The caller
// decides what to do with a missing snapshot; the engine tolerates nil.
func (c *Client) FetchSnapshot(ctx context.Context, gameID string, timestamp time.Time) (map[string]any, error) {
	key := fmt.Sprintf("feed:snapshot:%s:%d", gameID, timestamp.UnixNano())

	val, err := c.cache.GetOrCompute(ctx, key, c.ttl, func() (any, error) {
		target, err := url.JoinPath(c.chroniclerBaseURL, "games", gameID)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("at", timestamp.UTC().Format(time.RFC3339))
		req.URL.RawQuery = q.Encode()

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return snapshotWire{}, nil
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("chronicler returned status %d for %s", resp.StatusCode, target)
		}

		var sw snapshotWire
		if err := json.Unmarshal(body, &sw); err != nil {
			return nil, fmt.Errorf("decoding snapshot from %s: %w", target, err)
		}
		return sw, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot for game %s: %w", gameID, err)
	}

	sw, ok := val.(snapshotWire)
	if !ok {
		raw, _ := json.Marshal(val)
		if err := json.Unmarshal(raw, &sw); err != nil {
			return nil, fmt.Errorf("decoding cached snapshot for game %s: %w", gameID, err)
		}
	}
	if sw.Data == nil {
		return nil, nil
	}
	return sw.Data, nil
}

// DecodeSnapshot maps a raw chronicler document into the subset of
// GameState fields the advancement oracle, reverberation/double-play
// detection and replay.Diff consult. Other document fields are left at
// their zero values.
func DecodeSnapshot(data map[string]any) *blaseball.GameState {
	if data == nil {
		return nil
	}
	d := blaseball.FeedEventData(data)

	snap := &blaseball.GameState{
		Inning:              d.Int("inning"),
		TopOfInning:         d.Bool("topOfInning"),
		Phase:               d.Int("phase"),
		AwayScore:           d.Float("awayScore"),
		HomeScore:           d.Float("homeScore"),
		HalfInningOuts:      d.Int("halfInningOuts"),
		AtBatBalls:          d.Int("atBatBalls"),
		AtBatStrikes:        d.Int("atBatStrikes"),
		AwayBatterName:      d.String("awayBatterName"),
		HomeBatterName:      d.String("homeBatterName"),
		LastUpdate:          d.String("lastUpdate"),
		GameComplete:        d.Bool("gameComplete"),
		AwayTeamBatterCount: d.Int("awayTeamBatterCount"),
		HomeTeamBatterCount: d.Int("homeTeamBatterCount"),
	}

	snap.Baserunners.IDs = stringSlice(data["baseRunners"])
	snap.Baserunners.Names = stringSlice(data["baseRunnerNames"])
	snap.Baserunners.Mods = stringSlice(data["baseRunnerMods"])
	if occupied, ok := data["basesOccupied"].([]any); ok {
		for _, v := range occupied {
			if f, ok := v.(float64); ok {
				snap.Baserunners.Bases = append(snap.Baserunners.Bases, int(f))
			}
		}
	}

	return snap
}

// stringSlice decodes a raw JSON array field into a []string, skipping any
// element that isn't a string rather than failing the whole document.
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
