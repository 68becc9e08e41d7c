package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/beiju/blarser-go/internal/blaseball"
	"github.com/beiju/blarser-go/internal/blaseball/replay"
	"github.com/beiju/blarser-go/internal/cache"
	"github.com/beiju/blarser-go/internal/config"
	"github.com/beiju/blarser-go/internal/db"
	"github.com/beiju/blarser-go/internal/echo"
	"github.com/beiju/blarser-go/internal/feedclient"
	"github.com/beiju/blarser-go/internal/repository"
	"github.com/beiju/blarser-go/internal/roster"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// ReplayCmd creates the replay command group.
func ReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Drive a game's feed through the reconstruction engine",
	}
	cmd.AddCommand(ReplayRunCmd())
	cmd.AddCommand(ReplayVerifyCmd())
	return cmd
}

// ReplayRunCmd creates the replay run command.
func ReplayRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <game-id>",
		Short: "Replay one game and print the resulting documents",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
}

// ReplayVerifyCmd creates the replay verify command.
func ReplayVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <game-id>",
		Short: "Replay one game and report the first divergence from its snapshots",
		Args:  cobra.ExactArgs(1),
		RunE:  replayVerify,
	}
}

func replayDeps(cmd *cobra.Command) (*feedclient.Client, blaseball.RosterResolver, *db.DB, *log.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Prefix: "⚾️"})

	var cacheClient *cache.Client
	if redisOpts, err := redis.ParseURL(cfg.Redis.URL); err == nil {
		redisClient := redis.NewClient(redisOpts)
		if _, pingErr := redisClient.Ping(cmd.Context()).Result(); pingErr == nil {
			cacheClient = cache.NewClient(redisClient, cache.Config{
				App: "blaseball", Env: "cli", Version: cfg.Cache.Version, Enabled: cfg.Cache.Enabled,
				TTLs: cache.TTLConfig{
					Roster:   time.Duration(cfg.Cache.TTLs.Roster) * time.Second,
					FeedPage: time.Duration(cfg.Cache.TTLs.FeedPage) * time.Second,
				},
			})
		}
	}
	if cacheClient == nil {
		cacheClient = cache.NewClient(nil, cache.Config{})
	}

	feedClient := feedclient.New(nil, cfg.Feed.BaseURL, cfg.Feed.ChroniclerURL, cacheClient,
		time.Duration(cfg.Cache.TTLs.FeedPage)*time.Second, logger)
	rosterResolver := roster.New(nil, cfg.Roster.BaseURL, cacheClient,
		time.Duration(cfg.Cache.TTLs.Roster)*time.Second, logger)

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return feedClient, rosterResolver, database, logger, nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	echo.Header("Replaying Game")
	echo.Infof("Game: %s", gameID)

	_, database, _, err := runReplay(cmd, gameID)
	if database != nil {
		defer database.Close()
	}
	return err
}

// runReplay fetches the feed, drives it through the engine, and persists
// every produced document, returning the result for callers (replay verify)
// that need to inspect it further without re-fetching or re-replaying.
func runReplay(cmd *cobra.Command, gameID string) (*replay.Result, *db.DB, *log.Logger, error) {
	feedClient, rosterResolver, database, logger, err := replayDeps(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := cmd.Context()
	events, err := feedClient.FetchEvents(ctx, gameID)
	if err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if len(events) == 0 {
		database.Close()
		return nil, nil, nil, fmt.Errorf("no feed events found for game %s", gameID)
	}
	echo.Successf("✓ Fetched %d feed events", len(events))

	bootstrapCount := bootstrapEventCount(events)
	bootstrap, rest := events[:bootstrapCount], events[bootstrapCount:]

	snapshots := repository.NewSnapshotRepository(database.DB)
	lookup := func(event blaseball.FeedEvent) *blaseball.GameState {
		doc, err := snapshots.ByPlayCount(ctx, gameID, event.Data.Int("playCount"))
		if err != nil {
			return nil
		}
		return feedclient.DecodeSnapshot(doc)
	}

	echo.Info("Running reconstruction...")
	result, err := replay.Run(ctx, gameID, bootstrap, rest, rosterResolver, lookup, logger)
	if err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("reconstruction failed: %w", err)
	}
	echo.Successf("✓ Produced %d documents", len(result.Documents))

	recons := repository.NewReconstructedGameRepository(database.DB)
	for _, step := range result.Steps {
		playCount := step.Event.Data.Int("playCount")
		if err := recons.Save(ctx, gameID, playCount, step.Document, step.Mismatch); err != nil {
			logger.Warn("failed to persist reconstructed document", "play_count", playCount, "err", err)
		}
	}

	data, err := json.MarshalIndent(result.Documents[len(result.Documents)-1], "", "  ")
	if err == nil {
		echo.Info(string(data))
	}
	return result, database, logger, nil
}

// bootstrapEventCount returns how many leading events belong to the
// bootstrap phase, i.e. every event up to and including the first one with
// playCount > 0 — mirroring the engine's own bootstrap-scan rule.
func bootstrapEventCount(events []blaseball.FeedEvent) int {
	for i, e := range events {
		if e.Data.Int("playCount") > 0 {
			return i + 1
		}
	}
	return len(events)
}

func replayVerify(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	echo.Header("Verifying Replay Fidelity")
	echo.Infof("Game: %s", gameID)

	_, database, _, err := runReplay(cmd, gameID)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	recons := repository.NewReconstructedGameRepository(database.DB)
	playCount, fields, diverged, err := recons.FirstDivergence(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to query divergence: %w", err)
	}

	if !diverged {
		echo.Success("✓ No divergence from recorded snapshots")
		return nil
	}

	echo.Errorf("✗ Diverged at play %d: %v", playCount, fields)
	return fmt.Errorf("reconstruction diverged from ground truth at play %d", playCount)
}

