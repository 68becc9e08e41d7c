package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/beiju/blarser-go/internal/cache"
	"github.com/beiju/blarser-go/internal/config"
	"github.com/beiju/blarser-go/internal/echo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// CacheCmd creates the cache command group.
func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the Redis cache",
	}
	cmd.AddCommand(CacheStatsCmd())
	cmd.AddCommand(CacheFlushCmd())
	return cmd
}

// CacheStatsCmd creates the cache stats command.
func CacheStatsCmd() *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report key count and TTL distribution for a pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStats(cmd, pattern)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Key pattern to scan (defaults to the whole namespace)")
	return cmd
}

// CacheFlushCmd creates the cache flush command.
func CacheFlushCmd() *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Delete every cache key matching a pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			return flushCache(cmd, pattern)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Key pattern to delete (defaults to the whole namespace)")
	return cmd
}

func connectToCache(cmd *cobra.Command) (*cache.Client, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)

	ctx := context.Background()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, "", fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cacheConfig := cache.Config{
		App:     "blaseball",
		Env:     "dev",
		Version: cfg.Cache.Version,
		Enabled: true,
		TTLs: cache.TTLConfig{
			Entity:   time.Duration(cfg.Cache.TTLs.Entity) * time.Second,
			List:     time.Duration(cfg.Cache.TTLs.List) * time.Second,
			Search:   time.Duration(cfg.Cache.TTLs.Search) * time.Second,
			Upstream: time.Duration(cfg.Cache.TTLs.Upstream) * time.Second,
			Negative: time.Duration(cfg.Cache.TTLs.Negative) * time.Second,
			Roster:   time.Duration(cfg.Cache.TTLs.Roster) * time.Second,
			FeedPage: time.Duration(cfg.Cache.TTLs.FeedPage) * time.Second,
		},
	}

	pattern := fmt.Sprintf("%s:%s:%s:*", cacheConfig.App, cacheConfig.Env, cacheConfig.Version)
	return cache.NewClient(redisClient, cacheConfig), pattern, nil
}

func showCacheStats(cmd *cobra.Command, pattern string) error {
	echo.Header("Cache Statistics")

	client, defaultPattern, err := connectToCache(cmd)
	if err != nil {
		return err
	}
	if pattern == "" {
		pattern = defaultPattern
	}

	ctx := context.Background()
	stats, err := client.GetStats(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	echo.Infof("Pattern: %s", pattern)
	echo.Infof("Total keys: %d", stats.Count)
	if stats.Count == 0 {
		echo.Info("No cache keys found matching pattern")
		return nil
	}

	ttlRanges := map[string]int{
		"< 1m": 0, "1m - 5m": 0, "5m - 15m": 0, "15m - 30m": 0, "30m - 1h": 0, "> 1h": 0, "No expiry": 0,
	}
	for _, ttl := range stats.TTLs {
		switch {
		case ttl < 0:
			ttlRanges["No expiry"]++
		case ttl < time.Minute:
			ttlRanges["< 1m"]++
		case ttl < 5*time.Minute:
			ttlRanges["1m - 5m"]++
		case ttl < 15*time.Minute:
			ttlRanges["5m - 15m"]++
		case ttl < 30*time.Minute:
			ttlRanges["15m - 30m"]++
		case ttl < time.Hour:
			ttlRanges["30m - 1h"]++
		default:
			ttlRanges["> 1h"]++
		}
	}

	echo.Info("TTL distribution:")
	for _, label := range []string{"< 1m", "1m - 5m", "5m - 15m", "15m - 30m", "30m - 1h", "> 1h", "No expiry"} {
		if ttlRanges[label] > 0 {
			echo.Infof("  %-10s %d", label, ttlRanges[label])
		}
	}
	return nil
}

func flushCache(cmd *cobra.Command, pattern string) error {
	echo.Header("Cache Flush")

	client, defaultPattern, err := connectToCache(cmd)
	if err != nil {
		return err
	}
	if pattern == "" {
		pattern = defaultPattern
	}

	ctx := context.Background()
	deleted, err := client.DeletePattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}

	echo.Successf("✓ Deleted %d keys matching %s", deleted, pattern)
	return nil
}
