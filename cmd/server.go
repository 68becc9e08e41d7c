package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beiju/blarser-go/internal/api"
	"github.com/beiju/blarser-go/internal/cache"
	"github.com/beiju/blarser-go/internal/config"
	"github.com/beiju/blarser-go/internal/db"
	"github.com/beiju/blarser-go/internal/echo"
	"github.com/beiju/blarser-go/internal/feedclient"
	"github.com/beiju/blarser-go/internal/middleware"
	"github.com/beiju/blarser-go/internal/roster"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// ServerCmd creates the server command group.
func ServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Server operations",
		Long:  "Start and manage the reconstruction API server.",
	}

	cmd.AddCommand(ServerStartCmd())
	cmd.AddCommand(ServerHealthCmd())
	return cmd
}

// ServerStartCmd creates the start command.
func ServerStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the reconstruction API server",
		RunE:  startServer,
	}
	cmd.Flags().Bool("debug", false, "Enable debug mode (disables rate limiting)")
	return cmd
}

// ServerHealthCmd creates the health command.
func ServerHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE:  checkHealth,
	}
}

func checkHealth(cmd *cobra.Command, args []string) error {
	echo.Header("Health Check")

	serverURL := "http://localhost:8080/v1/health"
	echo.Infof("Checking: %s", serverURL)

	resp, err := http.Get(serverURL)
	if err != nil {
		return fmt.Errorf("error: server is not running or unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error: server returned status: %s", resp.Status)
	}

	echo.Successf("✓ Server is healthy (Status: %s)", resp.Status)

	body, err := io.ReadAll(resp.Body)
	if err == nil && len(body) > 0 {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err == nil {
			echo.Info(pretty.String())
		}
	}
	return nil
}

func startServer(cmd *cobra.Command, args []string) error {
	echo.Header("Starting Server")
	echo.Info("Loading configuration...")

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		cfg.Server.DebugMode = true
	}

	echo.Info("Connecting to database...")
	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()
	echo.Success("✓ Connected to database")

	echo.Info("Connecting to Redis...")
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("error: failed to parse Redis URL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if _, err := redisClient.Ping(cmd.Context()).Result(); err != nil {
		echo.Infof("⚠ Redis connection failed: %v", err)
		echo.Info("  Caching and rate limiting will be disabled")
		redisClient = nil
	} else {
		echo.Success("✓ Connected to Redis")
	}

	timeFmt := time.DateTime
	if cfg.Server.DebugMode {
		timeFmt = time.Kitchen
	}
	logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFmt,
		Prefix:          "⚾️",
		ReportCaller:    cfg.Server.DebugMode,
	})

	cacheClient := cache.NewClient(redisClient, cache.Config{
		App:     "blaseball",
		Env:     "prod",
		Version: cfg.Cache.Version,
		Enabled: cfg.Cache.Enabled,
		TTLs: cache.TTLConfig{
			Entity:   time.Duration(cfg.Cache.TTLs.Entity) * time.Second,
			List:     time.Duration(cfg.Cache.TTLs.List) * time.Second,
			Search:   time.Duration(cfg.Cache.TTLs.Search) * time.Second,
			Upstream: time.Duration(cfg.Cache.TTLs.Upstream) * time.Second,
			Negative: time.Duration(cfg.Cache.TTLs.Negative) * time.Second,
			Roster:   time.Duration(cfg.Cache.TTLs.Roster) * time.Second,
			FeedPage: time.Duration(cfg.Cache.TTLs.FeedPage) * time.Second,
		},
	})
	rosterTTL := time.Duration(cfg.Cache.TTLs.Roster) * time.Second
	feedPageTTL := time.Duration(cfg.Cache.TTLs.FeedPage) * time.Second

	httpClient := &http.Client{Timeout: time.Duration(cfg.Feed.Timeout) * time.Second}
	feedClient := feedclient.New(httpClient, cfg.Feed.BaseURL, cfg.Feed.ChroniclerURL, cacheClient, feedPageTTL, logger)

	rosterHTTPClient := &http.Client{Timeout: time.Duration(cfg.Roster.Timeout) * time.Second}
	rosterResolver := roster.New(rosterHTTPClient, cfg.Roster.BaseURL, cacheClient, rosterTTL, logger)

	server := api.NewServer(database.DB, feedClient, rosterResolver, logger)

	var handler http.Handler = server
	handler = middleware.Logger(logger)(handler)

	if !cfg.Server.DebugMode && redisClient != nil {
		rateLimiter := middleware.NewRateLimiter(redisClient, cfg.Server.DebugMode, 120, 30, time.Minute)
		handler = rateLimiter.Middleware(handler)
		echo.Info("✓ Rate limiting enabled")
	} else {
		echo.Info("⚠ Rate limiting disabled (debug mode or Redis unavailable)")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	echo.Success(fmt.Sprintf("✓ Server starting on %s", addr))
	echo.Info("Press Ctrl+C to stop")
	return http.ListenAndServe(addr, handler)
}
