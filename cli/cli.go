package main

import (
	"os"

	"github.com/beiju/blarser-go/cmd"
	"github.com/beiju/blarser-go/internal/echo"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "blarser",
	Short: "Blaseball game-state reconstruction toolkit",
	Long: echo.HeaderStyle().Render(" Blarser ") + "\n\n" +
		"Replays a game's event feed through a deterministic state machine\n" +
		"and checks the result against recorded ground-truth snapshots.",
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to config file (defaults to conf.toml)")
	RootCmd.AddCommand(cmd.ReplayCmd())
	RootCmd.AddCommand(cmd.ServerCmd())
	RootCmd.AddCommand(cmd.DbCmd())
	RootCmd.AddCommand(cmd.CacheCmd())
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		echo.Error(err.Error())
		os.Exit(1)
	}
}
