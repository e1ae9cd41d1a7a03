package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"EarthsFirewall/internal/server"
	"EarthsFirewall/internal/storage"
)

var (
	flagScoreLevel int
	flagScoreLimit int
	flagClear      string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "View the defense game leaderboard",
	Long: `Display the top scores from the defense game, optionally restricted
to one level.

Examples:
  firewall scores
  firewall scores --level 3 --limit 5
  firewall scores --clear alice`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLevel, "level", 0, "Restrict to one level (0 = all)")
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().StringVar(&flagClear, "clear", "", "Delete all scores for a player ('all' clears everything)")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := server.LoadConfig(flagConfig, configOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear != "" {
		player := flagClear
		if player == "all" {
			player = ""
		}
		if err := store.ClearScores(player); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	entries, err := store.TopScores(flagScoreLevel, flagScoreLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading scores: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("%-4s %-16s %5s %8s %-10s %s\n", "#", "PLAYER", "LEVEL", "SCORE", "OUTCOME", "WHEN")
	for i, e := range entries {
		fmt.Printf("%-4d %-16s %5d %8d %-10s %s\n",
			i+1, e.Player, e.Level, e.Score, e.Outcome, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}
