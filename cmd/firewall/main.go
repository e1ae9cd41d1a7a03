// firewall is a planetary-defense simulation server and toolkit.
//
// Usage:
//
//	firewall serve            - Start the HTTP API server
//	firewall neo [id]         - Browse the near-Earth object catalog
//	firewall scores           - Show the defense game leaderboard
//
// Global flags:
//
//	--config <path>  - Path to YAML config (default: configs/simulator.yaml)
//	--db <path>      - Path to scores database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "firewall",
	Short: "Asteroid impact simulator and planetary-defense game server",
	Long: `firewall simulates asteroid impacts and deflection missions, serves
the interactive defense game over HTTP, and browses NASA's near-Earth
object catalog.

Available commands:
  serve    - Start the HTTP API and game server
  neo      - Browse or look up near-Earth objects
  scores   - View the defense game leaderboard

Examples:
  firewall serve --addr :9000
  firewall neo --hazardous
  firewall neo 99942
  firewall scores --level 3`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "configs/simulator.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(neoCmd)
	rootCmd.AddCommand(scoresCmd)
}
