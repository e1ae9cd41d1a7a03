package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"EarthsFirewall/internal/server"
)

var (
	flagAddr   string
	flagAPIKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and game server",
	Long: `Start the simulation API and the defense game server.

The NASA NEO catalog is fetched at startup; when the API is unreachable
a built-in catalog of well-known asteroids serves instead.

Examples:
  firewall serve
  firewall serve --addr :9000
  firewall serve --api-key $NASA_API_KEY`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "NASA API key (overrides config)")
}

func configOverrides() server.ConfigOverrides {
	var o server.ConfigOverrides
	if flagAddr != "" {
		o.Addr = &flagAddr
	}
	if flagDBPath != "" {
		o.DBPath = &flagDBPath
	}
	if flagAPIKey != "" {
		o.NASAAPIKey = &flagAPIKey
	}
	return o
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := server.LoadConfig(flagConfig, configOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := server.StartApp(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
