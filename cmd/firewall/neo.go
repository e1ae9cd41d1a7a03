package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"EarthsFirewall/internal/astro"
	"EarthsFirewall/internal/neo"
	"EarthsFirewall/internal/server"
)

var (
	flagHazardous bool
	flagLimit     int
)

var neoCmd = &cobra.Command{
	Use:   "neo [id]",
	Short: "Browse or look up near-Earth objects",
	Long: `List near-Earth objects from NASA's NEO catalog, or show one in
detail by its reference id or name. Without network access the built-in
catalog of well-known asteroids is used.

Examples:
  firewall neo
  firewall neo --hazardous --limit 5
  firewall neo 99942
  firewall neo Bennu`,
	Args: cobra.MaximumNArgs(1),
	Run:  runNeo,
}

func init() {
	neoCmd.Flags().BoolVar(&flagHazardous, "hazardous", false, "Only potentially hazardous asteroids")
	neoCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of asteroids to list")
}

func neoCatalog() []neo.Asteroid {
	cfg, err := server.LoadConfig(flagConfig, configOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := neo.NewClient(cfg.NASABaseURL, cfg.NASAAPIKey)
	asteroids, err := client.Browse(ctx, flagLimit)
	if err != nil || len(asteroids) == 0 {
		fmt.Fprintln(os.Stderr, "NASA API unavailable, using built-in catalog")
		return neo.FallbackCatalog()
	}
	return asteroids
}

func runNeo(_ *cobra.Command, args []string) {
	catalog := neoCatalog()

	if len(args) == 1 {
		ast, err := neo.FindByID(catalog, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printAsteroid(ast)
		return
	}

	f := neo.Filter{HazardousOnly: flagHazardous, Limit: flagLimit}
	fmt.Printf("%-10s %-22s %10s %10s %6s\n", "ID", "NAME", "DIAM (km)", "VEL (km/s)", "PHA")
	for _, a := range f.Apply(catalog) {
		pha := ""
		if a.Hazardous {
			pha = "yes"
		}
		fmt.Printf("%-10s %-22s %10.3f %10.2f %6s\n", a.ID, a.Name, a.DiameterKm, a.VelocityKmS, pha)
	}
}

func printAsteroid(a neo.Asteroid) {
	energy := astro.KineticEnergy(a.MassKg, a.VelocityKmS)
	fmt.Printf("%s (%s)\n", a.Name, a.ID)
	fmt.Printf("  diameter:       %.3f km\n", a.DiameterKm)
	fmt.Printf("  mass:           %.3e kg\n", a.MassKg)
	fmt.Printf("  velocity:       %.2f km/s\n", a.VelocityKmS)
	fmt.Printf("  composition:    %s\n", a.Composition())
	fmt.Printf("  hazardous:      %v\n", a.Hazardous)
	fmt.Printf("  semi-major axis: %.3f AU\n", a.Orbit.SemiMajorAxisAU)
	fmt.Printf("  eccentricity:   %.3f\n", a.Orbit.Eccentricity)
	fmt.Printf("  period:         %.1f days\n", a.Orbit.PeriodDays)
	fmt.Printf("  impact energy:  %.2f MT TNT\n", astro.JoulesToMegatons(energy))
}
