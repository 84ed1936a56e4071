package main

import (
	"github.com/spf13/cobra"
)

var (
	cachePath string
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "ctfwatch",
	Short: "Watches the HackTheBox public CTF listing and emails about joinable events",
	Long: `ctfwatch polls the public CTF listing, emails exactly once per new
event that is open (or restricted with a discoverable access token), and
sends one reminder in the 72h window before each tracked event starts.

One invocation performs exactly one watch pass; run it from cron or a CI
schedule for periodic polling.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "path of the tracked-event cache file (default from CACHE_FILE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "log notifications instead of sending them")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(trackedCmd)
}
