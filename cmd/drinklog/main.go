package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath    string
	convexURL string
)

var rootCmd = &cobra.Command{
	Use:   "drinklog",
	Short: "drinklog tracks alcohol and caffeine intake",
	Long: "drinklog logs drinks and estimates blood alcohol and caffeine levels. " +
		"Run \"drinklog serve\" for the HTTP API.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&convexURL, "convex-url", "", "Convex deployment URL (overrides CONVEX_URL)")
}
