package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmkoscak/halloween-haunt/internal/storage"
)

var flagResetScores bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved run",
	Long: `Delete the saved run so the next 'haunt play' starts from level 1.

Examples:
  haunt reset
  haunt reset --scores   # Also clears the leaderboard`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetScores, "scores", false, "Also clear the leaderboard")
}

func runReset(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.ClearProgress(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing save: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Saved run deleted.")

	if flagResetScores {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Leaderboard cleared.")
	}
}
