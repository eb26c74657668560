// haunt is a terminal game: guide a trick-or-treater through a haunted town,
// collect every candy and bring it home before the ghosts catch you.
//
// Usage:
//
//	haunt play              - Start or continue a run
//	haunt scores            - Show the leaderboard
//	haunt serve             - Start SSH server for remote play
//	haunt reset             - Delete the saved run
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.haunt/haunt.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "haunt",
	Short: "Halloween Haunt - candy-collecting survival in your terminal",
	Long: `Halloween Haunt: Candy Quest is a top-down terminal game. Explore the
town, collect all 15 candies per level, dodge ghosts and traps, solve the
church puzzle, dig up graves, and bring the candy back to your door.

Available commands:
  play     - Start or continue a run
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  reset    - Delete the saved run

Examples:
  haunt play
  haunt play --difficulty nightmare
  haunt serve --ssh :2222
  haunt scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.haunt/haunt.db", "Path to saves and scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
}
