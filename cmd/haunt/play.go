package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bmkoscak/halloween-haunt/internal/config"
	"github.com/bmkoscak/halloween-haunt/internal/core"
	"github.com/bmkoscak/halloween-haunt/internal/haunt"
	"github.com/bmkoscak/halloween-haunt/internal/platform/tui"
	"github.com/bmkoscak/halloween-haunt/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagFresh      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or continue a run",
	Long: `Start a run, continuing from the saved level if one exists.

Controls:
  WASD/Arrows  - Move
  Space/E      - Interact (altar, graves, trash cans)
  Enter        - Confirm
  P            - Pause
  R            - Restart (after game over)
  F            - Toggle fullscreen
  Q/Ctrl+C     - Quit

Difficulty options:
  easy       - Forgiving ghosts, extra health
  normal     - The intended experience
  hard       - Faster, sharper ghosts
  nightmare  - Two hearts, ghosts everywhere
  fixed      - No in-run difficulty progression

Examples:
  haunt play
  haunt play --difficulty easy
  haunt play --fresh
  haunt play --config ./my-haunt.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, nightmare, fixed")
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Ignore the saved run and start from level 1")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Load game tunables and apply the difficulty preset.
	gameCfg, err := config.LoadHaunt(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyHauntPreset(&gameCfg, config.DifficultyPreset(flagDifficulty))
	}

	game := haunt.New(gameCfg)

	// Open storage for the save slot and leaderboard.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - the run still works, just unsaved
		store = nil
	}

	if store != nil {
		game.SetSaver(store)
		if !flagFresh {
			save, found, loadErr := store.LoadProgress()
			switch {
			case loadErr != nil:
				fmt.Fprintf(os.Stderr, "Warning: could not load save, starting fresh: %v\n", loadErr)
			case found:
				if warning := game.ApplySave(save); warning != "" {
					fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
				}
			}
		}
	}

	runErr := tui.Run(game, store, rc, playerName())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playerName is the default leaderboard name for the local player.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
