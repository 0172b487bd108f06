package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/miu-game/internal/engine"
	"github.com/tatianab/miu-game/internal/logging"
	"github.com/tatianab/miu-game/internal/models"
	"github.com/tatianab/miu-game/internal/tui"
)

var playFlags struct {
	level int
	load  string
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags on c. The root command shares them so
// that a bare "miu" starts a game.
func addPlayFlags(c *cobra.Command) {
	f := c.Flags()
	f.IntVar(&playFlags.level, "level", 1, "level to start at")
	f.StringVar(&playFlags.load, "load", "", "resume a saved session by name")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logging.Init(cfg.LogLevel, "text", logFile)
	logger := logging.New("play")

	gameConfig, err := loadGameConfig(cfg)
	if err != nil {
		return err
	}

	session := engine.NewSession(gameConfig, logging.New("engine"))
	if err := session.SelectLevel(playFlags.level - 1); err != nil {
		return fmt.Errorf("--level %d: %w", playFlags.level, err)
	}

	store := models.NewStore(cfg.SaveDir)
	if playFlags.load != "" {
		saved, err := store.Load(playFlags.load)
		if err != nil {
			return fmt.Errorf("load session %q: %w", playFlags.load, err)
		}
		if err := session.Restore(saved); err != nil {
			return err
		}
	}

	var advisor engine.Advisor
	if cfg.HintsEnabled() {
		gemini, err := engine.NewGeminiAdvisor(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("hints disabled", "error", err)
		} else {
			defer gemini.Close()
			advisor = gemini
		}
	}

	logger.Info("starting game",
		"set", gameConfig.Name, "level", session.Level().ID, "hints", advisor != nil)
	return tui.Run(session, store, advisor)
}
