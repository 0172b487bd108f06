package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tatianab/miu-game/internal/chain"
	"github.com/tatianab/miu-game/internal/engine"
	"github.com/tatianab/miu-game/internal/logging"
	"github.com/tatianab/miu-game/internal/models"
	"github.com/tatianab/miu-game/internal/rules"
)

var errUnsolved = errors.New("level not solved")

var checkFlags struct {
	level   int
	forward string
	reverse string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Replay a solution and report whether it solves a level",
	Long: "Replay forward and backward steps against a level and print both chains.\n" +
		"Steps are rule ids separated by commas, each optionally followed by @site:\n\n" +
		"  miu check --level 2 --forward rule2,rule2 --reverse rule3@1\n\n" +
		"Exits non-zero when the level is not solved.",
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.IntVar(&checkFlags.level, "level", 1, "level number")
	f.StringVar(&checkFlags.forward, "forward", "", "steps applied from the start string")
	f.StringVar(&checkFlags.reverse, "reverse", "", "steps applied backward from the target")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel, "text", cmd.ErrOrStderr())

	gameConfig, err := loadGameConfig(cfg)
	if err != nil {
		return err
	}
	if checkFlags.reverse != "" && !gameConfig.Bidirectional {
		return fmt.Errorf("puzzle set %q has no backward rules", gameConfig.Name)
	}

	session := engine.NewSession(gameConfig, logging.New("check"))
	if err := session.SelectLevel(checkFlags.level - 1); err != nil {
		return fmt.Errorf("--level %d: %w", checkFlags.level, err)
	}

	forward, err := parseSteps(checkFlags.forward, rules.Forward)
	if err != nil {
		return fmt.Errorf("--forward: %w", err)
	}
	reverse, err := parseSteps(checkFlags.reverse, rules.Backward)
	if err != nil {
		return fmt.Errorf("--reverse: %w", err)
	}
	if err := session.Restore(&models.GameSession{
		Name:    "check",
		RuleSet: gameConfig.Name,
		LevelID: session.Level().ID,
		Forward: forward,
		Reverse: reverse,
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	l := session.Level()
	b := session.Chain()
	fmt.Fprintf(out, "Level %d (%s): %s -> %s\n\n", checkFlags.level, l.ID, l.Start, l.Target)
	if err := printChain(out, "Forward", b.Forward); err != nil {
		return err
	}
	if gameConfig.Bidirectional {
		fmt.Fprintln(out)
		if err := printChain(out, "Backward", b.Reverse); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)

	if !session.Solved() {
		fmt.Fprintln(out, "Not solved.")
		return errUnsolved
	}
	if gameConfig.Bidirectional {
		fmt.Fprintf(out, "Solved: the chains meet at %s.\n", b.MeetingPoint)
	} else {
		fmt.Fprintln(out, "Solved.")
	}
	return nil
}

func printChain(out io.Writer, title string, c chain.Chain) error {
	fmt.Fprintf(out, "%s (%s):\n", title, c.State())
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  0\t\t%s\n", c.Start())
	for i, app := range c.Rules {
		result := "invalid"
		if c.IsValid(i) {
			result = c.IntermediateStrings[i+1]
		}
		fmt.Fprintf(w, "  %d\t%s@%d\t%s\n", i+1, app.Rule.ID, app.Position, result)
	}
	return w.Flush()
}
