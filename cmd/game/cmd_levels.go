package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tatianab/miu-game/internal/content"
	"github.com/tatianab/miu-game/internal/rules"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the rules and levels of a puzzle set",
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	gameConfig, err := loadGameConfig(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mode := "forward only"
	if gameConfig.Bidirectional {
		mode = "bidirectional"
	}
	fmt.Fprintf(out, "%s (%s, %s)\n\n", gameConfig.Title, gameConfig.Name, mode)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tNAME\tFORWARD\tBACKWARD")
	for _, r := range gameConfig.Rules {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name,
			matcherName(r, rules.Forward), matcherName(r, rules.Backward))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tDIFFICULTY\tSTART\tTARGET\tDESCRIPTION")
	for i, l := range gameConfig.Levels {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, l.ID, l.Difficulty, l.Start, l.Target, l.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if rootFlags.config == "" {
		fmt.Fprintf(out, "\nBuilt-in sets: %v\n", content.List())
	}
	return nil
}

func matcherName(r *rules.Rule, d rules.Direction) string {
	if !r.Supports(d) {
		return "-"
	}
	return r.Matcher(d).Name
}
