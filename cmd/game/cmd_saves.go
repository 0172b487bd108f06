package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tatianab/miu-game/internal/models"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved sessions",
	Args:  cobra.NoArgs,
	RunE:  runSaves,
}

func runSaves(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	store := models.NewStore(cfg.SaveDir)
	names, err := store.List()
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(out, "No saved sessions in %s\n", store.Dir)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSET\tLEVEL\tSTEPS\tSAVED")
	for _, name := range names {
		s, err := store.Load(name)
		if err != nil {
			fmt.Fprintf(w, "%s\t?\t?\t?\t%v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d+%d\t%s\n", s.Name, s.RuleSet, s.LevelID,
			len(s.Forward), len(s.Reverse), s.SavedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}
