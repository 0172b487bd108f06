package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	set     string
	config  string
	saveDir string
}

var rootCmd = &cobra.Command{
	Use:   "miu",
	Short: "The MIU string rewriting puzzle",
	Long: "Turn one string into another with four rewrite rules.\n" +
		"Build a chain forward from the start, backward from the target,\n" +
		"or both until they meet. Run without a command to play.",
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.set, "set", "", "built-in puzzle set (default $MIU_RULESET or \"miu\")")
	pf.StringVar(&rootFlags.config, "config", "", "load the puzzle set from a YAML file")
	pf.StringVar(&rootFlags.saveDir, "save-dir", "", "directory for saved sessions (default $MIU_SAVE_DIR or \".saves\")")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.Version = version
}
