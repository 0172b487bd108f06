package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tatianab/miu-game/internal/config"
	"github.com/tatianab/miu-game/internal/content"
	"github.com/tatianab/miu-game/internal/models"
	"github.com/tatianab/miu-game/internal/rules"
)

// loadSettings reads the environment and applies flag overrides.
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if rootFlags.saveDir != "" {
		cfg.SaveDir = rootFlags.saveDir
	}
	return cfg, nil
}

// loadGameConfig resolves the puzzle set: --config, then --set, then
// $MIU_RULESET.
func loadGameConfig(cfg *config.Config) (*content.GameConfig, error) {
	if rootFlags.set != "" && rootFlags.config != "" {
		return nil, errors.New("--set and --config cannot be used together")
	}
	if rootFlags.config != "" {
		return content.LoadFile(rootFlags.config)
	}
	name := cfg.RuleSet
	if rootFlags.set != "" {
		name = rootFlags.set
	}
	return content.Load(name)
}

// parseSteps reads a comma separated step list such as "rule2,rule1@0".
// A step without "@site" uses site 0.
func parseSteps(list string, d rules.Direction) ([]models.Step, error) {
	var steps []models.Step
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, site, found := strings.Cut(tok, "@")
		step := models.Step{Rule: strings.TrimSpace(id), Direction: string(d)}
		if found {
			n, err := strconv.Atoi(strings.TrimSpace(site))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("step %q: site must be a non-negative integer", tok)
			}
			step.Position = n
		}
		if step.Rule == "" {
			return nil, fmt.Errorf("step %q: missing rule id", tok)
		}
		steps = append(steps, step)
	}
	return steps, nil
}
