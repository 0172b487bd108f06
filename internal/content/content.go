// Package content loads puzzle sets: the rules a game offers and the levels
// played with them. Sets are YAML documents; the built-in ones are embedded.
package content

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/miu-game/internal/rules"
)

//go:embed sets/*.yaml
var setFS embed.FS

// DefaultSet is the set used when none is configured.
const DefaultSet = "miu"

var validate = validator.New()

// Level is a static puzzle: reach Target from Start.
type Level struct {
	ID          string `yaml:"id" validate:"required"`
	Start       string `yaml:"start" validate:"required"`
	Target      string `yaml:"target" validate:"required"`
	Description string `yaml:"description"`
	Difficulty  string `yaml:"difficulty"`
}

// RuleSpec is a rule as written in a set file.
type RuleSpec struct {
	ID          string      `yaml:"id" validate:"required"`
	Name        string      `yaml:"name" validate:"required"`
	Description string      `yaml:"description"`
	Forward     *rules.Spec `yaml:"forward,omitempty"`
	Backward    *rules.Spec `yaml:"backward,omitempty"`
}

// SetFile is the on-disk shape of a puzzle set.
type SetFile struct {
	Name          string     `yaml:"name" validate:"required"`
	Title         string     `yaml:"title"`
	Bidirectional bool       `yaml:"bidirectional"`
	Rules         []RuleSpec `yaml:"rules" validate:"required,min=1,dive"`
	Levels        []Level    `yaml:"levels" validate:"required,min=1,dive"`
}

// GameConfig is a loaded puzzle set, built once and shared read-only.
type GameConfig struct {
	Name          string
	Title         string
	Bidirectional bool
	Rules         []*rules.Rule
	Levels        []Level
}

// Rule returns the rule with the given id.
func (c *GameConfig) Rule(id string) (*rules.Rule, bool) {
	for _, r := range c.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// LevelIndex returns the position of the level with the given id.
func (c *GameConfig) LevelIndex(id string) (int, bool) {
	for i, l := range c.Levels {
		if l.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Level returns the level with the given id.
func (c *GameConfig) Level(id string) (Level, bool) {
	i, ok := c.LevelIndex(id)
	if !ok {
		return Level{}, false
	}
	return c.Levels[i], true
}

// Load reads an embedded set by name.
func Load(name string) (*GameConfig, error) {
	data, err := setFS.ReadFile("sets/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("puzzle set %q not found (available: %s): %w",
			name, strings.Join(List(), ", "), err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse puzzle set %q: %w", name, err)
	}
	return cfg, nil
}

// LoadFile reads a set from disk.
func LoadFile(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse puzzle set %s: %w", path, err)
	}
	return cfg, nil
}

// List returns the names of the embedded sets, sorted.
func List() []string {
	entries, _ := setFS.ReadDir("sets")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

// Parse decodes and validates a set, then builds its rules.
func Parse(data []byte) (*GameConfig, error) {
	var f SetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := validate.Struct(f); err != nil {
		return nil, err
	}

	cfg := &GameConfig{
		Name:          f.Name,
		Title:         f.Title,
		Bidirectional: f.Bidirectional,
		Levels:        f.Levels,
	}
	if cfg.Title == "" {
		cfg.Title = f.Name
	}

	seen := make(map[string]bool)
	for _, spec := range f.Rules {
		if seen[spec.ID] {
			return nil, fmt.Errorf("duplicate rule id %q", spec.ID)
		}
		seen[spec.ID] = true

		r, err := buildRule(spec, f.Bidirectional)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", spec.ID, err)
		}
		cfg.Rules = append(cfg.Rules, r)
	}

	seen = make(map[string]bool)
	for _, l := range f.Levels {
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate level id %q", l.ID)
		}
		seen[l.ID] = true
	}
	return cfg, nil
}

func buildRule(spec RuleSpec, bidirectional bool) (*rules.Rule, error) {
	for _, s := range []*rules.Spec{spec.Forward, spec.Backward} {
		if s == nil {
			continue
		}
		if err := validate.Struct(s); err != nil {
			return nil, err
		}
	}

	if bidirectional {
		if spec.Forward == nil || spec.Backward == nil {
			return nil, errors.New("bidirectional sets need both forward and backward")
		}
		fwd, err := rules.Build(*spec.Forward)
		if err != nil {
			return nil, err
		}
		bwd, err := rules.Build(*spec.Backward)
		if err != nil {
			return nil, err
		}
		return rules.NewBidirectional(spec.ID, spec.Name, spec.Description, fwd, bwd), nil
	}

	switch {
	case spec.Forward != nil && spec.Backward == nil:
		m, err := rules.Build(*spec.Forward)
		if err != nil {
			return nil, err
		}
		return rules.NewUnidirectional(spec.ID, spec.Name, spec.Description, rules.Forward, m), nil
	case spec.Backward != nil && spec.Forward == nil:
		m, err := rules.Build(*spec.Backward)
		if err != nil {
			return nil, err
		}
		return rules.NewUnidirectional(spec.ID, spec.Name, spec.Description, rules.Backward, m), nil
	}
	return nil, errors.New("unidirectional sets need exactly one of forward or backward")
}
