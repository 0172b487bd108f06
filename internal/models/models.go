package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Step is one rule application as it is written to disk. Rules are stored by id
// and resolved against the puzzle set when the session is restored.
type Step struct {
	Rule      string `yaml:"rule" validate:"required"`
	Position  int    `yaml:"position" validate:"min=0"`
	Direction string `yaml:"direction,omitempty" validate:"omitempty,oneof=forward backward reverse"`
}

// GameSession is a saved game: which level was being played and the steps of
// both chains. Derived strings are not stored; they are replayed on load.
type GameSession struct {
	ID        string    `yaml:"id" validate:"required"`
	Name      string    `yaml:"name" validate:"required"`
	RuleSet   string    `yaml:"rule_set" validate:"required"`
	LevelID   string    `yaml:"level_id" validate:"required"`
	Direction string    `yaml:"direction" validate:"omitempty,oneof=forward backward reverse"` // active side when saved
	SavedAt   time.Time `yaml:"saved_at"`
	Forward   []Step    `yaml:"-"`
	Reverse   []Step    `yaml:"-"`
}

// Steps groups both chains for steps.yaml.
type Steps struct {
	Forward []Step `yaml:"forward" validate:"dive"`
	Reverse []Step `yaml:"reverse" validate:"dive"`
}

// Validate checks the session and its steps.
func (s *GameSession) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	return validate.Struct(Steps{Forward: s.Forward, Reverse: s.Reverse})
}
