// Package engine holds the per-player game session: which level is being
// played, which side of the puzzle is active, which step's site picker is open,
// and the current chain value. Every event handler replaces the chain with a
// freshly replayed one.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tatianab/miu-game/internal/chain"
	"github.com/tatianab/miu-game/internal/content"
	"github.com/tatianab/miu-game/internal/models"
	"github.com/tatianab/miu-game/internal/rules"
)

var (
	ErrChainInvalid         = errors.New("chain contains invalid steps; delete or fix them first")
	ErrNoApplications       = errors.New("rule has no application site")
	ErrDirectionUnsupported = errors.New("direction not available in this puzzle set")
	ErrLevelOutOfRange      = errors.New("level out of range")
	ErrStepOutOfRange       = errors.New("step out of range")
	ErrUnknownRule          = errors.New("unknown rule")
)

// NoExpansion marks that no step's site picker is open.
const NoExpansion = -1

// Session is the view state of one game.
type Session struct {
	config    *content.GameConfig
	level     int
	direction rules.Direction
	expanded  int
	chain     chain.Bidirectional
	logger    *slog.Logger
}

// NewSession starts at the first level.
func NewSession(cfg *content.GameConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{config: cfg, logger: logger}
	s.reset(0)
	return s
}

func (s *Session) reset(level int) {
	l := s.config.Levels[level]
	s.level = level
	s.direction = rules.Forward
	s.expanded = NoExpansion
	s.chain = chain.ComputeBidirectional(l.Start, l.Target, nil, nil)
}

// Config returns the puzzle set.
func (s *Session) Config() *content.GameConfig { return s.config }

// LevelIndex returns the index of the current level.
func (s *Session) LevelIndex() int { return s.level }

// Level returns the current level.
func (s *Session) Level() content.Level { return s.config.Levels[s.level] }

// Direction returns the active side.
func (s *Session) Direction() rules.Direction { return s.direction }

// Expanded returns the step whose site picker is open, or NoExpansion.
func (s *Session) Expanded() int { return s.expanded }

// Chain returns the current chain value.
func (s *Session) Chain() chain.Bidirectional { return s.chain }

// ActiveChain returns the chain on the active side.
func (s *Session) ActiveChain() chain.Chain { return s.chain.Side(s.direction) }

// SelectLevel switches level and clears both chains.
func (s *Session) SelectLevel(i int) error {
	if i < 0 || i >= len(s.config.Levels) {
		return fmt.Errorf("%w: %d", ErrLevelOutOfRange, i)
	}
	s.reset(i)
	s.logger.Debug("level selected", "level", s.Level().ID)
	return nil
}

// Reset clears the current level.
func (s *Session) Reset() {
	s.reset(s.level)
	s.logger.Debug("level reset", "level", s.Level().ID)
}

// NextLevel advances when there is a next level.
func (s *Session) NextLevel() bool {
	if s.level >= len(s.config.Levels)-1 {
		return false
	}
	return s.SelectLevel(s.level+1) == nil
}

// SetDirection picks the active side. Backward is only available in
// bidirectional sets.
func (s *Session) SetDirection(d rules.Direction) error {
	if d == rules.Backward && !s.config.Bidirectional {
		return ErrDirectionUnsupported
	}
	if d != s.direction {
		s.expanded = NoExpansion
	}
	s.direction = d
	return nil
}

// ToggleDirection flips the active side.
func (s *Session) ToggleDirection() error {
	return s.SetDirection(s.direction.Opposite())
}

// Rules returns the rules offered on the active side.
func (s *Session) Rules() []*rules.Rule {
	var out []*rules.Rule
	for _, r := range s.config.Rules {
		if r.Supports(s.direction) {
			out = append(out, r)
		}
	}
	return out
}

// Available returns the sites rule has on the active chain's current string.
func (s *Session) Available(rule *rules.Rule) []rules.Match {
	if !rule.Supports(s.direction) {
		return nil
	}
	return rule.Matcher(s.direction).FindApplications(s.ActiveChain().CurrentString)
}

// ApplyRule appends rule at its first site. When the rule had several sites the
// new step's picker is opened.
func (s *Session) ApplyRule(rule *rules.Rule) error {
	sites, err := s.checkApply(rule)
	if err != nil {
		return err
	}
	index := len(s.ActiveChain().Rules)
	s.apply(rule, 0)
	if len(sites) > 1 {
		s.expanded = index
	}
	return nil
}

// ApplyRuleAt appends rule at an explicit site.
func (s *Session) ApplyRuleAt(rule *rules.Rule, site int) error {
	if _, err := s.checkApply(rule); err != nil {
		return err
	}
	s.apply(rule, site)
	return nil
}

// ApplyRuleID looks the rule up by id and applies it at site.
func (s *Session) ApplyRuleID(id string, site int) error {
	r, ok := s.config.Rule(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, id)
	}
	return s.ApplyRuleAt(r, site)
}

func (s *Session) checkApply(rule *rules.Rule) ([]rules.Match, error) {
	if rule == nil {
		return nil, ErrUnknownRule
	}
	if !rule.Supports(s.direction) {
		return nil, fmt.Errorf("%w: %s %s", ErrDirectionUnsupported, rule.ID, s.direction)
	}
	if !s.ActiveChain().CanExtend() {
		return nil, ErrChainInvalid
	}
	sites := s.Available(rule)
	if len(sites) == 0 {
		return nil, fmt.Errorf("%w: %s on %q", ErrNoApplications, rule.Name, s.ActiveChain().CurrentString)
	}
	return sites, nil
}

func (s *Session) apply(rule *rules.Rule, site int) {
	s.chain = chain.Rescan(chain.AppendBidirectional(s.chain, rule, site, s.direction))
	c := s.ActiveChain()
	s.logger.Debug("rule applied",
		"rule", rule.ID, "direction", s.direction, "site", site,
		"result", c.CurrentString, "valid_up_to", c.ValidUpTo, "met", s.chain.Met)
}

// DeleteStep removes step i from the active chain and replays it.
func (s *Session) DeleteStep(i int) error {
	if i < 0 || i >= len(s.ActiveChain().Rules) {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, i)
	}
	switch {
	case s.expanded == i:
		s.expanded = NoExpansion
	case s.expanded != NoExpansion && i < s.expanded:
		s.expanded--
	}
	s.chain = chain.Rescan(chain.DeleteBidirectional(s.chain, i, s.direction))
	c := s.ActiveChain()
	s.logger.Debug("step deleted",
		"index", i, "direction", s.direction, "valid_up_to", c.ValidUpTo, "steps", len(c.Rules))
	return nil
}

// Reposition changes the site of step i and replays. The picker closes.
func (s *Session) Reposition(i, site int) error {
	if i < 0 || i >= len(s.ActiveChain().Rules) {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, i)
	}
	s.chain = chain.Rescan(chain.RepositionBidirectional(s.chain, i, site, s.direction))
	s.expanded = NoExpansion
	c := s.ActiveChain()
	s.logger.Debug("step repositioned",
		"index", i, "site", site, "direction", s.direction, "valid_up_to", c.ValidUpTo)
	return nil
}

// Positions returns the live sites of step i on the active chain.
func (s *Session) Positions(i int) []rules.Match {
	return s.ActiveChain().Applications(i)
}

// TogglePositions opens or closes the site picker of step i. Steps with a
// single site have nothing to pick.
func (s *Session) TogglePositions(i int) bool {
	if len(s.Positions(i)) <= 1 {
		return false
	}
	if s.expanded == i {
		s.expanded = NoExpansion
	} else {
		s.expanded = i
	}
	return true
}

// CollapsePositions closes any open picker.
func (s *Session) CollapsePositions() {
	s.expanded = NoExpansion
}

// Solved reports whether the level is complete: the forward chain reached the
// target in a unidirectional set, or the two chains met in a bidirectional one.
func (s *Session) Solved() bool {
	if s.config.Bidirectional {
		return s.chain.Met
	}
	return s.chain.Forward.CurrentString == s.Level().Target
}

// Snapshot captures the session for saving.
func (s *Session) Snapshot(name string) *models.GameSession {
	return &models.GameSession{
		Name:      name,
		RuleSet:   s.config.Name,
		LevelID:   s.Level().ID,
		Direction: string(s.direction),
		Forward:   toSteps(s.chain.Forward.Rules),
		Reverse:   toSteps(s.chain.Reverse.Rules),
	}
}

func toSteps(apps []chain.Application) []models.Step {
	out := make([]models.Step, 0, len(apps))
	for _, a := range apps {
		out = append(out, models.Step{Rule: a.Rule.ID, Position: a.Position, Direction: string(a.Direction)})
	}
	return out
}

// Restore replaces the session state with a saved one. Steps are replayed, so
// a save made against a different rule set revalidates like any other edit.
func (s *Session) Restore(saved *models.GameSession) error {
	if saved.RuleSet != "" && saved.RuleSet != s.config.Name {
		return fmt.Errorf("session %q was saved with puzzle set %q, not %q", saved.Name, saved.RuleSet, s.config.Name)
	}
	level, ok := s.config.LevelIndex(saved.LevelID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrLevelOutOfRange, saved.LevelID)
	}
	fwd, err := s.fromSteps(saved.Forward)
	if err != nil {
		return err
	}
	rev, err := s.fromSteps(saved.Reverse)
	if err != nil {
		return err
	}
	direction, err := rules.ParseDirection(saved.Direction)
	if err != nil {
		return err
	}
	if direction == rules.Backward && !s.config.Bidirectional {
		direction = rules.Forward
	}

	l := s.config.Levels[level]
	s.level = level
	s.direction = direction
	s.expanded = NoExpansion
	s.chain = chain.ComputeBidirectional(l.Start, l.Target, fwd, rev)
	s.logger.Info("session restored", "name", saved.Name, "level", l.ID,
		"forward_steps", len(fwd), "reverse_steps", len(rev))
	return nil
}

func (s *Session) fromSteps(steps []models.Step) ([]chain.Application, error) {
	out := make([]chain.Application, 0, len(steps))
	for _, st := range steps {
		r, ok := s.config.Rule(st.Rule)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, st.Rule)
		}
		d, err := rules.ParseDirection(st.Direction)
		if err != nil {
			return nil, err
		}
		out = append(out, chain.Application{Rule: r, Position: st.Position, Direction: d})
	}
	return out, nil
}
