package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/miu-game/internal/chain"
	"github.com/tatianab/miu-game/internal/engine"
	"github.com/tatianab/miu-game/internal/models"
	"github.com/tatianab/miu-game/internal/rules"
)

type sessionState int

const (
	stateSelectLevel sessionState = iota
	statePlaying
	stateError
)

type model struct {
	state   sessionState
	session *engine.Session
	store   *models.Store
	advisor engine.Advisor

	keys      keyMap
	help      help.Model
	textInput textinput.Model
	viewport  viewport.Model

	commandMode bool
	levelCursor int
	cursor      int // selected step on the active chain
	pick        int // highlighted site while a picker is open
	status      string
	hint        string
	hinting     bool
	err         error
	width       int
	height      int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true)

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Strikethrough(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F5F5F"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#87D787")).
			Bold(true).
			Padding(0, 1)
)

// NewModel builds the program model. store and advisor may be nil.
func NewModel(session *engine.Session, store *models.Store, advisor engine.Advisor) model {
	ti := textinput.New()
	ti.Placeholder = "save NAME | load NAME | level N | hint | quit"
	ti.Prompt = ":"
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     stateSelectLevel,
		session:   session,
		store:     store,
		advisor:   advisor,
		keys:      defaultKeyMap(),
		help:      help.New(),
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type hintMsg struct {
	text string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.commandMode {
			return m.updateCommand(msg)
		}
		switch m.state {
		case stateSelectLevel:
			return m.updateSelect(msg)
		case statePlaying:
			return m.updatePlaying(msg)
		case stateError:
			if msg.Type == tea.KeyEsc {
				m.err = nil
				m.state = statePlaying
				return m.refresh(), nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := int(float64(msg.Width)*0.65), msg.Height-10
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(w, h)
		} else {
			m.viewport.Width = w
			m.viewport.Height = h
		}
		m.help.Width = msg.Width
		return m.refresh(), nil

	case hintMsg:
		m.hinting = false
		if msg.err != nil {
			m.status = "Hint failed: " + msg.err.Error()
			return m, nil
		}
		m.hint = msg.text
		return m, nil
	}

	return m, nil
}

func (m model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	levels := m.session.Config().Levels
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.levelCursor < len(levels)-1 {
			m.levelCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		if err := m.session.SelectLevel(m.levelCursor); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state = statePlaying
		m.status, m.hint = "", ""
		m.cursor = 0
		return m.refresh(), nil
	}
	return m, nil
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	active := s.ActiveChain()
	expanded := s.Expanded()
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Apply):
		i, _ := strconv.Atoi(msg.String())
		offered := s.Rules()
		if i < 1 || i > len(offered) {
			m.status = fmt.Sprintf("No rule %d", i)
			break
		}
		if err := s.ApplyRule(offered[i-1]); err != nil {
			m.status = describe(err)
			break
		}
		m.cursor = len(s.ActiveChain().Rules) - 1
		m.pick = 0
		m.hint = ""

	case key.Matches(msg, m.keys.Direction):
		if err := s.ToggleDirection(); err != nil {
			m.status = describe(err)
			break
		}
		m.cursor = max(len(s.ActiveChain().Rules)-1, 0)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(active.Rules)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Delete):
		if err := s.DeleteStep(m.cursor); err != nil {
			m.status = describe(err)
			break
		}
		m.cursor = min(m.cursor, max(len(s.ActiveChain().Rules)-1, 0))

	case key.Matches(msg, m.keys.Positions):
		if !s.TogglePositions(m.cursor) {
			m.status = "This step has only one site"
			break
		}
		if s.Expanded() != engine.NoExpansion {
			m.pick = s.ActiveChain().Rules[m.cursor].Position
		}

	case key.Matches(msg, m.keys.Left):
		if expanded != engine.NoExpansion && m.pick > 0 {
			m.pick--
		}

	case key.Matches(msg, m.keys.Right):
		if expanded != engine.NoExpansion && m.pick < len(s.Positions(expanded))-1 {
			m.pick++
		}

	case key.Matches(msg, m.keys.Confirm):
		if expanded == engine.NoExpansion {
			break
		}
		if err := s.Reposition(expanded, m.pick); err != nil {
			m.status = describe(err)
		}

	case key.Matches(msg, m.keys.Reset):
		s.Reset()
		m.cursor, m.hint = 0, ""

	case key.Matches(msg, m.keys.Next):
		if !s.NextLevel() {
			m.status = "This is the last level"
			break
		}
		m.levelCursor = s.LevelIndex()
		m.cursor, m.hint = 0, ""

	case key.Matches(msg, m.keys.Back):
		if expanded != engine.NoExpansion {
			s.CollapsePositions()
			break
		}
		m.levelCursor = s.LevelIndex()
		m.state = stateSelectLevel
		return m, nil

	case key.Matches(msg, m.keys.Hint):
		return m.requestHint()

	case key.Matches(msg, m.keys.Command):
		m.commandMode = true
		m.textInput.Reset()
		m.textInput.Focus()
		return m, textinput.Blink
	}

	return m.refresh(), nil
}

func (m model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandMode = false
		m.textInput.Blur()
		return m, nil
	case tea.KeyEnter:
		line := strings.TrimSpace(m.textInput.Value())
		m.commandMode = false
		m.textInput.Blur()
		m.textInput.Reset()
		return m.runCommand(line)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) runCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "quit", "q":
		return m, tea.Quit

	case "hint":
		return m.requestHint()

	case "level":
		n, err := strconv.Atoi(arg)
		if err == nil {
			err = m.session.SelectLevel(n - 1)
		}
		if err != nil {
			m.status = "level: " + describe(err)
			return m, nil
		}
		m.levelCursor = m.session.LevelIndex()
		m.state = statePlaying
		m.cursor, m.hint = 0, ""

	case "save":
		if m.store == nil || arg == "" {
			m.status = "usage: save NAME"
			return m, nil
		}
		if err := m.store.Save(m.session.Snapshot(arg)); err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		m.status = "Saved " + arg

	case "load":
		if m.store == nil || arg == "" {
			m.status = "usage: load NAME"
			return m, nil
		}
		saved, err := m.store.Load(arg)
		if err == nil {
			err = m.session.Restore(saved)
		}
		if err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		m.state = statePlaying
		m.levelCursor = m.session.LevelIndex()
		m.cursor = max(len(m.session.ActiveChain().Rules)-1, 0)
		m.status = "Loaded " + arg

	default:
		m.status = fmt.Sprintf("Unknown command %q", fields[0])
		return m, nil
	}
	return m.refresh(), nil
}

func (m model) requestHint() (tea.Model, tea.Cmd) {
	if m.advisor == nil {
		m.status = engine.ErrAdvisorUnavailable.Error()
		return m, nil
	}
	if m.hinting {
		return m, nil
	}
	m.hinting = true
	m.hint = ""
	return m, m.fetchHint(m.session.HintRequest())
}

func (m model) fetchHint(req engine.HintRequest) tea.Cmd {
	advisor := m.advisor
	return func() tea.Msg {
		text, err := advisor.Hint(context.Background(), req)
		return hintMsg{text, err}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, engine.ErrChainInvalid):
		return "Cannot add a rule: fix or delete the invalid steps first"
	case errors.Is(err, engine.ErrNoApplications):
		return "That rule does not apply here"
	case errors.Is(err, engine.ErrDirectionUnsupported):
		return "This puzzle only runs forward"
	}
	return err.Error()
}

// refresh re-renders the chain tables into the viewport.
func (m model) refresh() model {
	if m.viewport.Width > 0 {
		m.viewport.SetContent(m.renderChains())
	}
	return m
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateSelectLevel:
		s = m.renderLevels()

	case statePlaying:
		chains := m.renderChains()
		if m.viewport.Width > 0 {
			chains = m.viewport.View()
		}
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			chains,
			m.renderRules(),
		)

		parts := []string{m.renderHeader(), "", mainView}
		if m.hinting {
			parts = append(parts, "", helpStyle.Render("Thinking about a hint..."))
		} else if m.hint != "" {
			parts = append(parts, "", highlightStyle.Render("Hint: ")+m.hint)
		}
		if m.status != "" {
			parts = append(parts, "", helpStyle.Render(m.status))
		}
		if m.commandMode {
			parts = append(parts, "", m.textInput.View())
		}
		parts = append(parts, "", m.help.View(m.keys))
		s = lipgloss.JoinVertical(lipgloss.Left, parts...)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to go back.", m.err)
	}

	if m.commandMode && m.state != statePlaying {
		s += "\n\n" + m.textInput.View()
	}
	return "\n" + s + "\n"
}

func (m model) renderLevels() string {
	cfg := m.session.Config()
	var b strings.Builder
	b.WriteString(titleStyle.Render(cfg.Title) + "\n\n")
	b.WriteString("Select a level:\n\n")
	for i, l := range cfg.Levels {
		line := fmt.Sprintf("Level %d  %-7s %s → %s", i+1, l.Difficulty, l.Start, l.Target)
		if i == m.levelCursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if l := cfg.Levels[m.levelCursor]; l.Description != "" {
		b.WriteString("\n" + helpStyle.Render(l.Description) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ choose, enter play, q quit"))
	return b.String()
}

func (m model) renderHeader() string {
	s := m.session
	l := s.Level()
	cfg := s.Config()

	header := titleStyle.Render(fmt.Sprintf("%s · Level %d/%d", cfg.Title, s.LevelIndex()+1, len(cfg.Levels))) +
		"  " + dimStyle.Render(l.Difficulty)
	lines := []string{header}
	if l.Description != "" {
		lines = append(lines, l.Description)
	}
	if s.Solved() {
		msg := "Solved! " + l.Start + " reaches " + l.Target
		if cfg.Bidirectional {
			msg = "Solved! The chains meet at " + s.Chain().MeetingPoint
		}
		lines = append(lines, winStyle.Render(msg)+"  "+helpStyle.Render("n: next level"))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderChains() string {
	s := m.session
	b := s.Chain()
	out := m.renderChain("Forward from "+b.Forward.Start(), b.Forward, rules.Forward)
	if s.Config().Bidirectional {
		out += "\n\n" + m.renderChain("Backward from "+b.Reverse.Start(), b.Reverse, rules.Backward)
	}
	return out
}

func (m model) renderChain(title string, c chain.Chain, side rules.Direction) string {
	s := m.session
	active := s.Direction() == side

	var b strings.Builder
	heading := dimStyle.Render(title)
	if active {
		heading = titleStyle.Render(title)
	}
	b.WriteString(heading + "\n")

	if len(c.Rules) == 0 {
		if active {
			b.WriteString(helpStyle.Render("  Press a rule number to apply it") + "\n")
		}
		return b.String()
	}

	for i, app := range c.Rules {
		result := invalidStyle.Render("invalid")
		if c.IsValid(i) {
			result = c.IntermediateStrings[i+1]
		}
		name := app.Rule.Name
		if !c.IsValid(i) {
			name = invalidStyle.Render(name)
		}
		sites := len(c.Applications(i))
		suffix := ""
		if sites > 1 {
			suffix = dimStyle.Render(fmt.Sprintf(" (site %d/%d)", app.Position+1, sites))
		}
		row := fmt.Sprintf("%2d. %-10s %s%s", i+1, name, result, suffix)
		if active && i == m.cursor {
			row = cursorStyle.Render(">") + row
		} else {
			row = " " + row
		}
		b.WriteString(row + "\n")

		if active && s.Expanded() == i {
			for j, match := range s.Positions(i) {
				marker := "   "
				if j == m.pick {
					marker = " → "
				}
				line := marker + renderMatch(match)
				if j == app.Position {
					line += dimStyle.Render("  (current)")
				}
				b.WriteString("    " + line + "\n")
			}
		}
	}
	return b.String()
}

// renderMatch shows the preview with the rewritten span highlighted.
func renderMatch(match rules.Match) string {
	p := match.Preview
	start := min(max(match.Start, 0), len(p))
	end := min(start+len(match.Replacement), len(p))
	return p[:start] + highlightStyle.Render(p[start:end]) + p[end:]
}

func (m model) renderRules() string {
	s := m.session
	active := s.ActiveChain()

	var b strings.Builder
	b.WriteString(titleStyle.Render("RULES") + " " + dimStyle.Render(string(s.Direction())) + "\n")
	for i, r := range s.Rules() {
		matcher := r.Matcher(s.Direction())
		n := len(s.Available(r))
		line := fmt.Sprintf("%d  %s: %s (%d)", i+1, r.Name, matcher.Name, n)
		if n == 0 || !active.CanExtend() {
			line = dimStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + titleStyle.Render("CURRENT") + "\n" + active.CurrentString + "\n")
	if !active.CanExtend() {
		b.WriteString(invalidStyle.Render("chain has invalid steps") + "\n")
	}

	width := 30
	if m.width > 0 {
		width = int(float64(m.width) * 0.32)
	}
	return panelStyle.Width(width).Render(b.String())
}

// Run starts the program and blocks until the player quits.
func Run(session *engine.Session, store *models.Store, advisor engine.Advisor) error {
	p := tea.NewProgram(NewModel(session, store, advisor), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
