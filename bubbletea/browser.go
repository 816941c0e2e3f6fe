// Package bubbletea provides a terminal browser for change groups using the
// Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffpattern"
	theme "github.com/fwojciec/diffpattern/lipgloss"
	"github.com/fwojciec/diffpattern/pathfilter"
)

// Model is the Bubble Tea model for browsing the groups of a report,
// one group per page.
type Model struct {
	report *diffpattern.Report
	paths  []string // every affected file, first-seen order
	active int

	highlighter diffpattern.Highlighter
	clipboard   diffpattern.Clipboard

	// UI state
	viewport   viewport.Model
	keymap     KeyMap
	styles     diffpattern.Styles
	renderer   *lipgloss.Renderer
	width      int
	ready      bool
	pendingKey string
	notice     string
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	renderer    *lipgloss.Renderer
	theme       diffpattern.Theme
	highlighter diffpattern.Highlighter
	clipboard   diffpattern.Clipboard
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t diffpattern.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithHighlighter sets the highlighter used for representative diffs.
func WithHighlighter(h diffpattern.Highlighter) ModelOption {
	return func(cfg *modelConfig) {
		cfg.highlighter = h
	}
}

// WithClipboard sets the clipboard used by the copy binding.
func WithClipboard(c diffpattern.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// NewModel creates a new Model for report.
func NewModel(report *diffpattern.Report, opts ...ModelOption) Model {
	cfg := &modelConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.theme == nil {
		cfg.theme = theme.DefaultTheme()
	}
	if report == nil {
		report = &diffpattern.Report{}
	}

	return Model{
		report:      report,
		paths:       affectedPaths(report),
		highlighter: cfg.highlighter,
		clipboard:   cfg.clipboard,
		keymap:      DefaultKeyMap(),
		styles:      cfg.theme.Styles(),
		renderer:    cfg.renderer,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.viewport.GotoTop()
			m.pendingKey = ""
			return m, nil
		}
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}
		m.pendingKey = ""
		m.notice = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.NextGroup):
			m.gotoGroup(m.active + 1)
			return m, nil
		case key.Matches(msg, m.keymap.PrevGroup):
			m.gotoGroup(m.active - 1)
			return m, nil
		case key.Matches(msg, m.keymap.Copy):
			m.copyRepresentative()
			return m, nil
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		statusBarHeight := 1
		m.width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// ActiveGroup returns the 0-based index of the displayed group.
func (m Model) ActiveGroup() int {
	return m.active
}

// Notice returns the transient status message, such as the copy result.
func (m Model) Notice() string {
	return m.notice
}

// affectedPaths lists the files touched by any group of report.
func affectedPaths(report *diffpattern.Report) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, g := range report.Analysis.Groups {
		for _, p := range g.AffectedFiles {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func (m Model) groups() []diffpattern.ChangeGroup {
	return m.report.Analysis.Groups
}

// gotoGroup switches to group i, clamped to the valid range, and scrolls
// to the top of its page.
func (m *Model) gotoGroup(i int) {
	n := len(m.groups())
	if n == 0 {
		return
	}
	i = max(0, min(i, n-1))
	if i == m.active {
		return
	}
	m.active = i
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// copyRepresentative copies the active group's representative diff.
func (m *Model) copyRepresentative() {
	groups := m.groups()
	if len(groups) == 0 {
		return
	}
	if m.clipboard == nil {
		m.notice = "clipboard unavailable"
		return
	}
	if err := m.clipboard.Copy(groups[m.active].Representative().RawText); err != nil {
		m.notice = "copy failed: " + err.Error()
		return
	}
	m.notice = "copied representative diff"
}

func (m Model) renderContent() string {
	groups := m.groups()
	if len(groups) == 0 {
		return "\n(No change groups)\n"
	}
	g := groups[m.active]
	return renderGroup(groupView{
		group:       g,
		related:     pathfilter.RelatedFiles(g.Representative().FilePath, m.paths),
		index:       m.active,
		total:       len(groups),
		styles:      m.styles,
		renderer:    m.renderer,
		highlighter: m.highlighter,
	})
}

// statusBarView renders the status bar with position info and key hints.
func (m Model) statusBarView() string {
	bar := styleFromColorPair(m.styles.Description, m.renderer)
	dim := styleFromColorPair(m.styles.Muted, m.renderer)
	sep := dim.Render(" │ ")

	total := len(m.groups())
	current := 0
	if total > 0 {
		current = m.active + 1
	}
	width := digitWidth(total)
	content := bar.Render(fmt.Sprintf("group %*d/%-*d", width, current, width, total)) + sep +
		bar.Render(m.scrollPosition()) + sep

	if m.notice != "" {
		content += bar.Render(m.notice) + sep
	}

	hints := make([]string, 0, 5)
	for _, b := range m.keymap.ShortHelp() {
		hints = append(hints, b.Help().Key+":"+b.Help().Desc)
	}
	content += dim.Render(strings.Join(hints, "  "))

	return content
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	return fmt.Sprintf("%2d%%", int(m.viewport.ScrollPercent()*100))
}

func digitWidth(n int) int {
	return len(fmt.Sprint(n))
}

// Compile-time interface verification.
var _ diffpattern.Viewer = (*Viewer)(nil)

// Viewer implements diffpattern.Viewer using a Bubble Tea TUI.
type Viewer struct {
	opts []ModelOption
}

// NewViewer creates a new Viewer. The options are applied to every model
// it creates.
func NewViewer(opts ...ModelOption) *Viewer {
	return &Viewer{opts: opts}
}

// View displays the report and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, report *diffpattern.Report) error {
	if report == nil || len(report.Analysis.Groups) == 0 {
		return diffpattern.ErrNoChanges
	}
	p := tea.NewProgram(NewModel(report, v.opts...),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
