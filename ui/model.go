package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/launch"
)

// HeadingText is the dashboard heading.
const HeadingText = "SpaceX Launch Records Dashboard"

const defaultWidth = 80

// Focus identifies the control receiving ←/→.
type Focus int

const (
	FocusSite Focus = iota
	FocusLow
	FocusHigh
	focusCount
)

// maxMatches caps the site matches listed under the search prompt.
const maxMatches = 5

// renderLog records the render cycles the dashboard reports. It is shared
// by every copy of a Model.
type renderLog struct {
	last  dashboard.Update
	count int
}

// Model is the Bubble Tea model wrapping a dashboard.
type Model struct {
	dash      *dashboard.Dashboard
	keys      KeyMap
	help      help.Model
	styles    Styles
	bar       progress.Model
	search    textinput.Model
	searching bool
	renders   *renderLog
	focus     Focus
	width     int
	height    int
	quitting  bool
}

// New returns a model over d and subscribes it to d's render cycles.
func New(d *dashboard.Dashboard) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = defaultWidth / 2

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "filter sites"
	search.CharLimit = 64

	renders := &renderLog{}
	if d != nil {
		d.Subscribe(func(u dashboard.Update) {
			renders.last = u
			renders.count++
		})
	}
	return Model{
		dash:    d,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
		bar:     bar,
		search:  search,
		renders: renders,
		width:   defaultWidth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Focus returns the focused control.
func (m Model) Focus() Focus { return m.focus }

// Cycle returns the id of the last render cycle the dashboard reported.
func (m Model) Cycle() string { return m.renders.last.Cycle }

// Searching reports whether the site filter prompt is open.
func (m Model) Searching() bool { return m.searching }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.bar.Width = max(10, msg.Width-labelWidth-20)
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.search.SetValue("")
			return m, m.search.Focus()
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.NextControl):
			m.focus = (m.focus + 1) % focusCount
		case key.Matches(msg, m.keys.PrevControl):
			m.focus = (m.focus + focusCount - 1) % focusCount
		case key.Matches(msg, m.keys.NextSite):
			m.stepSite(1)
		case key.Matches(msg, m.keys.PrevSite):
			m.stepSite(-1)
		case key.Matches(msg, m.keys.AllSites):
			m.dash.SelectSite(launch.AllSites)
		case key.Matches(msg, m.keys.Reset):
			m.dash.SetPayloadRange(m.dash.Table().FullRange())
		case key.Matches(msg, m.keys.Left):
			m.move(-1)
		case key.Matches(msg, m.keys.Right):
			m.move(1)
		}
	}
	return m, nil
}

// updateSearch handles keys while the site filter prompt is open. Enter
// selects the first matching site; Esc closes the prompt unchanged.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		if matches := m.matches(); len(matches) > 0 {
			m.dash.SelectSite(matches[0].Value)
		}
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) matches() []dashboard.DropdownOption {
	return m.dash.Controls().Site.Search(strings.TrimSpace(m.search.Value()))
}

// move applies ←/→ to the focused control.
func (m *Model) move(dir int) {
	if m.focus == FocusSite {
		m.stepSite(dir)
		return
	}
	slider := m.dash.Controls().Payload
	r := slider.Nudge(m.dash.State().Range, m.focus == FocusHigh, dir)
	m.dash.SetPayloadRange(r)
}

// stepSite selects the next or previous dropdown option, wrapping around.
func (m *Model) stepSite(dir int) {
	site := m.dash.Controls().Site
	n := len(site.Options)
	i := max(site.Index(), 0)
	next := site.Options[((i+dir)%n+n)%n]
	m.dash.SelectSite(next.Value)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Heading.Width(m.width).Render(HeadingText))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewDropdown())
	if m.searching {
		sb.WriteString("\n")
		sb.WriteString(m.viewSearch())
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Panel.Render(renderPie(m.dash.Pie(), m.bar, m.styles)))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewSlider())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Panel.Render(renderScatter(m.dash.Scatter(), m.width, m.styles)))
	sb.WriteString("\n\n")
	if status := m.viewStatus(); status != "" {
		sb.WriteString(status)
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) viewSearch() string {
	var sb strings.Builder
	sb.WriteString(m.search.View())
	matches := m.matches()
	if len(matches) == 0 {
		sb.WriteString("\n" + m.styles.Muted.Render("  no matching sites"))
	}
	for i, o := range matches {
		if i == maxMatches {
			sb.WriteString("\n" + m.styles.Muted.Render(fmt.Sprintf("  … %d more", len(matches)-maxMatches)))
			break
		}
		label := "  " + o.Label
		if i == 0 {
			label = m.styles.Focused.Render("› " + o.Label)
		}
		sb.WriteString("\n" + label)
	}
	return sb.String()
}

// viewStatus describes the last render cycle, if any.
func (m Model) viewStatus() string {
	u := m.renders.last
	if u.Cycle == "" {
		return ""
	}
	return m.styles.Muted.Render(fmt.Sprintf("render #%d %s: %s → %s",
		m.renders.count, u.Cycle[:8], u.Control, strings.Join(u.Outputs, ", ")))
}

func (m Model) viewDropdown() string {
	site := m.dash.Controls().Site
	value := site.Placeholder
	if i := site.Index(); i >= 0 {
		value = site.Options[i].Label
	} else if site.Value != "" {
		value = string(site.Value)
	}
	return fmt.Sprintf("%s %s", m.styleFor(FocusSite).Render("Launch Site:"), "‹ "+value+" ›")
}

func (m Model) viewSlider() string {
	slider := m.dash.Controls().Payload
	r := slider.Value
	low := m.styleFor(FocusLow).Render(engine.FormatNumber(r.Low))
	high := m.styleFor(FocusHigh).Render(engine.FormatNumber(r.High))
	bounds := m.styles.Muted.Render(fmt.Sprintf("(%s–%s, step %s)",
		engine.FormatNumber(slider.Min), engine.FormatNumber(slider.Max), engine.FormatNumber(slider.Step)))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Label.Render("Payload range (Kg): "), low, " – ", high, " ", bounds)
}

func (m Model) styleFor(f Focus) lipgloss.Style {
	if m.focus == f {
		return m.styles.Focused
	}
	return m.styles.Blurred
}
