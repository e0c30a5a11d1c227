package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/launch"
)

func testModel(t *testing.T) (Model, *dashboard.Dashboard) {
	t.Helper()
	tbl, err := launch.NewTable([]launch.Record{
		{Site: "KSC", PayloadMassKg: 0, BoosterCategory: "v1", Outcome: launch.Success},
		{Site: "KSC", PayloadMassKg: 3000, BoosterCategory: "v1", Outcome: launch.Failure},
		{Site: "VAFB", PayloadMassKg: 9000, BoosterCategory: "FT", Outcome: launch.Success},
	})
	require.NoError(t, err)
	d := dashboard.New(tbl)
	return New(d), d
}

func press(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TabCyclesFocus(t *testing.T) {
	m, _ := testModel(t)
	assert.Equal(t, FocusSite, m.Focus())

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusLow, m.Focus())
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusSite, m.Focus())
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FocusHigh, m.Focus())
}

func TestModel_SiteCycling(t *testing.T) {
	m, d := testModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, launch.SiteSelector("KSC"), d.State().Site)
	assert.NotEmpty(t, m.Cycle())

	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, launch.AllSites, d.State().Site, "wraps to All Sites")

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, launch.SiteSelector("VAFB"), d.State().Site)

	press(m, runes("a"))
	assert.Equal(t, launch.AllSites, d.State().Site)
}

func TestModel_SliderHandles(t *testing.T) {
	m, d := testModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, launch.PayloadRange{Low: 2000, High: 9000}, d.State().Range)
	assert.Len(t, d.Scatter().Rows, 2)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, launch.PayloadRange{Low: 2000, High: 8000}, d.State().Range)
	assert.Len(t, d.Scatter().Rows, 1)

	press(m, runes("r"))
	assert.Equal(t, launch.PayloadRange{Low: 0, High: 9000}, d.State().Range)
}

func TestModel_View(t *testing.T) {
	m, _ := testModel(t)
	view := m.View()

	for _, want := range []string{
		HeadingText,
		"All Sites",
		launch.TitleAllSitesDistribution,
		launch.TitleAllSitesScatter,
		"Payload range (Kg):",
		"Payload Mass (kg)",
		"v1 (2)",
		"FT (1)",
	} {
		assert.Contains(t, view, want)
	}
}

func TestModel_ViewUnknownSiteShowsEmptyCharts(t *testing.T) {
	m, d := testModel(t)
	d.SelectSite("Boca Chica")
	view := m.View()
	assert.Contains(t, view, "Boca Chica")
	assert.Contains(t, view, "No launches match this selection.")
	assert.Contains(t, view, "No launches in this payload range.")
}

func TestModel_SearchSelectsFirstMatch(t *testing.T) {
	m, d := testModel(t)

	m = press(m, runes("/"))
	require.True(t, m.Searching())
	m = press(m, runes("va"))
	assert.Contains(t, m.View(), "› VAFB")

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Searching())
	assert.Equal(t, launch.SiteSelector("VAFB"), d.State().Site)
}

func TestModel_SearchCapturesKeys(t *testing.T) {
	m, d := testModel(t)

	m = press(m, runes("/"))
	next, _ := m.Update(runes("q"))
	m = next.(Model)
	assert.True(t, m.Searching(), "q is typed, not quit")
	assert.NotEmpty(t, m.View())

	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Searching())
	assert.Equal(t, launch.AllSites, d.State().Site)
	assert.Empty(t, m.Cycle())
}

func TestModel_SearchWithoutMatchKeepsSite(t *testing.T) {
	m, d := testModel(t)

	m = press(m, runes("/"), runes("boca"))
	assert.Contains(t, m.View(), "no matching sites")

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Searching())
	assert.Equal(t, launch.AllSites, d.State().Site)
}

func TestModel_TracksRenderCycles(t *testing.T) {
	m, d := testModel(t)
	assert.NotContains(t, m.View(), "render #")

	u := d.SelectSite("KSC")
	assert.Equal(t, u.Cycle, m.Cycle(), "cycles driven outside the UI are reported too")
	assert.Contains(t, m.View(), "render #1 "+u.Cycle[:8])

	m = press(m, runes("r"))
	assert.NotEqual(t, u.Cycle, m.Cycle())
	assert.Contains(t, m.View(), "render #2")
}

func TestModel_Quit(t *testing.T) {
	m, _ := testModel(t)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, next.(Model).width)
}

func TestRenderPie_Shares(t *testing.T) {
	d := launch.Distribution{
		Title:  "Success vs Failure for site KSC",
		Slices: []launch.Slice{{Label: "Success", Value: 3}, {Label: "Failure", Value: 1}},
	}
	out := renderPie(d, New(nil).bar, DefaultStyles())
	assert.Contains(t, out, " 75.0%")
	assert.Contains(t, out, " 25.0%")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "KSC LC-39A", truncate("KSC LC-39A", labelWidth))

	long := truncate("Байконур Космодром 200", labelWidth)
	assert.True(t, utf8.ValidString(long))
	assert.LessOrEqual(t, lipgloss.Width(long), labelWidth)
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.True(t, strings.HasPrefix(long, "Байконур"))
}

func TestColumn(t *testing.T) {
	r := launch.PayloadRange{Low: 0, High: 100}
	assert.Equal(t, 0, column(0, r, 11))
	assert.Equal(t, 5, column(50, r, 11))
	assert.Equal(t, 10, column(100, r, 11))
	assert.Equal(t, 0, column(7, launch.PayloadRange{Low: 7, High: 7}, 11))
}
