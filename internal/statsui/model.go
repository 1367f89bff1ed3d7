// Package statsui provides the Bubble Tea report browser.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/hanzistats/internal/report"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Model implements the Bubble Tea report browser: one tab per deck, each
// scrolling through that deck's rendered report.
type Model struct {
	batch report.BatchReport

	tabs      []string
	activeTab int
	viewports []viewport.Model

	width  int
	height int
}

// NewModel constructs a browser over an already computed batch report.
func NewModel(batch report.BatchReport) *Model {
	m := &Model{batch: batch}
	for _, deck := range batch.Decks {
		m.tabs = append(m.tabs, deck.Name)
	}
	if len(m.tabs) == 0 {
		m.tabs = []string{"No decks"}
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		default:
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := footerStyle.Render("←/→ deck  ↑/↓ scroll  g/G top/bottom  q quit")
	return strings.Join([]string{header, m.viewports[m.activeTab].View(), footer}, "\n")
}

func (m *Model) moveTab(delta int) {
	m.activeTab += delta
	if m.activeTab < 0 {
		m.activeTab = len(m.tabs) - 1
	}
	if m.activeTab >= len(m.tabs) {
		m.activeTab = 0
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		style := inactiveNavStyle
		if i == m.activeTab {
			style = activeNavStyle
		}
		parts = append(parts, style.Render(tab))
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if len(m.batch.Decks) == 0 {
		return tabs
	}
	deck := m.batch.Decks[m.activeTab]
	summary := summaryStyle.Render(
		fmt.Sprintf("%d Hanzi, %d reviewed (%.1f%%)", deck.TotalCount, deck.ReviewedCount, deck.ReviewedPct))
	return lipgloss.JoinVertical(lipgloss.Left, tabs, summary)
}

func (m *Model) updateLayout() {
	headerHeight := lipgloss.Height(m.renderHeader())
	bodyHeight := m.height - headerHeight - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
}

func (m *Model) renderTabContents() {
	for i := range m.viewports {
		if i >= len(m.batch.Decks) {
			m.viewports[i].SetContent("No decks found.")
			continue
		}
		var buf bytes.Buffer
		if err := report.RenderDeck(&buf, m.batch.Decks[i]); err != nil {
			m.viewports[i].SetContent(fmt.Sprintf("failed to render report: %v", err))
			continue
		}
		m.viewports[i].SetContent(buf.String())
	}
}
