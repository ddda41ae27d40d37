// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package kitchentui implements the live --watch viewer for a running
// kitchen: shelf occupancy bars, a fuzzy-filterable order list, a
// syntax-highlighted detail pane for the selected order, and a status
// line fed by the kitchen's own log records. It is read-only — it only
// ever sends on the report stream, never on orders/stop/end-orders.
package kitchentui

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foodhall/kitchen/kitchen"
)

// pollInterval is how often the viewer requests a fresh snapshot.
const pollInterval = 250 * time.Millisecond

// shelfOrder is the fixed display order for the occupancy bars.
var shelfOrder = []kitchen.ShelfKey{
	kitchen.ShelfHot, kitchen.ShelfCold, kitchen.ShelfFrozen, kitchen.ShelfOverflow,
}

// orderItem adapts a kitchen.Order to bubbles/list's item interfaces.
type orderItem struct {
	order kitchen.Order
	shelf kitchen.ShelfKey
}

func (i orderItem) Title() string       { return i.order.ID }
func (i orderItem) Description() string { return string(i.shelf) + " · " + string(i.order.Temp) }
func (i orderItem) FilterValue() string { return i.order.ID }

type reportMsg struct {
	snapshot kitchen.Snapshot
}

type pollTickMsg struct{}

type logFadeMsg struct{}

// Model is the bubbletea model driving `kitchend --watch`.
type Model struct {
	report chan<- chan kitchen.Snapshot
	theme  Theme
	list   list.Model

	capacities kitchen.Capacities
	shelves    map[kitchen.ShelfKey]map[string]kitchen.Order
	ticketCt   int
	ordersEnd  bool

	showDetail bool
	showHelp   bool

	statusLine string
	width      int
	height     int
}

// New builds a viewer model that polls report on a ticker. capacities
// is used only to size the occupancy bars; it never mutates kitchen
// state.
func New(report chan<- chan kitchen.Snapshot, capacities kitchen.Capacities, theme Theme) Model {
	delegate := list.NewDefaultDelegate()
	listModel := list.New(nil, delegate, 0, 0)
	listModel.Title = "orders on the pick-up area"
	listModel.Filter = fzfFilter(newFuzzyMatcher())
	listModel.SetShowHelp(false)

	return Model{
		report:     report,
		theme:      theme,
		list:       listModel,
		capacities: capacities,
		statusLine: "watching kitchen",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(pollOnce(m.report), tickPoll())
}

func tickPoll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

// pollOnce returns a tea.Cmd that requests one snapshot and blocks
// until the machine's event loop responds.
func pollOnce(report chan<- chan kitchen.Snapshot) tea.Cmd {
	return func() tea.Msg {
		respond := make(chan kitchen.Snapshot, 1)
		report <- respond
		return reportMsg{snapshot: <-respond}
	}
}

var keyQuit = key.NewBinding(key.WithKeys("q", "ctrl+c"))
var keyDetail = key.NewBinding(key.WithKeys("enter"))
var keyHelp = key.NewBinding(key.WithKeys("?"))

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = message.Width, message.Height
		m.list.SetSize(message.Width, message.Height-m.chromeHeight())
		return m, nil

	case pollTickMsg:
		return m, tea.Batch(pollOnce(m.report), tickPoll())

	case reportMsg:
		m.applySnapshot(message.snapshot)
		return m, nil

	case logRecordMsg:
		m.statusLine = message.Summary
		return m, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg { return logRecordFadeMsg{} })

	case logRecordFadeMsg:
		m.statusLine = "watching kitchen"
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(message, keyQuit):
			return m, tea.Quit
		case key.Matches(message, keyHelp):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(message, keyDetail):
			if !m.list.SettingFilter() {
				m.showDetail = !m.showDetail
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(message)
	return m, cmd
}

// applySnapshot replaces the model's view of kitchen state and
// rebuilds the order list items.
func (m *Model) applySnapshot(snapshot kitchen.Snapshot) {
	m.shelves = snapshot.Shelves
	m.ticketCt = snapshot.TicketCount
	m.ordersEnd = snapshot.OrdersEnded

	var items []list.Item
	for _, shelf := range shelfOrder {
		ids := make([]string, 0, len(snapshot.Shelves[shelf]))
		for id := range snapshot.Shelves[shelf] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			items = append(items, orderItem{order: snapshot.Shelves[shelf][id], shelf: shelf})
		}
	}
	m.list.SetItems(items)
}

// chromeHeight is the vertical space consumed by the occupancy bars
// and status line, left over for the list.
func (m Model) chromeHeight() int {
	return len(shelfOrder) + 3
}

func (m Model) View() string {
	if m.showHelp {
		return renderHelp(m.theme)
	}

	var b strings.Builder
	b.WriteString(m.renderBars())
	b.WriteString("\n")

	if m.showDetail {
		if selected, ok := m.list.SelectedItem().(orderItem); ok {
			b.WriteString(renderOrderDetail(selected.order, m.theme))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderBars() string {
	var lines []string
	for _, shelf := range shelfOrder {
		used := len(m.shelves[shelf])
		capacity := m.capacities[shelf]
		lines = append(lines, renderBar(string(shelf), used, capacity, m.theme.ShelfColor(string(shelf)), m.theme))
	}
	return strings.Join(lines, "\n")
}

// renderBar draws a single "label [####....] used/capacity" line.
func renderBar(label string, used, capacity int, fill lipgloss.Color, theme Theme) string {
	const width = 20
	filled := width
	if capacity > 0 {
		filled = used * width / capacity
		if filled > width {
			filled = width
		}
	}
	bar := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.BarEmpty).Render(strings.Repeat("░", width-filled))

	labelStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Width(10)
	count := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render(strconv.Itoa(used) + "/" + strconv.Itoa(capacity))
	return labelStyle.Render(label) + " " + bar + " " + count
}

func (m Model) renderStatusLine() string {
	status := m.statusLine
	if m.ordersEnd {
		status += " · end-of-orders"
	}
	status += " · outstanding tickets: " + strconv.Itoa(m.ticketCt)
	return lipgloss.NewStyle().Foreground(m.theme.HelpText).Render(status)
}
