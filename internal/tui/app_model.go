package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pane identifies the view receiving key input.
type pane int

const (
	paneRandom pane = iota
	paneList
	paneDetail
	numPanes
)

// listWidthRatio is the share of the width given to the list, in percent.
const listWidthRatio = 60

// AppOptions configures the composed browser.
type AppOptions struct {
	// PickID chooses random ids; nil samples the default range.
	PickID IDPicker
	// PinThreshold is the page offset past which the detail panel is pinned.
	// Zero or less selects DefaultPinThreshold.
	PinThreshold int
}

// AppModel composes the random, list and detail views on one scrollable page.
// The list's selection callback drives the detail view; the views share the
// injected data source and nothing else.
type AppModel struct {
	random *RandomModel
	list   *ListModel
	detail *DetailModel
	page   *PageViewport

	keys  KeyMap
	help  help.Model
	focus pane

	width    int
	height   int
	quitting bool
}

// NewAppModel builds the browser around one shared source.
func NewAppModel(ctx context.Context, source CharacterSource, opts AppOptions) *AppModel {
	page := NewPageViewport(defaultWidth, defaultHeight)

	m := &AppModel{
		random: NewRandomModel(ctx, source, opts.PickID),
		detail: NewDetailModel(ctx, source, page, opts.PinThreshold),
		page:   page,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		focus:  paneList,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.list = NewListModel(ctx, source, m.detail.SetCharacterID)
	m.applyFocus()
	m.detail.Mount()
	m.refreshPage()
	return m
}

// Init starts every view.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.random.Init(), m.list.Init(), m.detail.Init())
}

// Update routes keys to the focused view and everything else to all views.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.route(msg)
	m.refreshPage()
	return m, cmd
}

func (m *AppModel) route(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil
	case tea.MouseMsg:
		return m.page.Update(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.broadcast(msg)
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.detail.Unmount()
		return tea.Quit
	case key.Matches(msg, m.keys.NextPane):
		m.focus = (m.focus + 1) % numPanes
		m.applyFocus()
		return nil
	case key.Matches(msg, m.keys.PrevPane):
		m.focus = (m.focus + numPanes - 1) % numPanes
		m.applyFocus()
		return nil
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		return m.page.Update(msg)
	}

	var cmd tea.Cmd
	switch m.focus {
	case paneRandom:
		_, cmd = m.random.Update(msg)
	case paneList:
		_, cmd = m.list.Update(msg)
	case paneDetail, numPanes:
		// Detail has no pane-local keys.
	}
	return cmd
}

func (m *AppModel) broadcast(msg tea.Msg) tea.Cmd {
	_, randomCmd := m.random.Update(msg)
	_, listCmd := m.list.Update(msg)
	_, detailCmd := m.detail.Update(msg)
	return tea.Batch(randomCmd, listCmd, detailCmd)
}

func (m *AppModel) applyFocus() {
	m.random.SetFocused(m.focus == paneRandom)
	m.list.SetFocused(m.focus == paneList)
}

func (m *AppModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	listWidth := width * listWidthRatio / 100 //nolint:mnd // Percentage calculation.
	m.random.Update(tea.WindowSizeMsg{Width: width, Height: height})
	m.list.Update(tea.WindowSizeMsg{Width: listWidth, Height: height})
	m.detail.Update(tea.WindowSizeMsg{Width: width - listWidth, Height: height})

	m.page.SetSize(width, max(height-lipgloss.Height(m.help.View(m.keys)), 1))
}

func (m *AppModel) refreshPage() {
	body := lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Marvel information portal"),
		m.random.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.detail.View()),
	)
	m.page.SetContent(body)
}

// Random returns the random-character view.
func (m *AppModel) Random() *RandomModel { return m.random }

// List returns the character list view.
func (m *AppModel) List() *ListModel { return m.list }

// Detail returns the character detail view.
func (m *AppModel) Detail() *DetailModel { return m.detail }

// Page returns the scrollable page.
func (m *AppModel) Page() *PageViewport { return m.page }

// View renders the page and the key help line.
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.page.View(), m.help.View(m.keys))
}
