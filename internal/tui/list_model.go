package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/herodex/internal/logging"
	"github.com/rshade/herodex/internal/marvel"
	"github.com/rshade/herodex/internal/pagination"
)

// SelectFunc is called when the user selects a character in the list.
// The returned command, if any, is run by the program.
type SelectFunc func(id int) tea.Cmd

// listPageMsg carries the result of one page request.
type listPageMsg struct {
	generation uint64
	page       pagination.Params
	chars      []marvel.Character
	err        error
}

// ListModel is the paginated character grid.
//
// The list only grows: each successful page is appended and advances the
// offset by one page. A failed page sets the list-level error, which hides
// every item already loaded until a later page succeeds.
type ListModel struct {
	ctx      context.Context
	source   CharacterSource
	onSelect SelectFunc
	logger   zerolog.Logger
	keys     KeyMap
	printer  *message.Printer

	chars          []marvel.Character
	page           pagination.Params
	loading        bool
	newItemLoading bool
	err            bool
	ended          bool
	selectedID     int
	cursor         int
	generation     uint64
	requests       int

	spinner *LoadingState
	focused bool
	width   int
}

// NewListModel creates the list view. onSelect may be nil.
func NewListModel(ctx context.Context, source CharacterSource, onSelect SelectFunc) *ListModel {
	return &ListModel{
		ctx:      ctx,
		source:   source,
		onSelect: onSelect,
		logger:   logging.ComponentLogger(*logging.FromContext(ctx), "tui.list"),
		keys:     DefaultKeyMap(),
		printer:  message.NewPrinter(language.English),
		page:     pagination.FirstPage(),
		loading:  true,
		spinner:  NewLoadingState(),
		width:    defaultWidth,
	}
}

// Init starts the spinner and requests the first page.
func (m *ListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.request())
}

// LoadMore requests the next page. It returns nil, issuing no request, while
// a page is in flight or once the end of the catalog has been reached.
func (m *ListModel) LoadMore() tea.Cmd {
	if m.newItemLoading || m.ended {
		return nil
	}
	return m.request()
}

func (m *ListModel) request() tea.Cmd {
	m.newItemLoading = true
	m.requests++
	gen := nextGeneration(&m.generation)

	ctx, source, page := m.ctx, m.source, m.page
	return func() tea.Msg {
		chars, err := source.GetAllCharacters(ctx, page.Offset)
		return listPageMsg{generation: gen, page: page, chars: chars, err: err}
	}
}

// Update handles page results, spinner ticks and, when focused, navigation.
func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listPageMsg:
		m.handlePage(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, m.spinner.Update(msg)
}

func (m *ListModel) handlePage(msg listPageMsg) {
	if msg.generation != m.generation {
		return
	}
	m.loading = false
	m.newItemLoading = false

	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Int("offset", msg.page.Offset).Msg("character page request failed")
		m.err = true
		return
	}

	m.err = false
	m.chars = append(m.chars, msg.chars...)
	m.ended = msg.page.IsLastPage(len(msg.chars))
	m.page = msg.page.Next()
	m.logger.Debug().
		Int("offset", msg.page.Offset).
		Int("received", len(msg.chars)).
		Bool("ended", m.ended).
		Msg("character page loaded")
}

func (m *ListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.LoadMore):
		return m.LoadMore()
	case key.Matches(msg, m.keys.Select):
		return m.Select(m.cursor)
	case key.Matches(msg, m.keys.Up):
		return m.Focus(m.cursor - gridColumns)
	case key.Matches(msg, m.keys.Down):
		return m.Focus(m.cursor + gridColumns)
	case key.Matches(msg, m.keys.Left):
		return m.Focus(m.cursor - 1)
	case key.Matches(msg, m.keys.Right):
		return m.Focus(m.cursor + 1)
	}
	return nil
}

// Select marks the item at index as selected, moves focus onto it and
// notifies the selection callback. Out-of-range indexes are ignored.
func (m *ListModel) Select(index int) tea.Cmd {
	if index < 0 || index >= len(m.chars) {
		return nil
	}
	m.cursor = index
	return m.choose(m.chars[index].ID)
}

// Focus moves keyboard focus to index. Focusing an item selects it, as in
// the click path. Moves past either end of the list are ignored.
func (m *ListModel) Focus(index int) tea.Cmd {
	if index < 0 || index >= len(m.chars) || (index == m.cursor && m.selectedID != 0) {
		return nil
	}
	m.cursor = index
	return m.choose(m.chars[index].ID)
}

func (m *ListModel) choose(id int) tea.Cmd {
	m.selectedID = id
	if m.onSelect == nil {
		return nil
	}
	return m.onSelect(id)
}

// SetFocused marks the view as the key-input target.
func (m *ListModel) SetFocused(focused bool) {
	m.focused = focused
}

// Characters returns the accumulated list.
func (m *ListModel) Characters() []marvel.Character {
	return m.chars
}

// Offset returns the offset the next page will be requested from.
func (m *ListModel) Offset() int {
	return m.page.Offset
}

// Ended reports whether the catalog has been exhausted.
func (m *ListModel) Ended() bool {
	return m.ended
}

// Loading reports whether the initial page is still loading.
func (m *ListModel) Loading() bool {
	return m.loading
}

// PageLoading reports whether any page request is in flight.
func (m *ListModel) PageLoading() bool {
	return m.newItemLoading
}

// Failed reports whether the last page request failed.
func (m *ListModel) Failed() bool {
	return m.err
}

// SelectedID returns the selected character id, or 0.
func (m *ListModel) SelectedID() int {
	return m.selectedID
}

// Cursor returns the focused item index.
func (m *ListModel) Cursor() int {
	return m.cursor
}

// Requests returns how many page requests have been issued.
func (m *ListModel) Requests() int {
	return m.requests
}

// View renders the grid and the load-more control.
func (m *ListModel) View() string {
	var sections []string

	switch {
	case m.err:
		sections = append(sections, RenderErrorPanel(m.width))
	case m.loading:
		sections = append(sections, m.spinner.View())
	default:
		sections = append(sections, m.renderGrid())
		sections = append(sections, LabelStyle.Render(
			m.printer.Sprintf("%d characters loaded", len(m.chars))))
	}

	if !m.ended {
		sections = append(sections, m.renderLoadMore())
	}

	style := BoxStyle
	if m.focused {
		style = FocusedBoxStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *ListModel) renderGrid() string {
	if len(m.chars) == 0 {
		return SubtleStyle.Render("No characters.")
	}

	var rows []string
	for start := 0; start < len(m.chars); start += gridColumns {
		end := min(start+gridColumns, len(m.chars))
		cells := make([]string, 0, gridColumns)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderItem(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *ListModel) renderItem(i int) string {
	c := m.chars[i]
	style := ItemStyle
	if c.ID == m.selectedID || (m.focused && i == m.cursor) {
		style = SelectedItemStyle
	}

	name := c.Name
	if fit, ok := marvel.ResolveThumbnailStyle(c.Thumbnail, marvel.ObjectFitFill); ok {
		name += "\n" + SubtleStyle.Render("no image ["+string(fit)+"]")
	}
	return style.Render(strings.TrimSpace(name))
}

func (m *ListModel) renderLoadMore() string {
	if m.newItemLoading {
		return ButtonDisabledStyle.Render("LOAD MORE")
	}
	return ButtonStyle.Render("LOAD MORE") + " " + SubtleStyle.Render("(m)")
}
