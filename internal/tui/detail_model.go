package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/herodex/internal/logging"
	"github.com/rshade/herodex/internal/marvel"
)

// DefaultPinThreshold is the page offset, in rows, past which the detail panel is pinned.
const DefaultPinThreshold = 12

// detailLoadedMsg carries the result of one detail request.
type detailLoadedMsg struct {
	generation uint64
	id         int
	char       marvel.Character
	err        error
}

// DetailModel renders the full record of the character chosen elsewhere.
//
// Every request captures a generation; a result whose generation is no
// longer current is dropped, so the last requested id always wins.
type DetailModel struct {
	ctx    context.Context
	source CharacterSource
	logger zerolog.Logger

	characterID int
	char        *marvel.Character
	loading     bool
	err         bool
	generation  uint64

	observer     ViewportObserver
	stopWatching func()
	mounted      bool
	unmounted    bool
	pinned       bool
	pinThreshold int

	spinner *LoadingState
	width   int
}

// NewDetailModel creates the detail view. observer may be nil, in which case
// the panel is never pinned. A threshold of 0 or less selects
// DefaultPinThreshold. Mounting is only needed for pinning; an unmounted
// model still loads characters until Unmount is called.
func NewDetailModel(
	ctx context.Context,
	source CharacterSource,
	observer ViewportObserver,
	pinThreshold int,
) *DetailModel {
	if pinThreshold <= 0 {
		pinThreshold = DefaultPinThreshold
	}
	return &DetailModel{
		ctx:          ctx,
		source:       source,
		logger:       logging.ComponentLogger(*logging.FromContext(ctx), "tui.detail"),
		observer:     observer,
		pinThreshold: pinThreshold,
		spinner:      NewLoadingState(),
		width:        defaultWidth,
	}
}

// Init starts the spinner. Nothing is fetched until an id is set.
func (m *DetailModel) Init() tea.Cmd {
	return m.spinner.Init()
}

// Mount attaches the scroll watcher. Calling it twice is a no-op.
func (m *DetailModel) Mount() {
	if m.mounted {
		return
	}
	m.mounted = true
	m.unmounted = false
	if m.observer == nil {
		return
	}
	m.stopWatching = m.observer.Watch(m.onScroll)
	m.onScroll(m.observer.Offset())
}

// Unmount detaches the scroll watcher; results arriving afterwards are ignored.
func (m *DetailModel) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.unmounted = true
	if m.stopWatching != nil {
		m.stopWatching()
		m.stopWatching = nil
	}
}

func (m *DetailModel) onScroll(offset int) {
	m.pinned = offset > m.pinThreshold
}

// SetCharacterID shows the character with the given id. A changed id, or a
// retry after an error, starts a fetch and supersedes any request in flight.
// An id of 0 returns the view to idle.
func (m *DetailModel) SetCharacterID(id int) tea.Cmd {
	if id == m.characterID && !m.err {
		return nil
	}
	m.characterID = id
	gen := nextGeneration(&m.generation)

	if id == 0 {
		m.loading = false
		m.err = false
		m.char = nil
		return nil
	}

	m.loading = true
	m.err = false

	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		char, err := source.GetCharacterByID(ctx, id)
		return detailLoadedMsg{generation: gen, id: id, char: char, err: err}
	}
}

// Update handles results and spinner ticks.
func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		m.handleLoaded(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}
	return m, m.spinner.Update(msg)
}

func (m *DetailModel) handleLoaded(msg detailLoadedMsg) {
	if m.unmounted || msg.generation != m.generation {
		m.logger.Debug().Int("character_id", msg.id).Msg("dropping superseded detail result")
		return
	}
	m.loading = false
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Int("character_id", msg.id).Msg("character detail request failed")
		m.err = true
		return
	}
	char := msg.char
	m.char = &char
}

// State returns the current render state.
func (m *DetailModel) State() ViewState {
	switch {
	case m.err:
		return ViewStateError
	case m.loading:
		return ViewStateLoading
	case m.char != nil:
		return ViewStateSuccess
	default:
		return ViewStateIdle
	}
}

// Character returns the displayed character, if any.
func (m *DetailModel) Character() (marvel.Character, bool) {
	if m.char == nil || m.State() != ViewStateSuccess {
		return marvel.Character{}, false
	}
	return *m.char, true
}

// CharacterID returns the requested id, or 0.
func (m *DetailModel) CharacterID() int {
	return m.characterID
}

// Pinned reports whether the page has scrolled past the pin threshold.
func (m *DetailModel) Pinned() bool {
	return m.pinned
}

// View renders exactly one of skeleton, error, loading or content.
func (m *DetailModel) View() string {
	width := max(m.width-borderPadding, minPanelWidth)

	var body string
	switch m.State() {
	case ViewStateError:
		body = RenderErrorPanel(width)
	case ViewStateLoading:
		body = m.spinner.View()
	case ViewStateSuccess:
		body = m.renderContent(width)
	case ViewStateIdle:
		body = renderSkeleton()
	}

	style := BoxStyle
	if m.pinned {
		style = PinnedBoxStyle
	}
	return style.Width(width).Render(body)
}

func (m *DetailModel) renderContent(width int) string {
	c := m.char

	var b strings.Builder
	b.WriteString(TitleStyle.Render(strings.ToUpper(c.Name)))
	b.WriteString("\n")
	b.WriteString(renderThumbnail(c.Thumbnail))
	b.WriteString("\n")
	b.WriteString(renderLinks(*c))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width - borderPadding).Render(c.Description))
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("Comics:"))
	b.WriteString("\n")

	comics := c.DisplayComics()
	if len(comics) == 0 {
		b.WriteString(SubtleStyle.Render(marvel.NoComicsText))
		return b.String()
	}
	for _, comic := range comics {
		b.WriteString(ValueStyle.Render("• " + comic.Name))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderSkeleton() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Please select a character to see information"),
		SkeletonStyle.Render("●  ▆▆▆▆▆▆▆▆▆▆"),
		SkeletonStyle.Render("▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆"),
		SkeletonStyle.Render("▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆"),
		SkeletonStyle.Render("▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆▆"),
	)
}
