package tui

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/herodex/internal/logging"
	"github.com/rshade/herodex/internal/marvel"
)

// Inclusive id range sampled by the random view.
const (
	RandomMinID = 1011000
	RandomMaxID = 1011399
)

// IDPicker returns the next character id to show.
type IDPicker func() int

// NewRangePicker returns a picker drawing uniformly from [minID, maxID].
func NewRangePicker(minID, maxID int) IDPicker {
	if maxID < minID {
		minID, maxID = maxID, minID
	}
	return func() int {
		return minID + rand.IntN(maxID-minID+1) //nolint:gosec // Not security sensitive.
	}
}

// randomLoadedMsg carries the result of one random-character request.
type randomLoadedMsg struct {
	generation uint64
	id         int
	char       marvel.Character
	err        error
}

// RandomModel shows one randomly chosen character and lets the user draw another.
type RandomModel struct {
	ctx    context.Context
	source CharacterSource
	pickID IDPicker
	logger zerolog.Logger
	keys   KeyMap

	state      ViewState
	char       marvel.Character
	requestID  int
	generation uint64

	loading *LoadingState
	focused bool
	width   int
}

// NewRandomModel creates the random-character view. A nil picker samples the
// default id range.
func NewRandomModel(ctx context.Context, source CharacterSource, pickID IDPicker) *RandomModel {
	if pickID == nil {
		pickID = NewRangePicker(RandomMinID, RandomMaxID)
	}
	return &RandomModel{
		ctx:     ctx,
		source:  source,
		pickID:  pickID,
		logger:  logging.ComponentLogger(*logging.FromContext(ctx), "tui.random"),
		keys:    DefaultKeyMap(),
		state:   ViewStateLoading,
		loading: NewLoadingState(),
		width:   defaultWidth,
	}
}

// Init starts the spinner and requests the first character.
func (m *RandomModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.Refresh())
}

// Refresh picks a new id and requests it. Any earlier in-flight request is
// superseded and its result dropped.
func (m *RandomModel) Refresh() tea.Cmd {
	id := m.pickID()
	gen := nextGeneration(&m.generation)
	m.state = ViewStateLoading
	m.requestID = id

	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		char, err := source.GetCharacterByID(ctx, id)
		return randomLoadedMsg{generation: gen, id: id, char: char, err: err}
	}
}

// Update handles results, spinner ticks and, when focused, the try-it keys.
func (m *RandomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case randomLoadedMsg:
		m.handleLoaded(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.focused && (key.Matches(msg, m.keys.TryIt) || key.Matches(msg, m.keys.Select)) {
			return m, m.Refresh()
		}
		return m, nil
	}
	return m, m.loading.Update(msg)
}

func (m *RandomModel) handleLoaded(msg randomLoadedMsg) {
	if msg.generation != m.generation {
		return
	}
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Int("character_id", msg.id).Msg("random character request failed")
		m.state = ViewStateError
		return
	}
	m.char = msg.char
	m.state = ViewStateSuccess
}

// SetFocused marks the view as the key-input target.
func (m *RandomModel) SetFocused(focused bool) {
	m.focused = focused
}

// State returns the current render state.
func (m *RandomModel) State() ViewState {
	return m.state
}

// Character returns the loaded character, if the view is in the success state.
func (m *RandomModel) Character() (marvel.Character, bool) {
	return m.char, m.state == ViewStateSuccess
}

// RequestedID returns the id of the latest request.
func (m *RandomModel) RequestedID() int {
	return m.requestID
}

// View renders the character block next to the static try-it panel.
func (m *RandomModel) View() string {
	half := max(m.width/2-borderPadding, minPanelWidth)

	var block string
	switch m.state {
	case ViewStateError:
		block = RenderErrorPanel(half)
	case ViewStateLoading, ViewStateIdle:
		block = m.loading.View()
	case ViewStateSuccess:
		block = m.renderCharacter(half)
	}

	static := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Random character for today!"),
		TitleStyle.Render("Do you want to get to know them better?"),
		"",
		LabelStyle.Render("Or choose another one"),
		ButtonStyle.Render("TRY IT")+" "+SubtleStyle.Render("(r)"),
	)

	style := BoxStyle
	if m.focused {
		style = FocusedBoxStyle
	}
	return style.Width(max(m.width-borderPadding, minPanelWidth)).Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(half).Render(block),
			lipgloss.NewStyle().Width(half).PaddingLeft(borderPadding).Render(static),
		),
	)
}

func (m *RandomModel) renderCharacter(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(strings.ToUpper(m.char.Name)))
	b.WriteString("\n")
	b.WriteString(renderThumbnail(m.char.Thumbnail))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(m.char.Description))
	b.WriteString("\n\n")
	b.WriteString(renderLinks(m.char))
	return b.String()
}

// renderThumbnail prints the image URL with the placeholder-aware fit hint.
func renderThumbnail(thumbnail string) string {
	line := LabelStyle.Render("image: ") + LinkStyle.Render(thumbnail)
	if fit, ok := marvel.ResolveThumbnailStyle(thumbnail, marvel.ObjectFitFill); ok {
		line += " " + SubtleStyle.Render("[fit: "+string(fit)+"]")
	}
	return line
}

func renderLinks(c marvel.Character) string {
	return ButtonStyle.Render("HOMEPAGE") + " " + LinkStyle.Render(c.Homepage) + "\n" +
		ButtonSecondaryStyle.Render("WIKI") + " " + LinkStyle.Render(c.Wiki)
}
