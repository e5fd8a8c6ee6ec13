package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/herodex/internal/marvel"
)

// CharacterSource is the part of the data service the views depend on.
// *marvel.Client satisfies it; tests substitute fakes.
type CharacterSource interface {
	GetAllCharacters(ctx context.Context, offset int) ([]marvel.Character, error)
	GetCharacterByID(ctx context.Context, id int) (marvel.Character, error)
}

// ViewState is the render state of a single-request view.
type ViewState int

const (
	// ViewStateIdle means no request has been made yet.
	ViewStateIdle ViewState = iota
	// ViewStateLoading means a request is in flight.
	ViewStateLoading
	// ViewStateError means the last request failed.
	ViewStateError
	// ViewStateSuccess means the last request produced data.
	ViewStateSuccess
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateIdle:
		return "idle"
	case ViewStateLoading:
		return "loading"
	case ViewStateError:
		return "error"
	case ViewStateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// LoadingState wraps the spinner shown while a request is in flight.
type LoadingState struct {
	spinner spinner.Model
}

// NewLoadingState creates a spinner in the accent color.
func NewLoadingState() *LoadingState {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(SpinnerStyle),
	)
	return &LoadingState{spinner: s}
}

// Init starts the spinner animation.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its own tick messages and ignores the rest.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(tick)
	return cmd
}

// View renders the spinner with a label.
func (l *LoadingState) View() string {
	return l.spinner.View() + " Loading..."
}

// RenderErrorPanel renders the generic failure panel shared by all views.
func RenderErrorPanel(width int) string {
	return ErrorStyle.Width(max(width-borderPadding, minPanelWidth)).Render(errorPanelText)
}

// nextGeneration bumps a request counter and returns the new value.
func nextGeneration(g *uint64) uint64 {
	*g++
	return *g
}
