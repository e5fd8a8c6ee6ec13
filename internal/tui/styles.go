package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorAccent  = lipgloss.Color("#9F0013")
	ColorAccent2 = lipgloss.Color("#5C5C5C")
	ColorText    = lipgloss.Color("#FFFFFF")
	ColorMuted   = lipgloss.Color("#8A8A8A")
	ColorWarning = lipgloss.Color("#FFB020")
	ColorPanel   = lipgloss.Color("#232222")
)

// Layout constants.
const (
	borderPadding = 2
	minPanelWidth = 20
	defaultWidth  = 100
	defaultHeight = 30
	gridColumns   = 3
	itemWidth     = 22

	errorPanelText = "Something went wrong. Try again later."
)

// Shared styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Background(ColorAccent).Padding(0, 1)
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	LinkStyle   = lipgloss.NewStyle().Foreground(ColorAccent).Underline(true)

	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent2).
			Padding(0, 1)

	PinnedBoxStyle = BoxStyle.
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorAccent)

	FocusedBoxStyle = BoxStyle.BorderForeground(ColorText)

	ItemStyle = lipgloss.NewStyle().
			Width(itemWidth).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorAccent2).
			Padding(0, 1)

	SelectedItemStyle = ItemStyle.
				BorderForeground(ColorAccent).
				Bold(true)

	ButtonStyle          = lipgloss.NewStyle().Foreground(ColorText).Background(ColorAccent).Padding(0, 2)
	ButtonSecondaryStyle = lipgloss.NewStyle().Foreground(ColorText).Background(ColorAccent2).Padding(0, 2)
	ButtonDisabledStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Background(ColorPanel).Padding(0, 2)

	SkeletonStyle = lipgloss.NewStyle().Foreground(ColorAccent2)
)
