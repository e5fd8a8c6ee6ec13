package tui

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func tallContent(lines int) string {
	rows := make([]string, lines)
	for i := range rows {
		rows[i] = "line " + strconv.Itoa(i)
	}
	return strings.Join(rows, "\n")
}

func TestPageViewport_NotifiesOnScroll(t *testing.T) {
	p := NewPageViewport(40, 10)
	p.SetContent(tallContent(100))

	var seen []int
	stop := p.Watch(func(offset int) { seen = append(seen, offset) })
	assert.Equal(t, 1, p.Watchers())

	p.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 10, p.Offset())

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 10, p.Offset(), "arrow keys belong to the views")

	p.ScrollTo(3)
	stop()
	p.ScrollTo(20)

	assert.Equal(t, []int{10, 3}, seen)
	assert.Equal(t, 0, p.Watchers())
}

func TestPageViewport_DrivesDetailPin(t *testing.T) {
	p := NewPageViewport(40, 10)
	p.SetContent(tallContent(100))
	m := NewDetailModel(t.Context(), newFakeSource(1), p, 12)
	m.Mount()

	p.ScrollTo(13)
	assert.True(t, m.Pinned())

	p.ScrollTo(0)
	assert.False(t, m.Pinned())
}

func TestPageViewport_ShrinkingContentClampsOffset(t *testing.T) {
	p := NewPageViewport(40, 10)
	p.SetContent(tallContent(100))
	p.ScrollTo(80)

	var last int
	p.Watch(func(offset int) { last = offset })
	p.SetContent(tallContent(12))

	assert.Less(t, p.Offset(), 80)
	assert.Equal(t, p.Offset(), last)
}
