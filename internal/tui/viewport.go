package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewportObserver reports the vertical scroll offset of the page.
type ViewportObserver interface {
	// Offset returns the current offset in rows.
	Offset() int
	// Watch registers fn to be called with the new offset after every scroll.
	// The returned function detaches fn.
	Watch(fn func(offset int)) (stop func())
}

// PageViewport is the scrollable page hosting all views. It notifies its
// watchers synchronously from Update, on the program goroutine.
type PageViewport struct {
	viewport viewport.Model
	watchers map[int]func(int)
	nextID   int
}

// NewPageViewport creates a page of the given size. Only page-wise keys scroll
// it, so arrow keys remain free for the views.
func NewPageViewport(width, height int) *PageViewport {
	vp := viewport.New(width, height)
	keys := DefaultKeyMap()
	vp.KeyMap = viewport.KeyMap{
		PageUp:   keys.PageUp,
		PageDown: keys.PageDown,
	}
	return &PageViewport{viewport: vp, watchers: map[int]func(int){}}
}

// Offset implements ViewportObserver.
func (p *PageViewport) Offset() int {
	return p.viewport.YOffset
}

// Watch implements ViewportObserver.
func (p *PageViewport) Watch(fn func(offset int)) func() {
	id := p.nextID
	p.nextID++
	p.watchers[id] = fn
	return func() { delete(p.watchers, id) }
}

// Watchers returns the number of attached watchers.
func (p *PageViewport) Watchers() int {
	return len(p.watchers)
}

// SetSize resizes the page.
func (p *PageViewport) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
	p.notifyIfMoved(p.viewport.YOffset)
}

// SetContent replaces the page content, keeping the offset within bounds.
func (p *PageViewport) SetContent(content string) {
	before := p.viewport.YOffset
	p.viewport.SetContent(content)
	p.notifyIfMoved(before)
}

// ScrollTo moves the page to offset.
func (p *PageViewport) ScrollTo(offset int) {
	before := p.viewport.YOffset
	p.viewport.SetYOffset(offset)
	p.notifyIfMoved(before)
}

// Update scrolls on page keys and mouse wheel events.
func (p *PageViewport) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok &&
		!key.Matches(km, p.viewport.KeyMap.PageUp) && !key.Matches(km, p.viewport.KeyMap.PageDown) {
		return nil
	}
	before := p.viewport.YOffset
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	p.notifyIfMoved(before)
	return cmd
}

// View renders the visible part of the page.
func (p *PageViewport) View() string {
	return p.viewport.View()
}

func (p *PageViewport) notifyIfMoved(before int) {
	if p.viewport.YOffset == before {
		return
	}
	for _, fn := range p.watchers {
		fn(p.viewport.YOffset)
	}
}
