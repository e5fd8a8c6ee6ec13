package tui

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/herodex/internal/marvel"
	"github.com/rshade/herodex/internal/pagination"
)

var errBoom = errors.New("boom")

// fakeSource serves characters from memory and records calls.
type fakeSource struct {
	mu        sync.Mutex
	catalog   []marvel.Character
	byIDErr   map[int]error
	offsetErr map[int]error
	listCalls []int
	idCalls   []int
}

func newFakeSource(n int) *fakeSource {
	src := &fakeSource{byIDErr: map[int]error{}, offsetErr: map[int]error{}}
	for i := range n {
		id := 1011000 + i
		src.catalog = append(src.catalog, marvel.Character{
			ID:          id,
			Name:        "Hero " + strconv.Itoa(id),
			Description: "About " + strconv.Itoa(id),
			Thumbnail:   "http://img/" + strconv.Itoa(id) + ".jpg",
			Homepage:    "http://home/" + strconv.Itoa(id),
			Wiki:        "http://wiki/" + strconv.Itoa(id),
		})
	}
	return src
}

func (f *fakeSource) GetAllCharacters(_ context.Context, offset int) ([]marvel.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, offset)
	if err := f.offsetErr[offset]; err != nil {
		return nil, err
	}
	start := min(offset, len(f.catalog))
	end := min(start+pagination.PageSize, len(f.catalog))
	return append([]marvel.Character(nil), f.catalog[start:end]...), nil
}

func (f *fakeSource) GetCharacterByID(_ context.Context, id int) (marvel.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idCalls = append(f.idCalls, id)
	if err := f.byIDErr[id]; err != nil {
		return marvel.Character{}, err
	}
	for _, c := range f.catalog {
		if c.ID == id {
			return c, nil
		}
	}
	return marvel.Character{}, &marvel.FetchError{URL: "fake/characters/" + strconv.Itoa(id), Status: 404}
}

func (f *fakeSource) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

// fakeViewport is a deterministic ViewportObserver.
type fakeViewport struct {
	offset   int
	watchers map[int]func(int)
	next     int
}

func newFakeViewport() *fakeViewport {
	return &fakeViewport{watchers: map[int]func(int){}}
}

func (v *fakeViewport) Offset() int { return v.offset }

func (v *fakeViewport) Watch(fn func(int)) func() {
	id := v.next
	v.next++
	v.watchers[id] = fn
	return func() { delete(v.watchers, id) }
}

func (v *fakeViewport) scroll(offset int) {
	v.offset = offset
	for _, fn := range v.watchers {
		fn(offset)
	}
}

// runCmd executes cmd, flattening batches and dropping spinner ticks.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case spinner.TickMsg, nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// drive runs cmd and feeds every resulting message back into model until quiet.
func drive(model tea.Model, cmd tea.Cmd) {
	pending := runCmd(cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		var next tea.Cmd
		_, next = model.Update(msg)
		pending = append(pending, runCmd(next)...)
	}
}

func fixedPicker(ids ...int) IDPicker {
	i := 0
	return func() int {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
