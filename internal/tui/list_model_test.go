package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herodex/internal/pagination"
)

func TestListModel_InitialPage(t *testing.T) {
	src := newFakeSource(240)
	m := NewListModel(context.Background(), src, nil)

	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading...")

	drive(m, m.Init())

	assert.False(t, m.Loading())
	assert.False(t, m.PageLoading())
	require.Len(t, m.Characters(), pagination.PageSize)
	assert.Equal(t, 1011210, m.Characters()[0].ID)
	assert.Equal(t, 219, m.Offset())
	assert.False(t, m.Ended())
	assert.Equal(t, []int{210}, src.listCalls)

	view := m.View()
	assert.Contains(t, view, "Hero 1011210")
	assert.Contains(t, view, "LOAD MORE")
	assert.Contains(t, view, "9 characters loaded")
}

func TestListModel_LoadMoreAccumulates(t *testing.T) {
	src := newFakeSource(300)
	m := NewListModel(context.Background(), src, nil)
	drive(m, m.Init())
	first := len(m.Characters())

	drive(m, m.LoadMore())
	second := len(m.Characters()) - first
	drive(m, m.LoadMore())

	assert.Equal(t, []int{210, 219, 228}, src.listCalls)
	assert.Len(t, m.Characters(), first+second+pagination.PageSize)
	assert.Equal(t, 237, m.Offset())

	seen := map[int]bool{}
	for _, c := range m.Characters() {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
}

func TestListModel_ShortPageEndsList(t *testing.T) {
	src := newFakeSource(224)
	m := NewListModel(context.Background(), src, nil)
	drive(m, m.Init())
	require.False(t, m.Ended())

	drive(m, m.LoadMore())

	assert.True(t, m.Ended())
	assert.Len(t, m.Characters(), 14)
	assert.NotContains(t, m.View(), "LOAD MORE")

	calls := src.listCallCount()
	assert.Nil(t, m.LoadMore())

	m.SetFocused(true)
	_, cmd := m.Update(keyRunes("m"))
	assert.Nil(t, cmd)
	assert.Equal(t, calls, src.listCallCount())
}

func TestListModel_LoadMoreDisabledInFlight(t *testing.T) {
	src := newFakeSource(240)
	m := NewListModel(context.Background(), src, nil)

	initCmd := m.Init()
	assert.True(t, m.PageLoading())
	assert.Nil(t, m.LoadMore())
	assert.Equal(t, 1, m.Requests())

	drive(m, initCmd)
	cmd := m.LoadMore()
	require.NotNil(t, cmd)
	assert.True(t, m.PageLoading())
	assert.Nil(t, m.LoadMore())
	assert.Equal(t, 2, m.Requests())
}

func TestListModel_PageErrorHidesList(t *testing.T) {
	src := newFakeSource(240)
	src.offsetErr[219] = errBoom
	m := NewListModel(context.Background(), src, nil)
	drive(m, m.Init())

	drive(m, m.LoadMore())

	assert.True(t, m.Failed())
	assert.Len(t, m.Characters(), pagination.PageSize, "loaded items are kept")
	assert.Equal(t, 219, m.Offset())

	view := m.View()
	assert.Contains(t, view, errorPanelText)
	assert.NotContains(t, view, "Hero 1011210")
	assert.Contains(t, view, "LOAD MORE", "load-more visibility depends on end-of-list only")
}

func TestListModel_RetryAfterPageError(t *testing.T) {
	src := newFakeSource(240)
	src.offsetErr[219] = errBoom
	m := NewListModel(context.Background(), src, nil)
	drive(m, m.Init())
	drive(m, m.LoadMore())
	require.True(t, m.Failed())

	delete(src.offsetErr, 219)
	drive(m, m.LoadMore())

	assert.False(t, m.Failed())
	assert.Len(t, m.Characters(), 2*pagination.PageSize)
	assert.Contains(t, m.View(), "Hero 1011210")
}

func TestListModel_InitialErrorShowsErrorPanel(t *testing.T) {
	src := newFakeSource(240)
	src.offsetErr[210] = errBoom
	m := NewListModel(context.Background(), src, nil)

	drive(m, m.Init())

	assert.True(t, m.Failed())
	assert.False(t, m.Loading())
	assert.Empty(t, m.Characters())
	assert.Contains(t, m.View(), errorPanelText)
	assert.NotContains(t, m.View(), "Loading...")
}

func TestListModel_SelectNotifiesCallback(t *testing.T) {
	src := newFakeSource(240)
	var selected []int
	m := NewListModel(context.Background(), src, func(id int) tea.Cmd {
		selected = append(selected, id)
		return nil
	})
	drive(m, m.Init())
	m.SetFocused(true)

	m.Select(4)
	assert.Equal(t, 1011214, m.SelectedID())
	assert.Equal(t, 4, m.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 7, m.Cursor())
	assert.Equal(t, 1011217, m.SelectedID())

	m.Update(keyRunes("h"))
	assert.Equal(t, 6, m.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 6, m.Cursor(), "moves past the end are ignored")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []int{1011214, 1011217, 1011216, 1011216}, selected)
	assert.Nil(t, m.Select(99))
}

func TestListModel_KeysIgnoredWhenUnfocused(t *testing.T) {
	src := newFakeSource(240)
	m := NewListModel(context.Background(), src, nil)
	drive(m, m.Init())

	_, cmd := m.Update(keyRunes("m"))

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Requests())
}
