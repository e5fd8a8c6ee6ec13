package tui

import (
	"context"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herodex/internal/marvel"
	"github.com/rshade/herodex/internal/marvel/marveltest"
)

func newMountedDetail(src CharacterSource, vp ViewportObserver) *DetailModel {
	m := NewDetailModel(context.Background(), src, vp, 0)
	m.Mount()
	return m
}

func TestDetailModel_IdleSkeleton(t *testing.T) {
	src := newFakeSource(1)
	m := newMountedDetail(src, nil)

	assert.Empty(t, runCmd(m.Init()))
	assert.Equal(t, ViewStateIdle, m.State())
	assert.Contains(t, m.View(), "Please select a character")
	assert.Empty(t, src.idCalls)
}

func TestDetailModel_LoadsContent(t *testing.T) {
	src := newFakeSource(3)
	for i := range 12 {
		src.catalog[1].Comics = append(src.catalog[1].Comics, marvel.ComicSummary{Name: "Issue #" + strconv.Itoa(i+1)})
	}
	m := newMountedDetail(src, nil)

	cmd := m.SetCharacterID(1011001)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Contains(t, m.View(), "Loading...")
	assert.NotContains(t, m.View(), "Please select")

	drive(m, cmd)

	require.Equal(t, ViewStateSuccess, m.State())
	view := m.View()
	assert.Contains(t, view, "HERO 1011001")
	assert.Contains(t, view, "About 1011001")
	assert.Contains(t, view, "Issue #10")
	assert.NotContains(t, view, "Issue #11")
	assert.NotContains(t, view, "Loading...")
}

func TestDetailModel_NoComics(t *testing.T) {
	m := newMountedDetail(newFakeSource(1), nil)

	drive(m, m.SetCharacterID(1011000))

	assert.Contains(t, m.View(), marvel.NoComicsText)
}

func TestDetailModel_SameIDDoesNotRefetch(t *testing.T) {
	src := newFakeSource(2)
	m := newMountedDetail(src, nil)

	drive(m, m.SetCharacterID(1011000))
	assert.Nil(t, m.SetCharacterID(1011000))
	assert.Equal(t, []int{1011000}, src.idCalls)
}

func TestDetailModel_LastRequestWins(t *testing.T) {
	tests := []struct {
		name        string
		firstToLand bool
	}{
		{name: "first resolves before second", firstToLand: true},
		{name: "second resolves before first", firstToLand: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource(0)
			src.catalog = []marvel.Character{
				{ID: 1011334, Name: "3-D Man"},
				{ID: 1011335, Name: "A-Bomb"},
			}
			m := newMountedDetail(src, nil)

			first := runCmd(m.SetCharacterID(1011334))
			second := runCmd(m.SetCharacterID(1011335))

			order := append(second, first...)
			if tt.firstToLand {
				order = append(first, second...)
			}
			for _, msg := range order {
				m.Update(msg)
			}

			char, ok := m.Character()
			require.True(t, ok)
			assert.Equal(t, 1011335, char.ID)
			assert.Contains(t, m.View(), "A-BOMB")
			assert.NotContains(t, m.View(), "3-D MAN")
		})
	}
}

func TestDetailModel_NotFoundFromAPI(t *testing.T) {
	srv := marveltest.NewServer(t, marveltest.Catalog(3))
	m := newMountedDetail(srv.Client(), nil)

	drive(m, m.SetCharacterID(42))

	assert.Equal(t, ViewStateError, m.State())
	_, ok := m.Character()
	assert.False(t, ok)
	view := m.View()
	assert.Contains(t, view, errorPanelText)
	assert.NotContains(t, view, "Comics:")
	assert.NotContains(t, view, "Please select")
}

func TestDetailModel_ErrorThenNewID(t *testing.T) {
	src := newFakeSource(2)
	src.byIDErr[1011000] = errBoom
	m := newMountedDetail(src, nil)

	drive(m, m.SetCharacterID(1011000))
	require.Equal(t, ViewStateError, m.State())

	drive(m, m.SetCharacterID(1011001))
	assert.Equal(t, ViewStateSuccess, m.State())

	delete(src.byIDErr, 1011000)
	drive(m, m.SetCharacterID(1011000))
	drive(m, m.SetCharacterID(1011000))
	assert.Equal(t, []int{1011000, 1011001, 1011000}, src.idCalls)
}

func TestDetailModel_RetrySameIDAfterError(t *testing.T) {
	src := newFakeSource(1)
	src.byIDErr[1011000] = errBoom
	m := newMountedDetail(src, nil)
	drive(m, m.SetCharacterID(1011000))
	require.Equal(t, ViewStateError, m.State())

	delete(src.byIDErr, 1011000)
	cmd := m.SetCharacterID(1011000)
	require.NotNil(t, cmd)
	drive(m, cmd)

	assert.Equal(t, ViewStateSuccess, m.State())
}

func TestDetailModel_ClearID(t *testing.T) {
	src := newFakeSource(1)
	m := newMountedDetail(src, nil)
	pending := runCmd(m.SetCharacterID(1011000))

	assert.Nil(t, m.SetCharacterID(0))
	for _, msg := range pending {
		m.Update(msg)
	}

	assert.Equal(t, ViewStateIdle, m.State())
	assert.Contains(t, m.View(), "Please select")
}

func TestDetailModel_UnmountedIgnoresResults(t *testing.T) {
	src := newFakeSource(1)
	m := newMountedDetail(src, nil)
	pending := runCmd(m.SetCharacterID(1011000))

	m.Unmount()
	for _, msg := range pending {
		m.Update(msg)
	}

	assert.Equal(t, ViewStateLoading, m.State())
}

func TestDetailModel_LoadsWithoutMount(t *testing.T) {
	src := newFakeSource(3)
	m := NewDetailModel(context.Background(), src, nil, 0)

	drive(m, m.SetCharacterID(1011001))

	require.Equal(t, ViewStateSuccess, m.State())
	char, ok := m.Character()
	require.True(t, ok)
	assert.Equal(t, 1011001, char.ID)
	assert.Equal(t, []int{1011001}, src.idCalls)
}

func TestDetailModel_RemountAcceptsResults(t *testing.T) {
	m := newMountedDetail(newFakeSource(2), nil)
	m.Unmount()
	m.Mount()

	drive(m, m.SetCharacterID(1011001))

	assert.Equal(t, ViewStateSuccess, m.State())
}

func TestDetailModel_PinThresholdDefault(t *testing.T) {
	for _, threshold := range []int{0, -3} {
		vp := newFakeViewport()
		m := NewDetailModel(context.Background(), newFakeSource(1), vp, threshold)
		m.Mount()

		vp.scroll(DefaultPinThreshold)
		assert.False(t, m.Pinned(), "threshold %d", threshold)
		vp.scroll(DefaultPinThreshold + 1)
		assert.True(t, m.Pinned(), "threshold %d", threshold)
	}
}

func TestDetailModel_PinnedFollowsScroll(t *testing.T) {
	vp := newFakeViewport()
	m := NewDetailModel(context.Background(), newFakeSource(1), vp, 5)

	vp.scroll(10)
	assert.False(t, m.Pinned(), "not mounted yet")

	m.Mount()
	assert.True(t, m.Pinned(), "mount syncs with the current offset")
	assert.Len(t, vp.watchers, 1)

	vp.scroll(5)
	assert.False(t, m.Pinned(), "threshold is exclusive")
	vp.scroll(6)
	assert.True(t, m.Pinned())

	m.Mount()
	assert.Len(t, vp.watchers, 1, "mount is idempotent")

	m.Unmount()
	assert.Empty(t, vp.watchers)
	vp.scroll(0)
	assert.True(t, m.Pinned(), "detached views stop tracking")
}

func TestDetailModel_WindowSize(t *testing.T) {
	m := newMountedDetail(newFakeSource(1), nil)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	assert.Nil(t, cmd)
	assert.Equal(t, 40, m.width)
}
