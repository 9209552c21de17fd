package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tarefas/internal/logging"
	"github.com/idilsaglam/tarefas/internal/model"
	"github.com/idilsaglam/tarefas/internal/ui"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m tuiModel, msgs ...tea.Msg) tuiModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(tuiModel)
		require.True(t, ok)
	}
	return m
}

func visibleIDs(m tuiModel) []int {
	var ids []int
	for _, it := range m.list.Items() {
		ids = append(ids, it.(taskItem).task.ID)
	}
	return ids
}

func newTestTUI(t *testing.T, titles ...string) tuiModel {
	t.Helper()
	s := newTestStore(t)
	for _, title := range titles {
		_, err := s.Create(title, "")
		require.NoError(t, err)
	}
	m, err := newTUIModel(s, ui.ThemeByName("mono"), logging.Discard(), model.All)
	require.NoError(t, err)
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func TestTUICompleteSelected(t *testing.T) {
	m := newTestTUI(t, "Buy milk", "Walk dog")
	require.Equal(t, []int{1, 2}, visibleIDs(m))

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, "#1 done", m.status)
	assert.False(t, m.failed)

	done, err := m.store.Query(model.Done)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, 1, done[0].ID)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "#1 is already done", m.status)
}

func TestTUITabCyclesFilter(t *testing.T) {
	m := newTestTUI(t, "a", "b", "c")
	_, err := m.store.Complete(2)
	require.NoError(t, err)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.Pending, m.filter)
	assert.Equal(t, []int{1, 3}, visibleIDs(m))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.Done, m.filter)
	assert.Equal(t, []int{2}, visibleIDs(m))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.All, m.filter)
	assert.Equal(t, []int{1, 2, 3}, visibleIDs(m))
}

func TestTUIAddFlow(t *testing.T) {
	m := newTestTUI(t)

	m = send(t, m, keyRunes("a"))
	require.True(t, m.adding)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.adding, "empty title keeps the prompt open")
	assert.True(t, m.failed)

	m = send(t, m, keyRunes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.addStep)

	m = send(t, m, keyRunes("2%"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.adding)
	assert.Equal(t, "added #1", m.status)
	assert.Equal(t, []int{1}, visibleIDs(m))

	tasks, err := m.store.Query(model.All)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{{ID: 1, Title: "Buy milk", Description: "2%"}}, tasks)
}

func TestTUIAddCancel(t *testing.T) {
	m := newTestTUI(t)
	m = send(t, m, keyRunes("a"), keyRunes("draft"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)

	tasks, err := m.store.Query(model.All)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTUIQuit(t *testing.T) {
	m := newTestTUI(t, "a")
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTUIView(t *testing.T) {
	m := newTestTUI(t, "Buy milk")
	view := m.View()
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "Tasks [all]")
}
