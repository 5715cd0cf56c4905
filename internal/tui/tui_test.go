package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/engnotes/internal/convert"
	"github.com/idilsaglam/engnotes/internal/store/jsonstore"
)

func newTestModel(t *testing.T) (Model, *jsonstore.Store) {
	t.Helper()
	s := jsonstore.New(filepath.Join(t.TempDir(), "notes.json"), nil)
	require.NoError(t, s.Load())
	return New(s, Options{Precision: 4}), s
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, runes(string(r)))
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyBS    = tea.KeyMsg{Type: tea.KeyBackspace}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func TestConverterDefaultResult(t *testing.T) {
	m, _ := newTestModel(t)
	line, err := m.conv.result()
	require.NoError(t, err)
	assert.Equal(t, "1.0000 m = 100.0000 cm", line)
	assert.Contains(t, m.View(), "1.0000 m = 100.0000 cm")
}

func TestConverterCategoryCycleResetsUnits(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyRight, keyRight) // Length -> Mass -> Temperature
	assert.Equal(t, convert.Temperature, m.conv.category)
	assert.Equal(t, convert.Celsius, m.conv.fromUnit())
	assert.Equal(t, convert.Fahrenheit, m.conv.toUnit())

	line, err := m.conv.result()
	require.NoError(t, err)
	assert.Equal(t, "1.0000 °C = 33.8000 °F", line)

	m = press(t, m, keyLeft, keyLeft, keyLeft) // wraps to Energy
	assert.Equal(t, convert.Energy, m.conv.category)
}

func TestConverterSelectUnitsAndSwap(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyDown, keyRight, keyRight, keyRight) // From: m -> cm -> mm -> km
	assert.Equal(t, "km", m.conv.fromUnit())
	m = press(t, m, runes("s"))
	assert.Equal(t, "cm", m.conv.fromUnit())
	assert.Equal(t, "km", m.conv.toUnit())
}

func TestConverterReactsToValueInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyUp) // wraps to Value
	require.True(t, m.conv.editing())

	m = press(t, m, keyBS)
	m = typeText(t, m, "2.5")
	line, err := m.conv.result()
	require.NoError(t, err)
	assert.Equal(t, "2.5000 m = 250.0000 cm", line)

	// q is text while editing, not quit
	m = typeText(t, m, "q")
	_, err = m.conv.result()
	assert.Error(t, err)
	assert.Contains(t, m.View(), "invalid value")
}

func TestConverterAcceptsNegativeTemperature(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyRight, keyRight) // Temperature
	assert.Contains(t, m.View(), "Temperature values may be negative.")
	assert.NotContains(t, m.View(), "absolute zero")

	m = press(t, m, keyUp, keyBS) // Value
	m = typeText(t, m, "-300")
	line, err := m.conv.result()
	require.NoError(t, err)
	assert.Equal(t, "-300.0000 °C = -508.0000 °F", line)
}

func TestConverterRejectsNegativeLength(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyUp, keyBS)
	m = typeText(t, m, "-3")
	_, err := m.conv.result()
	assert.Error(t, err)
}

func TestQuitOnlyOutsideTextFields(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAddNoteThroughForm(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, keyTab)
	require.Equal(t, tabNotes, m.active)

	m = press(t, m, runes("a"))
	require.True(t, m.notes.adding)

	m = typeText(t, m, "Beam")
	m = press(t, m, keyTab)
	m = typeText(t, m, "EI d4w/dx4 = q")
	m = press(t, m, keyTab)
	m = typeText(t, m, "https://example.com")
	m = press(t, m, keySave)

	assert.False(t, m.notes.adding)
	require.Equal(t, 1, s.Len())
	n, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Beam", n.Title)
	assert.Equal(t, "EI d4w/dx4 = q", n.Content)
	assert.Equal(t, "https://example.com", n.Link)
	assert.Len(t, m.notes.list.Items(), 1)
}

func TestAddNoteValidationKeepsFormOpen(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, keyTab, runes("a"))
	m = typeText(t, m, "only a title")
	m = press(t, m, keySave)

	assert.True(t, m.notes.adding)
	assert.NotEmpty(t, m.notes.form.err)
	assert.Equal(t, 0, s.Len())

	m = press(t, m, keyEsc)
	assert.False(t, m.notes.adding)
}

func TestDeleteAndClearNotes(t *testing.T) {
	m, s := newTestModel(t)
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Add(title, "body", "")
		require.NoError(t, err)
	}
	m = press(t, m, keyTab)
	m.notes.reload()
	require.Len(t, m.notes.list.Items(), 3)

	m = press(t, m, runes("d"))
	assert.Equal(t, 2, s.Len())
	n, _ := s.Get(0)
	assert.Equal(t, "b", n.Title)

	m = press(t, m, runes("D"), runes("n"))
	assert.Equal(t, 2, s.Len(), "anything but y cancels")

	m = press(t, m, runes("D"), runes("y"))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, m.notes.list.Items())
	assert.Contains(t, m.View(), "No notes yet")
}

func TestStoreChangedReloads(t *testing.T) {
	m, s := newTestModel(t)
	other := jsonstore.New(s.Path(), nil)
	_, err := other.Add("from elsewhere", "x", "")
	require.NoError(t, err)

	next, _ := m.Update(storeChangedMsg{})
	m = next.(Model)
	assert.Len(t, m.notes.list.Items(), 1)
}

func TestStartupWarningShown(t *testing.T) {
	s := jsonstore.New(filepath.Join(t.TempDir(), "notes.json"), nil)
	m := New(s, Options{Precision: 4, Warning: "cannot parse notes.json"})
	m = press(t, m, keyTab)
	assert.Contains(t, m.View(), "cannot parse notes.json")
}
