package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/engnotes/internal/config"
	"github.com/idilsaglam/engnotes/internal/model"
)

type harness struct {
	dir   string
	notes string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{dir: dir, notes: filepath.Join(dir, "notes.json")}
}

func (h *harness) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{
		"engnotes",
		"--config", filepath.Join(h.dir, "missing.yaml"),
		"--notes", h.notes,
		"--color", "never",
	}, args...)
	code = Run(context.Background(), full, &out, &errOut)
	return code, out.String(), errOut.String()
}

func (h *harness) saved(t *testing.T) []model.Note {
	t.Helper()
	b, err := os.ReadFile(h.notes)
	require.NoError(t, err)
	var notes []model.Note
	require.NoError(t, json.Unmarshal(b, &notes))
	return notes
}

func TestConvertCommand(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run(t, "convert", "length", "1", "m", "cm")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1.0000 m = 100.0000 cm\n", out)

	code, out, _ = h.run(t, "convert", "Energy", "1", "kWh", "J")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1.0000 kWh = 3600000.0000 J\n", out)
}

func TestConvertTemperatureAliases(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run(t, "convert", "temperature", "212", "F", "C")
	assert.Equal(t, 0, code)
	assert.Equal(t, "212.0000 °F = 100.0000 °C\n", out)

	code, out, _ = h.run(t, "convert", "--", "temperature", "-40", "C", "F")
	assert.Equal(t, 0, code)
	assert.Equal(t, "-40.0000 °C = -40.0000 °F\n", out)
}

func TestConvertNegativeValueWithoutSeparator(t *testing.T) {
	h := newHarness(t)
	code, out, errOut := h.run(t, "convert", "temperature", "-40", "C", "F")
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "-40.0000 °C = -40.0000 °F\n", out)

	code, out, errOut = h.run(t, "convert", "temperature", "-10", "K", "C")
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "-10.0000 K = -283.1500 °C\n", out)

	code, _, errOut = h.run(t, "convert", "length", "-1", "m", "cm")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid value")
}

func TestConvertErrors(t *testing.T) {
	h := newHarness(t)

	code, _, errOut := h.run(t, "convert", "length", "1", "m", "lb")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown unit "lb"`)

	code, _, errOut = h.run(t, "convert", "volume", "1", "l", "ml")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown category")

	code, _, errOut = h.run(t, "convert", "mass", "abc", "kg", "g")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid value")

	code, _, _ = h.run(t, "convert", "length", "1", "m")
	assert.Equal(t, 2, code)
}

func TestUnitsCommand(t *testing.T) {
	h := newHarness(t)
	code, out, _ := h.run(t, "units", "pressure")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Pressure")
	assert.Contains(t, out, "psi")
	assert.NotContains(t, out, "kWh")

	code, out, _ = h.run(t, "units")
	assert.Equal(t, 0, code)
	for _, c := range []string{"Length", "Mass", "Temperature", "Pressure", "Energy"} {
		assert.Contains(t, out, c)
	}
}

func TestAddListRemove(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run(t, "add", "--link", "https://example.com", "Fourier", "frequency", "domain")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `saved "Fourier"`)

	code, _, _ = h.run(t, "add", "Laplace", "s-domain")
	require.Equal(t, 0, code)

	notes := h.saved(t)
	require.Len(t, notes, 2)
	assert.Equal(t, model.Note{Title: "Fourier", Content: "frequency domain", Link: "https://example.com"}, notes[0])
	assert.Equal(t, "", notes[1].Link)

	code, out, _ = h.run(t, "ls")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, " 1. Fourier")
	assert.Contains(t, out, " 2. Laplace")
	assert.Contains(t, out, "https://example.com")

	code, _, _ = h.run(t, "rm", "1")
	assert.Equal(t, 0, code)
	notes = h.saved(t)
	require.Len(t, notes, 1)
	assert.Equal(t, "Laplace", notes[0].Title)
}

func TestAddRejectsBlankTitle(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run(t, "add", "  ", "content")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "title")
	_, err := os.Stat(h.notes)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveOutOfRange(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run(t, "rm", "5")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "index out of range")
	assert.Contains(t, errOut, "rm: no note #5 of 0")
	assert.Contains(t, errOut, "got 4")

	code, _, _ = h.run(t, "rm", "x")
	assert.Equal(t, 2, code)
}

func TestClearNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	_, _, _ = h.run(t, "add", "a", "b")

	code, _, _ := h.run(t, "clear")
	assert.Equal(t, 2, code)
	assert.Len(t, h.saved(t), 1)

	code, out, _ := h.run(t, "clear", "--yes")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "removed 1 notes")
	assert.Empty(t, h.saved(t))
}

func TestCorruptStoreWarnsAndContinues(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.notes, []byte("not json at all"), 0o644))

	code, out, errOut := h.run(t, "ls")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "cannot parse")
	assert.Contains(t, out, "no notes yet")

	code, _, _ = h.run(t, "add", "T", "C")
	assert.Equal(t, 0, code)
	assert.Len(t, h.saved(t), 1)
}

func TestUnknownSubcommand(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown subcommand")
}

func TestInvalidConfigFile(t *testing.T) {
	h := newHarness(t)
	cfgPath := filepath.Join(h.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  theme: sepia\n"), 0o644))

	var out, errOut bytes.Buffer
	code := Run(context.Background(), []string{"engnotes", "--config", cfgPath, "ls"}, &out, &errOut)
	assert.NotEqual(t, 0, code)
	assert.Contains(t, errOut.String(), "config")
}

func TestNewLoggerDestinations(t *testing.T) {
	var errOut bytes.Buffer
	logger, closeLog, err := newLogger(config.ApplicationConfig{LogLevel: slog.LevelInfo}, &errOut, false)
	require.NoError(t, err)
	logger.Info("to stderr")
	closeLog()
	assert.Contains(t, errOut.String(), "to stderr")

	errOut.Reset()
	logger, closeLog, err = newLogger(config.ApplicationConfig{LogLevel: slog.LevelInfo}, &errOut, true)
	require.NoError(t, err)
	logger.Info("dropped")
	closeLog()
	assert.Empty(t, errOut.String())

	logFile := filepath.Join(t.TempDir(), "engnotes.log")
	logger, closeLog, err = newLogger(config.ApplicationConfig{LogLevel: slog.LevelInfo, LogFile: logFile}, io.Discard, true)
	require.NoError(t, err)
	logger.Info("to file")
	closeLog()
	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "to file")
	assert.Empty(t, errOut.String())
}
