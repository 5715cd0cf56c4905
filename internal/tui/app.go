// Package tui is the interactive terminal front end: a reactive unit
// conversion form and a note list with an add form.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/engnotes/internal/store/jsonstore"
)

// Options tune the interactive UI.
type Options struct {
	Precision int
	// Warning is shown in the notes view on start, e.g. a corrupt-file notice.
	Warning string
	Logger  *slog.Logger
}

type tab int

const (
	tabConverter tab = iota
	tabNotes
)

// storeChangedMsg is sent by the file watcher when another process rewrote
// the note file.
type storeChangedMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	active tab
	conv   converterModel
	notes  notesModel
	help   help.Model
	width  int
	height int
}

// New builds the root model around an already loaded store.
func New(store *jsonstore.Store, opt Options) Model {
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		active: tabConverter,
		conv:   newConverter(opt.Precision),
		notes:  newNotes(store, logger),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	if opt.Warning != "" {
		m.notes.setStatus(opt.Warning, true)
	}
	return m
}

// Run starts the program and a watcher that reloads the note list when the
// store file changes on disk. It returns when the user quits or ctx ends.
func Run(ctx context.Context, store *jsonstore.Store, opt Options) error {
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := tea.NewProgram(New(store, opt), tea.WithAltScreen(), tea.WithContext(ctx))

	watchCtx, stopWatch := context.WithCancel(ctx)
	g, gCtx := errgroup.WithContext(watchCtx)

	g.Go(func() error {
		defer stopWatch()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		err := jsonstore.Watch(gCtx, store.Path(), logger, func() { p.Send(storeChangedMsg{}) })
		if err != nil {
			// the UI still works without live reload
			logger.Warn("tui: file watcher unavailable", slog.String("error", err.Error()))
		}
		return nil
	})

	return g.Wait()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.notes.list.SetSize(max(20, msg.Width-6), max(5, msg.Height/2))
		m.notes.form.content.SetWidth(max(20, msg.Width-10))
		return m, nil

	case storeChangedMsg:
		if m.notes.adding {
			// picked up on the next save or reload
			return m, nil
		}
		cmd := m.notes.reload()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key.Matches(msg, keys.Quit) && !m.capturing() {
			return m, tea.Quit
		}
		// tab moves between form fields on the notes side
		if key.Matches(msg, keys.SwitchTab) && !(m.active == tabNotes && m.notes.capturing()) {
			return m.switchTab()
		}
	}

	var cmd tea.Cmd
	switch m.active {
	case tabConverter:
		m.conv, cmd = m.conv.update(msg)
	case tabNotes:
		m.notes, cmd = m.notes.update(msg)
	}
	return m, cmd
}

// capturing reports whether a text field currently owns plain keystrokes.
func (m Model) capturing() bool {
	if m.active == tabConverter {
		return m.conv.editing()
	}
	return m.notes.capturing()
}

func (m Model) switchTab() (tea.Model, tea.Cmd) {
	if m.active == tabConverter {
		m.active = tabNotes
		m.conv.value.Blur()
		return m, nil
	}
	m.active = tabConverter
	var cmd tea.Cmd
	m.conv, cmd = m.conv.setFocus(m.conv.focus)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabs() + "\n\n")

	var hk help.KeyMap = converterHelp{}
	switch m.active {
	case tabConverter:
		b.WriteString(m.conv.view())
	case tabNotes:
		b.WriteString(m.notes.view())
		hk = notesHelp{}
		if m.notes.adding {
			hk = formHelp{}
		}
	}
	b.WriteString("\n\n" + m.help.View(hk))
	return panelString(b.String())
}

func (m Model) tabs() string {
	names := []string{"Converter", "Notes"}
	out := make([]string, len(names))
	for i, n := range names {
		if tab(i) == m.active {
			out[i] = activeTabStyle.Render(n)
		} else {
			out[i] = inactiveTabStyle.Render(n)
		}
	}
	return titleStyle.Render("⚙ engnotes") + "  " + strings.Join(out, " ")
}
