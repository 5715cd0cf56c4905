package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/engnotes/internal/apperr"
	"github.com/idilsaglam/engnotes/internal/model"
	"github.com/idilsaglam/engnotes/internal/store/jsonstore"
)

// noteItem adapts model.Note to bubbles/list.Item. index is the position in
// the store, which differs from the list index while a filter is active.
type noteItem struct {
	note  model.Note
	index int
}

func (i noteItem) Title() string       { return i.note.Title }
func (i noteItem) Description() string { return i.note.Content }
func (i noteItem) FilterValue() string { return i.note.Title + " " + i.note.Content }

// itemDelegate renders one line per note.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(noteItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s %s", mutedStyle.Render(fmt.Sprintf("%2d.", it.index+1)), it.note.Title)
	if it.note.HasLink() {
		line += " " + accentStyle.Render("🔗")
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

const (
	formTitle = iota
	formContent
	formLink
	formFields
)

// noteForm collects a new note: title, content and an optional link.
type noteForm struct {
	title   textinput.Model
	content textarea.Model
	link    textinput.Model
	focus   int
	err     string
}

func newNoteForm() noteForm {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "e.g. Applications of the Fourier transform"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Write the details here..."
	content.ShowLineNumbers = false
	content.SetHeight(5)

	link := textinput.New()
	link.Prompt = ""
	link.Placeholder = "https://... (optional)"
	link.CharLimit = 500

	return noteForm{title: title, content: content, link: link}
}

func (f *noteForm) setFocus(i int) tea.Cmd {
	f.focus = (i + formFields) % formFields
	f.title.Blur()
	f.content.Blur()
	f.link.Blur()
	switch f.focus {
	case formTitle:
		return f.title.Focus()
	case formContent:
		return f.content.Focus()
	default:
		return f.link.Focus()
	}
}

func (f noteForm) update(msg tea.Msg) (noteForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case formTitle:
		f.title, cmd = f.title.Update(msg)
	case formContent:
		f.content, cmd = f.content.Update(msg)
	default:
		f.link, cmd = f.link.Update(msg)
	}
	return f, cmd
}

func (f noteForm) view() string {
	var b strings.Builder
	head := "New note"
	if f.err != "" {
		head += "  " + errorStyle.Render(f.err)
	}
	b.WriteString(titleStyle.Render(head) + "\n")
	b.WriteString(labelStyle.Render("Title") + "\n" + f.title.View() + "\n")
	b.WriteString(labelStyle.Render("Content") + "\n" + f.content.View() + "\n")
	b.WriteString(labelStyle.Render("Link") + "\n" + f.link.View())
	return formStyle.Render(b.String())
}

// notesModel lists the store's notes and owns the add form. Every mutation
// goes straight through the store, which persists it.
type notesModel struct {
	store  *jsonstore.Store
	logger *slog.Logger
	list   list.Model

	adding       bool
	form         noteForm
	confirmClear bool

	status    string
	statusErr bool
}

func newNotes(store *jsonstore.Store, logger *slog.Logger) notesModel {
	l := list.New(nil, itemDelegate{}, 80, 12)
	l.Title = "Saved notes"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("note", "notes")

	n := notesModel{store: store, logger: logger, list: l, form: newNoteForm()}
	n.refresh()
	return n
}

// refresh rebuilds the list from the store, keeping the cursor in range.
func (n *notesModel) refresh() tea.Cmd {
	notes := n.store.List()
	items := make([]list.Item, len(notes))
	for i, note := range notes {
		items[i] = noteItem{note: note, index: i}
	}
	idx := n.list.Index()
	cmd := n.list.SetItems(items)
	if len(items) > 0 {
		if idx >= len(items) {
			idx = len(items) - 1
		}
		n.list.Select(idx)
	}
	n.list.Title = fmt.Sprintf("Saved notes (%d)", len(notes))
	return cmd
}

// reload re-reads the store file after another process changed it.
func (n *notesModel) reload() tea.Cmd {
	if err := n.store.Load(); err != nil {
		var derr *apperr.DecodeError
		if errors.As(err, &derr) {
			n.setStatus(derr.Error(), true)
		} else {
			n.setStatus("reload: "+err.Error(), true)
		}
	}
	return n.refresh()
}

func (n *notesModel) setStatus(msg string, isErr bool) {
	n.status, n.statusErr = msg, isErr
}

// capturing reports whether keystrokes belong to a text field.
func (n notesModel) capturing() bool {
	return n.adding || n.list.SettingFilter()
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.adding {
		return n.updateForm(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if isKey && n.confirmClear {
		n.confirmClear = false
		if km.String() != "y" {
			n.setStatus("delete all cancelled", false)
			return n, nil
		}
		if err := n.store.Clear(); err != nil {
			n.setStatus("delete all: "+err.Error(), true)
			return n, nil
		}
		n.setStatus("all notes deleted", false)
		return n, n.refresh()
	}

	if isKey && !n.list.SettingFilter() {
		switch {
		case key.Matches(km, keys.Add):
			n.adding = true
			n.form = newNoteForm()
			n.form.content.SetWidth(max(20, n.list.Width()-4))
			n.status = ""
			return n, n.form.setFocus(formTitle)

		case key.Matches(km, keys.Delete):
			it, ok := n.list.SelectedItem().(noteItem)
			if !ok {
				return n, nil
			}
			if err := n.store.Delete(it.index); err != nil {
				n.setStatus("delete: "+err.Error(), true)
				return n, nil
			}
			n.setStatus(fmt.Sprintf("deleted %q", it.note.Title), false)
			return n, n.refresh()

		case key.Matches(km, keys.ClearAll):
			if n.store.Len() == 0 {
				n.setStatus("no notes to delete", false)
				return n, nil
			}
			n.confirmClear = true
			n.setStatus(fmt.Sprintf("delete all %d notes? (y/N)", n.store.Len()), true)
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.list, cmd = n.list.Update(msg)
	return n, cmd
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			n.adding = false
			return n, nil
		case "tab":
			return n, n.form.setFocus(n.form.focus + 1)
		case "shift+tab":
			return n, n.form.setFocus(n.form.focus - 1)
		case "ctrl+s":
			return n.submit()
		case "enter":
			if n.form.focus != formContent {
				if n.form.focus == formLink {
					return n.submit()
				}
				return n, n.form.setFocus(n.form.focus + 1)
			}
		}
	}
	var cmd tea.Cmd
	n.form, cmd = n.form.update(msg)
	return n, cmd
}

func (n notesModel) submit() (notesModel, tea.Cmd) {
	note, err := n.store.Add(n.form.title.Value(), n.form.content.Value(), n.form.link.Value())
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			n.form.err = "Title and content are required"
		} else {
			n.form.err = "save: " + err.Error()
		}
		n.logger.Debug("tui: add rejected", slog.String("error", err.Error()))
		return n, nil
	}
	n.adding = false
	n.setStatus(fmt.Sprintf("saved %q", note.Title), false)
	cmd := n.refresh()
	n.list.Select(len(n.list.Items()) - 1)
	return n, cmd
}

func (n notesModel) view() string {
	if n.adding {
		return n.form.view()
	}
	var b strings.Builder
	if len(n.list.Items()) == 0 {
		b.WriteString(titleStyle.Render("Saved notes (0)") + "\n\n")
		b.WriteString(mutedStyle.Render("No notes yet. Press a to add one."))
	} else {
		b.WriteString(n.list.View())
		if it, ok := n.list.SelectedItem().(noteItem); ok {
			b.WriteString("\n" + n.detail(it.note))
		}
	}
	if n.status != "" {
		style := successStyle
		if n.statusErr {
			style = pendingStyle
		}
		b.WriteString("\n" + style.Render(n.status))
	}
	return b.String()
}

func (n notesModel) detail(note model.Note) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(note.Title) + "\n")
	b.WriteString(note.Content)
	if note.HasLink() {
		b.WriteString("\n" + mutedStyle.Render("🔗 "+note.Link))
	}
	return formStyle.Render(b.String())
}
