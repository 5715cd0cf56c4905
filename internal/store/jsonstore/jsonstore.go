package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/idilsaglam/engnotes/internal/apperr"
	"github.com/idilsaglam/engnotes/internal/model"
)

// JSON-backed note storage. Single file, human-readable, portable.
// The whole list is rewritten after every mutation. No locking: with two
// writers the last one wins, which is fine for a local single-user tool.

// DefaultFileName is used when no path is configured.
const DefaultFileName = "engineering_notes.json"

// Store holds the ordered note list and the file it is persisted to.
type Store struct {
	path   string
	notes  []model.Note
	logger *slog.Logger
}

// New returns an empty store bound to path. Call Load to read existing notes.
func New(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultFileName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, notes: []model.Note{}, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load replaces the in-memory list with the file contents. A missing file
// yields an empty list. A file that cannot be parsed also yields an empty
// list, and the returned *apperr.DecodeError should be shown as a warning.
func (s *Store) Load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.notes = []model.Note{}
			return nil
		}
		return fmt.Errorf("read file: %w", err)
	}
	var notes []model.Note
	if len(bytes.TrimSpace(b)) > 0 {
		if err := json.Unmarshal(b, &notes); err != nil {
			s.notes = []model.Note{}
			s.logger.Warn("store: unreadable notes file, starting empty",
				slog.String("path", s.path),
				slog.String("error", err.Error()))
			return &apperr.DecodeError{Path: s.path, Err: err}
		}
	}
	if notes == nil {
		notes = []model.Note{}
	}
	s.notes = notes
	s.logger.Debug("store: loaded", slog.String("path", s.path), slog.Int("count", len(notes)))
	return nil
}

// List returns a copy of the notes in insertion order.
func (s *Store) List() []model.Note {
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int { return len(s.notes) }

// Get returns the note at a 0-based index.
func (s *Store) Get(index int) (model.Note, error) {
	if index < 0 || index >= len(s.notes) {
		return model.Note{}, &apperr.IndexError{Index: index, Len: len(s.notes)}
	}
	return s.notes[index], nil
}

// Add validates and appends a note, then persists the list.
func (s *Store) Add(title, content, link string) (model.Note, error) {
	n := model.Note{Title: title, Content: content, Link: link}
	if err := n.Validate(); err != nil {
		return model.Note{}, &apperr.ValidationError{Err: err}
	}
	prev := s.notes
	next := make([]model.Note, len(prev), len(prev)+1)
	copy(next, prev)
	s.notes = append(next, n)
	if err := s.save(); err != nil {
		s.notes = prev
		return model.Note{}, err
	}
	return n, nil
}

// Delete removes the note at a 0-based index and persists the list.
func (s *Store) Delete(index int) error {
	if index < 0 || index >= len(s.notes) {
		return &apperr.IndexError{Index: index, Len: len(s.notes)}
	}
	prev := s.notes
	next := make([]model.Note, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	s.notes = append(next, prev[index+1:]...)
	if err := s.save(); err != nil {
		s.notes = prev
		return err
	}
	return nil
}

// Clear removes every note and persists the empty list.
func (s *Store) Clear() error {
	prev := s.notes
	s.notes = []model.Note{}
	if err := s.save(); err != nil {
		s.notes = prev
		return err
	}
	return nil
}

func (s *Store) save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s.notes); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := writeAtomic(s.path, buf.Bytes()); err != nil {
		return err
	}
	s.logger.Debug("store: saved", slog.String("path", s.path), slog.Int("count", len(s.notes)))
	return nil
}

// writeAtomic writes data via tmp file, fsync and rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".engnotes-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	success = true
	return nil
}
