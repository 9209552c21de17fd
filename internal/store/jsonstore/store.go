package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/unicode/norm"

	"github.com/idilsaglam/tarefas/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
//
// Every operation is a full load-mutate-save cycle. There is no locking:
// two processes interleaving Create can both pick the same id, and the
// later save silently replaces the earlier one. Fine for a local
// single-user CLI; callers must serialize access themselves.

// Store owns one data file.
type Store struct {
	path   string
	naming Naming
	schema *jsonschema.Schema

	writeFile func(path string, data []byte) error
}

// Option configures a Store.
type Option func(*Store)

// WithNaming sets the key set used when saving. Defaults to NamingEnglish.
func WithNaming(n Naming) Option {
	return func(s *Store) { s.naming = n }
}

// New returns a Store backed by the file at path. The file is not touched
// until the first operation.
func New(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("jsonstore: empty data file path")
	}
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("jsonstore: compile schema: %w", err)
	}
	s := &Store{
		path:      path,
		naming:    NamingEnglish,
		schema:    schema,
		writeFile: writeAtomic,
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := ParseNaming(string(s.naming)); err != nil {
		return nil, fmt.Errorf("jsonstore: %w", err)
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Naming() Naming { return s.naming }

// Load reads the whole collection. A missing file yields an empty
// collection; anything else that goes wrong is a *ReadError.
func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, &ReadError{Path: s.path, Err: err}
	}
	if err := validate(s.schema, b); err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	tasks, err := decodeTasks(b)
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	return tasks, nil
}

// Save replaces the file with tasks. On failure it returns a *WriteError
// and the previous file contents survive.
func (s *Store) Save(tasks []model.Task) error {
	b, err := encodeTasks(tasks, s.naming)
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := s.writeFile(s.path, b); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// Create appends a new pending task and returns it with its id assigned.
func (s *Store) Create(title, description string) (model.Task, error) {
	title = norm.NFC.String(strings.TrimSpace(title))
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	tasks, err := s.Load()
	if err != nil {
		return model.Task{}, err
	}
	id := model.NextID(tasks)
	if id <= 0 {
		return model.Task{}, ErrIDSpaceExhausted
	}
	t := model.Task{
		ID:          id,
		Title:       title,
		Description: norm.NFC.String(description),
	}
	if err := s.Save(append(tasks, t)); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Outcome is the result of Complete. The zero value means no outcome was
// reached because an error occurred.
type Outcome int

const (
	Completed Outcome = iota + 1
	AlreadyComplete
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case AlreadyComplete:
		return "already complete"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Complete marks the task with id as done. Only the Completed outcome
// writes to disk.
func (s *Store) Complete(id int) (Outcome, error) {
	tasks, err := s.Load()
	if err != nil {
		return 0, err
	}
	i := model.Find(tasks, id)
	switch {
	case i < 0:
		return NotFound, nil
	case tasks[i].Done:
		return AlreadyComplete, nil
	}
	tasks[i].Done = true
	if err := s.Save(tasks); err != nil {
		return 0, err
	}
	return Completed, nil
}

// Query returns the tasks matching f in insertion order.
func (s *Store) Query(f model.Filter) ([]model.Task, error) {
	tasks, err := s.Load()
	if err != nil {
		return nil, err
	}
	return model.Apply(tasks, f), nil
}

// writeAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a half-written file. An existing file keeps
// its permission bits; a new one gets 0644.
func writeAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Chmod(tmp, mode); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
