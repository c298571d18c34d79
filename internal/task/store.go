// Package task owns the task collection and mirrors it into storage after
// every mutation.
package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskcal/internal/logging"
	"taskcal/internal/storage"
)

// Key is the storage key holding the serialized collection.
const Key = "tasks"

var (
	ErrNotFound  = errors.New("task not found")
	ErrAmbiguous = errors.New("task id prefix is ambiguous")
)

// Store holds tasks newest first. It is not safe for concurrent use.
type Store struct {
	kv    storage.Store
	tasks []Task
	now   func() time.Time
	newID func() string
	log   *log.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(kv storage.Store, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with what storage holds. A missing key
// leaves the collection empty.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}
	if !ok {
		s.tasks = nil
		return nil
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return fmt.Errorf("decode tasks: %w", err)
	}
	s.tasks = tasks
	s.log.Debug("tasks loaded", logging.KeyCount, len(tasks))
	return nil
}

// Add prepends a task. Text that is empty after trimming adds nothing and
// returns false.
func (s *Store) Add(text string, p Priority, due *time.Time) (Task, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, nil
	}
	t := Task{
		ID:        s.newID(),
		Text:      text,
		Priority:  p,
		CreatedAt: s.now(),
	}
	if due != nil {
		d := *due
		t.DueDate = &d
	}

	prev := s.tasks
	next := make([]Task, 0, len(prev)+1)
	next = append(next, t)
	next = append(next, prev...)
	if err := s.commit(next, prev, "add"); err != nil {
		return Task{}, false, err
	}
	s.log.Debug("task added", logging.KeyID, t.ID, logging.KeyCount, len(s.tasks))
	return t, true, nil
}

// Toggle flips Completed. It returns false when no task has id.
func (s *Store) Toggle(id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	prev := s.tasks
	next := make([]Task, len(prev))
	copy(next, prev)
	next[i].Completed = !next[i].Completed
	if err := s.commit(next, prev, "toggle"); err != nil {
		return false, err
	}
	s.log.Debug("task toggled", logging.KeyID, id, "completed", next[i].Completed)
	return true, nil
}

// Delete removes the task. It returns false when no task has id.
func (s *Store) Delete(id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	prev := s.tasks
	next := make([]Task, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	if err := s.commit(next, prev, "delete"); err != nil {
		return false, err
	}
	s.log.Debug("task deleted", logging.KeyID, id, logging.KeyCount, len(s.tasks))
	return true, nil
}

// Tasks returns a copy of the collection in store order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id string) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Resolve finds a task by full id or by a unique id prefix.
func (s *Store) Resolve(ref string) (Task, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return Task{}, ErrNotFound
	}
	if t, ok := s.Get(ref); ok {
		return t, nil
	}
	var found []Task
	for _, t := range s.tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguous, ref, len(found))
	}
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// commit installs next and writes the whole collection. On a write failure
// prev is restored.
func (s *Store) commit(next, prev []Task, op string) error {
	s.tasks = next
	if err := s.save(); err != nil {
		s.tasks = prev
		s.log.Error("save tasks failed", logging.KeyOp, op, logging.KeyError, err)
		return err
	}
	return nil
}

func (s *Store) save() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(Key, string(data)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
