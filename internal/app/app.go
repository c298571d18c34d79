// Package app is the process-wide state behind every surface: the task
// store, the current filter, search, display mode and new-task form
// selections. Surfaces raise intents here and render Snapshots.
package app

import (
	"time"

	"github.com/charmbracelet/log"

	"taskcal/internal/calendar"
	"taskcal/internal/logging"
	"taskcal/internal/storage"
	"taskcal/internal/task"
	"taskcal/internal/view"
)

type EventKind string

const (
	EventAdded    EventKind = "added"
	EventToggled  EventKind = "toggled"
	EventDeleted  EventKind = "deleted"
	EventFilter   EventKind = "filter"
	EventSearch   EventKind = "search"
	EventMode     EventKind = "mode"
	EventPriority EventKind = "priority"
	EventDue      EventKind = "due"
)

// Event describes a state change. TaskID is set for task mutations.
type Event struct {
	Kind   EventKind
	TaskID string
}

type Options struct {
	Filter    view.Status
	Priority  task.Priority
	WeekStart time.Weekday
	Now       func() time.Time
	Logger    *log.Logger
	// TaskOptions are passed through to task.NewStore.
	TaskOptions []task.Option
}

type Session struct {
	kv        storage.Store
	tasks     *task.Store
	now       func() time.Time
	log       *log.Logger
	weekStart time.Weekday

	filter   view.Status
	search   string
	mode     view.Mode
	priority task.Priority
	due      *time.Time

	listeners map[int]func(Event)
	nextSub   int
}

// New loads the task collection and the display mode from kv.
func New(kv storage.Store, opts Options) (*Session, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Filter == "" {
		opts.Filter = view.StatusAll
	}
	if opts.Priority == "" {
		opts.Priority = task.PriorityMedium
	}
	taskOpts := append([]task.Option{task.WithClock(opts.Now), task.WithLogger(opts.Logger)}, opts.TaskOptions...)

	s := &Session{
		kv:        kv,
		tasks:     task.NewStore(kv, taskOpts...),
		now:       opts.Now,
		log:       opts.Logger,
		weekStart: opts.WeekStart,
		filter:    opts.Filter,
		priority:  opts.Priority,
		listeners: make(map[int]func(Event)),
	}
	if err := s.tasks.Load(); err != nil {
		return nil, err
	}
	mode, err := view.LoadMode(kv)
	if err != nil {
		return nil, err
	}
	s.mode = mode
	return s, nil
}

func (s *Session) Tasks() *task.Store {
	return s.tasks
}

// Subscribe registers fn for every state change and returns a func that
// removes it.
func (s *Session) Subscribe(fn func(Event)) func() {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Session) notify(ev Event) {
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// Add creates a task from text with the pending priority and due date. The
// pending due date is cleared afterwards; the priority selection stays.
func (s *Session) Add(text string) (task.Task, bool, error) {
	t, ok, err := s.tasks.Add(text, s.priority, s.due)
	if err != nil || !ok {
		return t, ok, err
	}
	s.due = nil
	s.notify(Event{Kind: EventAdded, TaskID: t.ID})
	return t, true, nil
}

func (s *Session) Toggle(id string) (bool, error) {
	found, err := s.tasks.Toggle(id)
	if err != nil || !found {
		return found, err
	}
	s.notify(Event{Kind: EventToggled, TaskID: id})
	return true, nil
}

func (s *Session) Delete(id string) (bool, error) {
	found, err := s.tasks.Delete(id)
	if err != nil || !found {
		return found, err
	}
	s.notify(Event{Kind: EventDeleted, TaskID: id})
	return true, nil
}

func (s *Session) SetFilter(st view.Status) {
	if st == s.filter {
		return
	}
	s.filter = st
	s.notify(Event{Kind: EventFilter})
}

func (s *Session) SetSearch(q string) {
	if q == s.search {
		return
	}
	s.search = q
	s.notify(Event{Kind: EventSearch})
}

// SetMode switches the layout and persists it.
func (s *Session) SetMode(m view.Mode) error {
	if err := view.SaveMode(s.kv, m); err != nil {
		s.log.Error("save view mode failed", logging.KeyError, err)
		return err
	}
	if m == s.mode {
		return nil
	}
	s.mode = m
	s.notify(Event{Kind: EventMode})
	return nil
}

func (s *Session) SetPendingPriority(p task.Priority) {
	if p == s.priority {
		return
	}
	s.priority = p
	s.notify(Event{Kind: EventPriority})
}

func (s *Session) SetPendingDue(due *time.Time) {
	if due == nil && s.due == nil {
		return
	}
	if due != nil {
		d := *due
		due = &d
	}
	s.due = due
	s.notify(Event{Kind: EventDue})
}

func (s *Session) Filter() view.Status     { return s.filter }
func (s *Session) Search() string          { return s.search }
func (s *Session) Mode() view.Mode         { return s.mode }
func (s *Session) Priority() task.Priority { return s.priority }
func (s *Session) WeekStart() time.Weekday { return s.weekStart }
func (s *Session) Now() time.Time         { return s.now() }

// Snapshot is everything a surface needs for one render.
type Snapshot struct {
	Visible  []task.Task
	Stats    view.Stats
	Counts   map[view.Status]int
	Filter   view.Status
	Search   string
	Mode     view.Mode
	Priority task.Priority
	Due      *time.Time
	Now      time.Time
	// Calendar is set in calendar mode only.
	Calendar *calendar.Month
}

// Snapshot recomputes every derived view from the current collection.
func (s *Session) Snapshot() Snapshot {
	all := s.tasks.Tasks()
	now := s.now()
	visible := view.Filter(all, view.Query{Status: s.filter, Search: s.search})

	snap := Snapshot{
		Visible:  visible,
		Stats:    view.Summarize(all),
		Counts:   view.Counts(all),
		Filter:   s.filter,
		Search:   s.search,
		Mode:     s.mode,
		Priority: s.priority,
		Now:      now,
	}
	if s.due != nil {
		d := *s.due
		snap.Due = &d
	}
	if s.mode == view.ModeCalendar {
		month := calendar.Build(visible, now, s.weekStart)
		snap.Calendar = &month
	}
	return snap
}
