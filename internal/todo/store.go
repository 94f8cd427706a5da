// Package todo holds the in-memory todo list and moves it to and from a
// key-value collaborator.
//
// A Store has a single owner and is not safe for concurrent use. Every
// mutation replaces the whole backing slice, so slices handed out by Todos
// are never changed afterwards.
package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Makepad-fr/todolist/internal/kv"
	"github.com/Makepad-fr/todolist/internal/model"
)

type Store struct {
	kv    kv.Store
	items []model.Todo
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithIDGenerator(gen func() string) Option { return func(s *Store) { s.newID = gen } }

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l.With().Str("component", "todo").Logger() }
}

// New returns an empty store persisting through backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:    backend,
		items: []model.Todo{},
		now:   time.Now,
		newID: uuid.NewString,
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Restore replaces the list with the one stored under key. A missing key
// yields an empty list. Undecodable data is returned as *DataFormatError
// and the current list is kept.
func (s *Store) Restore(ctx context.Context, key string) error {
	if key == "" {
		return &PreconditionError{Op: "restore"}
	}
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %q: %w", key, err)
	}
	if !ok {
		s.items = []model.Todo{}
		s.log.Debug().Str("key", key).Msg("nothing stored, starting empty")
		return nil
	}

	var items []model.Todo
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return &DataFormatError{Key: key, Err: err}
	}
	if items == nil {
		items = []model.Todo{}
	}
	s.items = items
	s.log.Debug().Str("key", key).Int("count", len(items)).Msg("restored")
	return nil
}

// Save writes the list under key.
func (s *Store) Save(ctx context.Context, key string) error {
	if key == "" {
		return &PreconditionError{Op: "save"}
	}
	b, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int("count", len(s.items)).Msg("saved")
	return nil
}

// Create appends a new, not yet completed todo. Text is stored as given.
func (s *Store) Create(text string) model.Todo {
	t := model.Todo{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: s.now().UnixMilli(),
	}
	next := make([]model.Todo, 0, len(s.items)+1)
	next = append(next, s.items...)
	s.items = append(next, t)
	return t
}

// Toggle flips the completed flag of the todo with the given id and
// reports whether one was found. Unknown ids change nothing.
func (s *Store) Toggle(id string) bool {
	found := false
	next := make([]model.Todo, len(s.items))
	for i, t := range s.items {
		if t.ID == id {
			t.Completed = !t.Completed
			found = true
		}
		next[i] = t
	}
	if found {
		s.items = next
	}
	return found
}

// Clear drops every todo.
func (s *Store) Clear() { s.items = []model.Todo{} }

// Todos returns a copy of the list in display order.
func (s *Store) Todos() []model.Todo {
	out := make([]model.Todo, len(s.items))
	copy(out, s.items)
	return out
}

// Visible is Todos with completed entries left out when hideCompleted is set.
func (s *Store) Visible(hideCompleted bool) []model.Todo {
	if !hideCompleted {
		return s.Todos()
	}
	out := make([]model.Todo, 0, len(s.items))
	for _, t := range s.items {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Find looks a todo up by id.
func (s *Store) Find(id string) (model.Todo, bool) {
	for _, t := range s.items {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

func (s *Store) Len() int { return len(s.items) }

// Stats counts completed and pending todos.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.items {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
