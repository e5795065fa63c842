// Package store owns the in-memory todo list and mirrors every change
// to the local blob store under a single key.
//
// Mutations go through the pure transitions in internal/model; after
// each one the whole list is written back. A failed write never blocks
// the change itself: the list updates in memory and the failure is kept
// as a display string until the next successful write clears it.
// No locking; the store belongs to one goroutine.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/aklinde/tick/internal/model"
	"github.com/aklinde/tick/internal/store/localstore"
)

// DefaultKey is the blob key the list persists under.
const DefaultKey = "todos"

// Store holds the current list and its persistence state.
type Store struct {
	kv     *localstore.Store
	log    *log.Logger
	key    string
	genID  model.IDFunc
	list   []model.Todo
	errMsg string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the blob key, DefaultKey otherwise.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithIDFunc overrides the id generator, model.NewID otherwise.
func WithIDFunc(gen model.IDFunc) Option {
	return func(s *Store) { s.genID = gen }
}

// Open loads the persisted list and returns a ready store. Opening
// never fails: a missing key yields a clean empty list, and unreadable
// or malformed data yields an empty list with the failure recorded in
// Err.
func Open(kv *localstore.Store, logger *log.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		log:   logger,
		key:   DefaultKey,
		genID: model.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	s.load()
	return s
}

func (s *Store) load() {
	s.list = []model.Todo{}
	data, err := s.kv.Get(s.key)
	if err != nil {
		if errors.Is(err, localstore.ErrNoKey) {
			return
		}
		s.errMsg = "failed to load todos: " + err.Error()
		s.log.Warn("load failed", "key", s.key, "err", err)
		return
	}
	list, err := decode(data)
	if err != nil {
		s.errMsg = "failed to load todos: " + err.Error()
		s.log.Warn("load failed", "key", s.key, "err", err)
		return
	}
	s.list = list
}

func (s *Store) persist() {
	data, err := encode(s.list)
	if err == nil {
		err = s.kv.Set(s.key, data)
	}
	if err != nil {
		s.errMsg = "storage error: " + err.Error()
		s.log.Warn("persist failed", "key", s.key, "count", len(s.list), "err", err)
		return
	}
	s.errMsg = ""
}

// Items returns a fresh snapshot of the current list.
func (s *Store) Items() []model.Todo {
	return snapshot(s.list)
}

// Add appends a new todo with the given title and persists the list.
// Titles are assumed valid; callers check model.ValidTitle first.
func (s *Store) Add(title string) []model.Todo {
	s.list = model.Add(s.list, title, s.genID)
	s.persist()
	return snapshot(s.list)
}

// Remove drops the entry matching id and persists the list.
func (s *Store) Remove(id string) []model.Todo {
	s.list = model.Remove(s.list, id)
	s.persist()
	return snapshot(s.list)
}

// Toggle flips the completion flag of the entry matching id and
// persists the list.
func (s *Store) Toggle(id string) []model.Todo {
	s.list = model.Toggle(s.list, id)
	s.persist()
	return snapshot(s.list)
}

// Rename replaces the title of the entry matching id and persists the
// list. Titles are assumed valid; callers check model.ValidTitle first.
func (s *Store) Rename(id, title string) []model.Todo {
	s.list = model.Rename(s.list, id, title)
	s.persist()
	return snapshot(s.list)
}

// Err returns the last storage failure as a display string, empty when
// the last write or load went through cleanly.
func (s *Store) Err() string {
	return s.errMsg
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.list)
}

// Stats counts completed and pending entries.
func (s *Store) Stats() (done, pending int) {
	return model.Stats(s.list)
}

func snapshot(list []model.Todo) []model.Todo {
	out := make([]model.Todo, len(list))
	copy(out, list)
	return out
}

func encode(list []model.Todo) ([]byte, error) {
	if list == nil {
		list = []model.Todo{}
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

func decode(data []byte) ([]model.Todo, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := listSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var list []model.Todo
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if list == nil {
		list = []model.Todo{}
	}
	return list, nil
}
