// ABOUTME: Local Data Store owning the in-memory aggregate and its persistence
// ABOUTME: Sole writer to the slot; every mutation persists and notifies subscribers

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Store owns the canonical in-process copy of all domain records. It is the
// only writer to the persistence slot. Construct one per process with New and
// pass it by reference to collaborators; there is no package-level instance.
type Store struct {
	mu          sync.Mutex
	slot        Slot
	logger      *slog.Logger
	data        Snapshot
	initialized bool

	subs          []subscription
	nextSubID     int
	notifyPending bool
}

type subscription struct {
	id int
	fn func()
}

// New creates a store bound to the given slot. Call Init before use.
func New(slot Slot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		slot:   slot,
		logger: logger.With("component", "store"),
	}
}

// Init populates the aggregate: from the slot if it holds data with the
// expected format version, otherwise from the seed dataset. Idempotent.
func (s *Store) Init() error {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	loaded, err := s.loadFromSlot()
	if err != nil {
		s.logger.Warn("slot unreadable, falling back to seed data", "error", err)
		loaded = false
	}
	if !loaded {
		s.data = seedSnapshot(time.Now())
		s.persistLocked()
	}

	s.initialized = true
	s.logger.Info("store initialized",
		"ordens", len(s.data.OrdensServico),
		"clientes", len(s.data.Clientes),
		"equipamentos", len(s.data.Equipamentos),
	)
	return nil
}

// loadFromSlot tries to restore the aggregate from the persistence slot.
// Returns false when the slot is empty or carries an unexpected format version.
func (s *Store) loadFromSlot() (bool, error) {
	raw, err := s.slot.Load()
	if err == ErrSlotEmpty {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("parsing persisted envelope: %w", err)
	}
	if env.Version != FormatVersion {
		s.logger.Warn("discarding persisted data with unexpected format version",
			"got", env.Version, "want", FormatVersion)
		return false, nil
	}

	s.data = env.Data
	s.ensureCounters()
	return true, nil
}

// Data returns a deep copy of the aggregate. Mutating the returned value has
// no effect on the store.
func (s *Store) Data() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deepCopy(s.data)
}

// GetSettings returns the current user preferences.
func (s *Store) GetSettings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := deepCopy(s.data)
	return copied.Settings
}

// UpdateSettings replaces the preferences. Settings changes are persisted and
// notified but not audited.
func (s *Store) UpdateSettings(settings Settings) {
	defer s.notifySubscribers()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Settings = settings
	s.persistLocked()
}

// Subscribe registers fn to run synchronously after every successful persist,
// in registration order. Callbacks run after the store mutex is released, so
// they may call back into the store, including the returned unsubscribe
// function. A panicking subscriber does not affect the others or the
// mutating caller.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// persistLocked serializes the aggregate to the slot and marks subscribers
// for notification. Write failures are logged, not raised: the in-memory
// state is already updated and stays authoritative until the next successful
// write. Callers must hold s.mu and have notifySubscribers deferred.
func (s *Store) persistLocked() {
	env := envelope{
		Version:     FormatVersion,
		Data:        s.data,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}

	raw, err := json.Marshal(env)
	if err != nil {
		s.logger.Error("serializing aggregate", "error", err)
	} else if err := s.slot.Save(raw); err != nil {
		s.logger.Warn("persisting aggregate failed, in-memory state retained", "error", err)
	}

	s.notifyPending = true
}

// notifySubscribers delivers the notification recorded by persistLocked.
// Every mutating operation defers it before taking s.mu, so callbacks run
// once the mutex is free and can safely read or mutate the store. Concurrent
// mutations may coalesce into a single callback run.
func (s *Store) notifySubscribers() {
	s.mu.Lock()
	if !s.notifyPending {
		s.mu.Unlock()
		return
	}
	s.notifyPending = false
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		s.runSubscriber(sub)
	}
}

func (s *Store) runSubscriber(sub subscription) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("subscriber panicked", "error", r)
		}
	}()
	sub.fn()
}

// nextID increments and returns the persisted counter for an entity kind.
// Counters never decrease, so ids are not reused after deletions.
func (s *Store) nextID(kind EntityKind) int {
	if s.data.Contadores == nil {
		s.data.Contadores = make(map[string]int)
	}
	s.data.Contadores[string(kind)]++
	return s.data.Contadores[string(kind)]
}

// ensureCounters rebuilds the id counters from the collections when the
// persisted snapshot predates them (data exported by the original app).
func (s *Store) ensureCounters() {
	if s.data.Contadores == nil {
		s.data.Contadores = make(map[string]int)
	}
	c := s.data.Contadores

	bump := func(kind EntityKind, n int) {
		if n > c[string(kind)] {
			c[string(kind)] = n
		}
	}
	for _, cl := range s.data.Clientes {
		bump(KindCliente, trailingSequence(cl.ID))
	}
	for _, eq := range s.data.Equipamentos {
		bump(KindEquipamento, trailingSequence(eq.ID))
	}
	for _, os := range s.data.OrdensServico {
		bump(KindOrdemServico, trailingSequence(os.ID))
	}
}

// trailingSequence extracts the numeric sequence after the last '-' of an id,
// e.g. 3 from "cliente-3" or 12 from "OS-2026-0012". Returns 0 when the id
// does not end in a number.
func trailingSequence(id string) int {
	i := strings.LastIndexByte(id, '-')
	if i < 0 || i == len(id)-1 {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return 0
	}
	return n
}

// deepCopy clones a value through its JSON representation. The aggregate is
// plain data, so the round trip is lossless.
func deepCopy(snap Snapshot) Snapshot {
	raw, err := json.Marshal(snap)
	if err != nil {
		// Snapshot contains only marshalable types; this cannot happen with
		// data that entered through the store's own operations.
		panic(fmt.Sprintf("store: snapshot not serializable: %v", err))
	}
	var out Snapshot
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("store: snapshot round-trip failed: %v", err))
	}
	return out
}
