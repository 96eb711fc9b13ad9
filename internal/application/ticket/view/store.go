// Package view maintains the live ticket set a dashboard session works
// against. The store applies direct mutations optimistically through
// the use-case layer and lets the reconciler fold pushed events in, so
// multiple browser views and server pushes converge on one state.
package view

import (
	"context"
	"sync"
	"time"

	"loftwork/internal/application/ticket/usecases"
	"loftwork/internal/domain/ticket"
	vo "loftwork/internal/domain/ticket/valueobjects"
	"loftwork/internal/shared/logger"
)

// ResolutionNotifier is told exactly once when a ticket transitions
// into resolved. Implementations own their own cross-instance dedup.
type ResolutionNotifier interface {
	NotifyResolved(ctx context.Context, snapshot ticket.Snapshot)
}

// optimistic creates need an addressable id before the server assigns
// one. Temp ids live far above any real auto-increment value and are
// swapped out on confirm.
const tempIDBase uint = 1 << 31

// Store is the session-local ticket state. All reads and writes are
// safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	records    map[uint]ticket.Snapshot
	tombstones map[uint]struct{}
	filter     ticket.TicketFilter
	addresses  map[uint]string
	generation uint64
	nextTempID uint

	// perID serializes direct mutations per ticket so rapid edits to
	// the same record apply in submission order.
	perIDMu sync.Mutex
	perID   map[uint]*sync.Mutex

	creator  usecases.CreateTicketExecutor
	updater  usecases.UpdateTicketExecutor
	deleter  usecases.DeleteTicketExecutor
	lister   usecases.ListTicketsExecutor
	notifier ResolutionNotifier
	logger   logger.Interface
}

func NewStore(
	creator usecases.CreateTicketExecutor,
	updater usecases.UpdateTicketExecutor,
	deleter usecases.DeleteTicketExecutor,
	lister usecases.ListTicketsExecutor,
	notifier ResolutionNotifier,
	logger logger.Interface,
) *Store {
	return &Store{
		records:    make(map[uint]ticket.Snapshot),
		tombstones: make(map[uint]struct{}),
		addresses:  make(map[uint]string),
		nextTempID: tempIDBase,
		perID:      make(map[uint]*sync.Mutex),
		creator:    creator,
		updater:    updater,
		deleter:    deleter,
		lister:     lister,
		notifier:   notifier,
		logger:     logger,
	}
}

// SetAddresses replaces the property-address lookup used by free-text
// filtering.
func (s *Store) SetAddresses(addresses map[uint]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses = addresses
}

// Load fetches the ticket set for the given query and replaces the
// store contents. Changing the query invalidates any load still in
// flight: a load that comes back after a newer one started is
// discarded wholesale, never merged.
func (s *Store) Load(ctx context.Context, query usecases.ListTicketsQuery) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	result, err := s.lister.Execute(ctx, query)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debugw("discarding stale ticket load", "generation", gen, "current", s.generation)
		return nil
	}

	s.filter = result.Filter
	s.records = make(map[uint]ticket.Snapshot, len(result.Tickets))
	for _, snap := range result.Tickets {
		if _, deleted := s.tombstones[snap.ID]; deleted {
			continue
		}
		s.records[snap.ID] = snap
	}
	return nil
}

// Create submits a new ticket. The record appears immediately under a
// temporary id and is swapped for the server record on confirm; on
// failure it disappears again and the error is surfaced.
func (s *Store) Create(ctx context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error) {
	s.mu.Lock()
	s.nextTempID++
	tempID := s.nextTempID
	now := time.Now()
	s.records[tempID] = ticket.Snapshot{
		ID:          tempID,
		Title:       cmd.Title,
		Description: cmd.Description,
		PropertyID:  cmd.PropertyID,
		Metadata:    cmd.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mu.Unlock()

	result, err := s.creator.Execute(ctx, cmd)

	s.mu.Lock()
	delete(s.records, tempID)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.Apply(ctx, result.Ticket)
	return result, nil
}

// Update patches an existing ticket. The patch is applied to the local
// record before the server confirms; a failure rolls the record back
// to its prior state and surfaces the error.
func (s *Store) Update(ctx context.Context, cmd usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error) {
	unlock := s.lockID(cmd.TicketID)
	defer unlock()

	s.mu.Lock()
	prior, had := s.records[cmd.TicketID]
	if had {
		s.records[cmd.TicketID] = patchSnapshot(prior, cmd)
	}
	s.mu.Unlock()

	result, err := s.updater.Execute(ctx, cmd)
	if err != nil {
		if had {
			s.mu.Lock()
			// Roll back only if nothing newer landed meanwhile.
			if cur, ok := s.records[cmd.TicketID]; ok && !cur.UpdatedAt.After(prior.UpdatedAt) {
				s.records[cmd.TicketID] = prior
			}
			s.mu.Unlock()
		}
		return nil, err
	}

	s.Apply(ctx, result.Ticket)
	return result, nil
}

// Delete removes a ticket. The record vanishes immediately and the id
// is tombstoned so a late event or confirm cannot resurrect it; a
// failed delete restores the record and surfaces the error.
func (s *Store) Delete(ctx context.Context, cmd usecases.DeleteTicketCommand) error {
	unlock := s.lockID(cmd.TicketID)
	defer unlock()

	s.mu.Lock()
	prior, had := s.records[cmd.TicketID]
	delete(s.records, cmd.TicketID)
	s.tombstones[cmd.TicketID] = struct{}{}
	s.mu.Unlock()

	_, err := s.deleter.Execute(ctx, cmd)
	if err != nil {
		s.mu.Lock()
		delete(s.tombstones, cmd.TicketID)
		if had {
			s.records[cmd.TicketID] = prior
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Apply folds a full ticket record into the store: insert when absent,
// otherwise last-writer-wins on UpdatedAt. Records older than the
// local copy are ignored, which makes application idempotent and
// order-insensitive. Fires the resolution notifier exactly once per
// observed transition into resolved.
func (s *Store) Apply(ctx context.Context, snap ticket.Snapshot) {
	s.mu.Lock()

	if _, deleted := s.tombstones[snap.ID]; deleted {
		s.mu.Unlock()
		return
	}

	prior, had := s.records[snap.ID]
	if had && snap.UpdatedAt.Before(prior.UpdatedAt) {
		s.mu.Unlock()
		return
	}

	s.records[snap.ID] = snap

	notify := had &&
		!prior.Status.IsResolved() &&
		snap.Status.IsResolved()
	s.mu.Unlock()

	if notify && s.notifier != nil {
		s.notifier.NotifyResolved(ctx, snap)
	}
}

// Remove drops a ticket unconditionally and tombstones its id. Used by
// the reconciler for pushed deletes; deletes always win regardless of
// timestamps.
func (s *Store) Remove(ticketID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, ticketID)
	s.tombstones[ticketID] = struct{}{}
}

// Get returns the current record for an id.
func (s *Store) Get(ticketID uint) (ticket.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.records[ticketID]
	return snap, ok
}

// List returns the records matching the store's current filter.
func (s *Store) List() []ticket.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ticket.Snapshot, 0, len(s.records))
	for _, snap := range s.records {
		if s.filter.Matches(snap, s.addresses[snap.PropertyID]) {
			out = append(out, snap)
		}
	}
	return out
}

// Len reports how many records the store holds, filtered or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) lockID(id uint) func() {
	s.perIDMu.Lock()
	mu, ok := s.perID[id]
	if !ok {
		mu = &sync.Mutex{}
		s.perID[id] = mu
	}
	s.perIDMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func patchSnapshot(snap ticket.Snapshot, cmd usecases.UpdateTicketCommand) ticket.Snapshot {
	if cmd.Title != nil {
		snap.Title = *cmd.Title
	}
	if cmd.Description != nil {
		snap.Description = *cmd.Description
	}
	if cmd.Metadata != nil {
		snap.Metadata = cmd.Metadata.Clone()
	}
	if cmd.Priority != nil {
		if p, err := vo.NormalizePriority(*cmd.Priority); err == nil {
			snap.Priority = p
		}
	}
	// Status is settled by the confirm: the store must observe the
	// non-resolved -> resolved transition itself to fire the
	// notification exactly once. UpdatedAt is deliberately not
	// advanced so the server record always wins the last-writer
	// comparison on confirm.
	return snap
}
