// Package checks implements the record store: the canonical in-memory list
// of check records, all pure queries over it, and the mutation operations
// that delegate to the persistence synchronizer.
//
// Mutation semantics: add, update and delete apply the change in memory,
// ask the synchronizer to persist the full snapshot, and roll the change
// back if persistence fails, surfacing a *common.PersistenceError. Import
// and the auto-status sweep deliberately do NOT roll back on failure; that
// asymmetry is inherited behavior and pinned by tests.
package checks

import (
	"context"
	"sync"
	"time"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/logging"
	"github.com/gokturk078/cektakip/internal/models"
)

// Synchronizer persists the full snapshot. It is expected to reject
// concurrent saves rather than queue them.
type Synchronizer interface {
	Save(ctx context.Context, snap models.Snapshot) error
}

// BankList is the durable store for user-added bank names.
type BankList interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) (bool, error)
}

// Deps wires a Store. Initial is adopted as-is (the caller hands ownership
// over); Now and Log default to the wall clock and a no-op logger.
type Deps struct {
	Initial       []models.Check
	Sync          Synchronizer
	Banks         BankList
	BaselineBanks []string
	Now           func() time.Time
	Log           logging.Logger
}

type Store struct {
	mu     sync.RWMutex
	checks []models.Check

	sync     Synchronizer
	banks    BankList
	baseline []string
	now      func() time.Time
	log      logging.Logger
}

func NewStore(deps Deps) *Store {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Log
	if log == nil {
		log = logging.Nop{}
	}
	checks := deps.Initial
	if checks == nil {
		checks = []models.Check{}
	}
	return &Store{
		checks:   checks,
		sync:     deps.Sync,
		banks:    deps.Banks,
		baseline: deps.BaselineBanks,
		now:      now,
		log:      log,
	}
}

// GetAll returns a defensive copy of the record list.
func (s *Store) GetAll() []models.Check {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneAll(s.checks)
}

// GetByID returns a copy of the record, or nil if the id does not exist.
func (s *Store) GetByID(id int64) *models.Check {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		c := s.checks[i].Clone()
		return &c
	}
	return nil
}

// NextID returns max existing id + 1, or 1 for an empty store.
func (s *Store) NextID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextIDLocked()
}

func (s *Store) nextIDLocked() int64 {
	var max int64
	for i := range s.checks {
		if s.checks[i].ID > max {
			max = s.checks[i].ID
		}
	}
	return max + 1
}

func (s *Store) indexOf(id int64) int {
	for i := range s.checks {
		if s.checks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add assigns an id, stamps createdAt, defaults the status to pending,
// appends the record and persists. On persistence failure the record is
// removed again and a PersistenceError returned.
func (s *Store) Add(ctx context.Context, draft models.Check) (models.Check, error) {
	s.mu.Lock()
	rec := draft.Clone()
	rec.ID = s.nextIDLocked()
	rec.CreatedAt = models.Timestamp(s.now())
	rec.UpdatedAt = ""
	rec.AutoUpdatedAt = ""
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	s.checks = append(s.checks, rec)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.mu.Lock()
		if i := s.indexOf(rec.ID); i >= 0 {
			s.checks = append(s.checks[:i], s.checks[i+1:]...)
		}
		s.mu.Unlock()
		return models.Check{}, &common.PersistenceError{Cause: err}
	}

	s.log.Info(ctx, "check added", "id", rec.ID, "company", rec.CompanyName)
	return rec.Clone(), nil
}

// Update merges the patch onto the record and persists. Returns (nil, nil)
// if the id does not exist; on persistence failure the pre-patch record is
// restored verbatim.
func (s *Store) Update(ctx context.Context, id int64, patch models.Patch) (*models.Check, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, nil
	}
	old := s.checks[i].Clone()
	updated := s.checks[i].Clone()
	patch.Apply(&updated)
	updated.UpdatedAt = models.Timestamp(s.now())
	s.checks[i] = updated
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.mu.Lock()
		if j := s.indexOf(id); j >= 0 {
			s.checks[j] = old
		}
		s.mu.Unlock()
		return nil, &common.PersistenceError{Cause: err}
	}

	s.log.Info(ctx, "check updated", "id", id)
	out := updated.Clone()
	return &out, nil
}

// Delete removes the record and persists. Returns false if the id is
// absent; on persistence failure the record is re-inserted at its original
// index.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	removed := s.checks[i]
	s.checks = append(s.checks[:i], s.checks[i+1:]...)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.mu.Lock()
		if i > len(s.checks) {
			i = len(s.checks)
		}
		s.checks = append(s.checks[:i], append([]models.Check{removed}, s.checks[i:]...)...)
		s.mu.Unlock()
		return false, &common.PersistenceError{Cause: err}
	}

	s.log.Info(ctx, "check deleted", "id", id)
	return true, nil
}

// SweepAutoStatus force-marks every pending record whose due date is
// strictly in the past as paid, stamping autoUpdatedAt. One persistence
// call covers the whole batch; the in-memory changes are NOT rolled back
// on failure. Returns the number of records changed.
//
// Note: marking overdue as paid conflates the two notions; kept exactly as
// the historical behavior.
func (s *Store) SweepAutoStatus(ctx context.Context) (int, error) {
	s.mu.Lock()
	now := s.now()
	stamp := models.Timestamp(now)
	changed := 0
	for i := range s.checks {
		if !s.checks[i].Status.Pending() {
			continue
		}
		days, ok := models.DaysUntil(s.checks[i].DueDate, now)
		if ok && days < 0 {
			s.checks[i].Status = models.StatusPaid
			s.checks[i].AutoUpdatedAt = stamp
			changed++
		}
	}
	s.mu.Unlock()

	if changed == 0 {
		return 0, nil
	}

	if err := s.persist(ctx); err != nil {
		return changed, &common.PersistenceError{Cause: err}
	}

	s.log.Info(ctx, "auto-status sweep completed", "changed", changed)
	return changed, nil
}

// Snapshot builds the durable document from the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Snapshot{
		Checks:      models.CloneAll(s.checks),
		LastUpdated: models.Timestamp(s.now()),
		TotalChecks: len(s.checks),
	}
}

// ExportSnapshot produces the bulk-export document. Pure; no I/O.
func (s *Store) ExportSnapshot() models.Export {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Export{
		Checks:      models.CloneAll(s.checks),
		ExportedAt:  models.Timestamp(s.now()),
		TotalChecks: len(s.checks),
	}
}

// ImportSnapshot replaces the record list wholesale (no merge) and
// persists. Rejects snapshots without a checks list before mutating
// anything. On persistence failure the store KEEPS the imported state.
func (s *Store) ImportSnapshot(ctx context.Context, snap models.Snapshot) error {
	if snap.Checks == nil {
		return common.ErrMalformedSnapshot
	}

	s.mu.Lock()
	s.checks = models.CloneAll(snap.Checks)
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return &common.PersistenceError{Cause: err}
	}

	s.log.Info(ctx, "snapshot imported", "checks", len(snap.Checks))
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	return s.sync.Save(ctx, s.Snapshot())
}
