// Package syncer makes the record store's snapshot durable. It owns the
// remote version token and implements the synchronization state machine:
//
//	Uninitialized -> Fetching -> Synced | Empty
//	Synced        -> Writing  -> Synced
//
// Load failures degrade to cached or empty data and are never surfaced.
// Writes are conditional on the version token, guarded by a single write
// slot, and never retried automatically: reconciliation policy (rollback,
// retry, merge) belongs to the caller.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/logging"
	"github.com/gokturk078/cektakip/internal/models"
	"github.com/gokturk078/cektakip/internal/remote"
)

// State names a synchronizer lifecycle phase.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateFetching      State = "fetching"
	StateSynced        State = "synced"
	StateWriting       State = "writing"
	StateEmpty         State = "empty"
)

// Cache is the secondary read path and write-through target. A nil cache
// disables both.
type Cache interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap models.Snapshot) error
}

type Syncer struct {
	remote remote.Store
	cache  Cache
	log    logging.Logger

	// writeMu is the single write slot: a save arriving while another is
	// in flight is rejected up front, never queued.
	writeMu sync.Mutex

	mu    sync.Mutex
	state State
	token string
}

func New(r remote.Store, cache Cache, log logging.Logger) *Syncer {
	if log == nil {
		log = logging.Nop{}
	}
	return &Syncer{
		remote: r,
		cache:  cache,
		log:    log.With("component", "syncer"),
		state:  StateUninitialized,
	}
}

func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Syncer) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Token returns the currently held version token ("" when none).
func (s *Syncer) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Load brings in the current snapshot: remote first (with bounded retry,
// reads only), then the local cache, then an empty snapshot. It never
// returns an error for data unavailability.
func (s *Syncer) Load(ctx context.Context) models.Snapshot {
	s.setState(StateFetching)

	var doc *remote.Document
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		d, err := s.remote.Fetch(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		doc = d
		return nil
	})

	if err == nil {
		if snap, perr := models.ParseSnapshot(doc.Content); perr == nil {
			s.mu.Lock()
			s.token = doc.Token
			s.state = StateSynced
			s.mu.Unlock()

			s.writeCache(ctx, *snap)
			s.log.Info(ctx, "snapshot loaded from remote", "checks", len(snap.Checks))
			return *snap
		} else {
			s.log.Warn(ctx, "remote snapshot malformed, falling back", "err", perr)
		}
	} else {
		s.log.Warn(ctx, "remote fetch failed, falling back", "err", err)
	}

	if s.cache != nil {
		if snap, cerr := s.cache.Load(ctx); cerr == nil {
			s.setState(StateSynced)
			s.log.Info(ctx, "snapshot loaded from local cache", "checks", len(snap.Checks))
			return *snap
		} else {
			s.log.Warn(ctx, "local cache read failed", "err", cerr)
		}
	}

	s.setState(StateEmpty)
	s.log.Info(ctx, "no snapshot available, starting empty")
	return models.Snapshot{Checks: []models.Check{}}
}

// Save durably writes the snapshot. If no version token is held, one is
// fetched first (read-before-write). On success the token returned by the
// remote store is adopted and the cache refreshed. On any failure the
// error is returned as-is; the synchronizer does not retry.
func (s *Syncer) Save(ctx context.Context, snap models.Snapshot) error {
	if !s.writeMu.TryLock() {
		return common.ErrSaveInProgress
	}
	defer s.writeMu.Unlock()

	s.mu.Lock()
	prev := s.state
	s.state = StateWriting
	token := s.token
	s.mu.Unlock()

	if token == "" {
		if doc, err := s.remote.Fetch(ctx); err == nil {
			token = doc.Token
		} else {
			s.log.Warn(ctx, "token prefetch failed, writing unconditionally", "err", err)
		}
	}

	content, err := snap.Encode()
	if err != nil {
		s.setState(prev)
		return err
	}

	newToken, err := s.remote.Put(ctx, content, token)
	if err != nil {
		s.setState(prev)
		s.log.Error(ctx, "snapshot save failed", "err", err)
		return err
	}

	s.mu.Lock()
	s.token = newToken
	s.state = StateSynced
	s.mu.Unlock()

	s.writeCache(ctx, snap)
	s.log.Info(ctx, "snapshot saved", "checks", len(snap.Checks))
	return nil
}

func (s *Syncer) writeCache(ctx context.Context, snap models.Snapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(ctx, snap); err != nil {
		s.log.Warn(ctx, "local cache write failed", "err", err)
	}
}
