package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/logging"
	"github.com/gokturk078/cektakip/internal/models"
	"github.com/gokturk078/cektakip/internal/remote"
)

type fakeRemote struct {
	fetch func(ctx context.Context) (*remote.Document, error)
	put   func(ctx context.Context, content []byte, token string) (string, error)

	fetchCalls atomic.Int32
}

func (f *fakeRemote) Fetch(ctx context.Context) (*remote.Document, error) {
	f.fetchCalls.Add(1)
	return f.fetch(ctx)
}

func (f *fakeRemote) Put(ctx context.Context, content []byte, token string) (string, error) {
	return f.put(ctx, content, token)
}

type fakeCache struct {
	snap *models.Snapshot
	err  error

	saved []models.Snapshot
}

func (f *fakeCache) Load(ctx context.Context) (*models.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.snap == nil {
		return nil, errors.New("no cached snapshot")
	}
	return f.snap, nil
}

func (f *fakeCache) Save(ctx context.Context, snap models.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snap)
	return nil
}

func snapshotDoc(t *testing.T, checks ...models.Check) []byte {
	t.Helper()
	b, err := models.Snapshot{Checks: checks, TotalChecks: len(checks)}.Encode()
	require.NoError(t, err)
	return b
}

func TestNew_NilLoggerDefaults(t *testing.T) {
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return nil, common.ErrRemote
		},
	}
	s := New(r, nil, nil)

	// logging happens on every path; a nil logger must not panic
	snap := s.Load(context.Background())
	assert.Empty(t, snap.Checks)
}

func TestLoad_RemoteSuccess(t *testing.T) {
	content := snapshotDoc(t, models.Check{ID: 1, CompanyName: "Acme"})
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return &remote.Document{Content: content, Token: "sha-1"}, nil
		},
	}
	cache := &fakeCache{}
	s := New(r, cache, logging.Nop{})

	snap := s.Load(context.Background())

	require.Len(t, snap.Checks, 1)
	assert.Equal(t, StateSynced, s.State())
	assert.Equal(t, "sha-1", s.Token())
	// write-through refreshed the cache
	require.Len(t, cache.saved, 1)
}

func TestLoad_FallsBackToCache(t *testing.T) {
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return nil, common.ErrRemote
		},
	}
	cache := &fakeCache{snap: &models.Snapshot{Checks: []models.Check{{ID: 2}}}}
	s := New(r, cache, logging.Nop{})

	snap := s.Load(context.Background())

	require.Len(t, snap.Checks, 1)
	assert.Equal(t, int64(2), snap.Checks[0].ID)
	assert.Equal(t, StateSynced, s.State())
	assert.Empty(t, s.Token())
	// the remote path was retried before falling back
	assert.Equal(t, int32(3), r.fetchCalls.Load())
}

func TestLoad_FallsBackToEmpty(t *testing.T) {
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return nil, common.ErrRemote
		},
	}
	cache := &fakeCache{err: errors.New("cache unavailable")}
	s := New(r, cache, logging.Nop{})

	snap := s.Load(context.Background())

	assert.NotNil(t, snap.Checks)
	assert.Empty(t, snap.Checks)
	assert.Equal(t, StateEmpty, s.State())
}

func TestLoad_MalformedRemoteFallsBack(t *testing.T) {
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return &remote.Document{Content: []byte(`{"no":"checks"}`), Token: "sha-1"}, nil
		},
	}
	s := New(r, &fakeCache{snap: &models.Snapshot{Checks: []models.Check{}}}, logging.Nop{})

	snap := s.Load(context.Background())

	assert.Empty(t, snap.Checks)
	assert.Equal(t, StateSynced, s.State())
	// the malformed document's token was not adopted
	assert.Empty(t, s.Token())
}

func TestSave_AdoptsNewToken(t *testing.T) {
	content := snapshotDoc(t)
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return &remote.Document{Content: content, Token: "sha-1"}, nil
		},
		put: func(ctx context.Context, content []byte, token string) (string, error) {
			assert.Equal(t, "sha-1", token)
			return "sha-2", nil
		},
	}
	cache := &fakeCache{}
	s := New(r, cache, logging.Nop{})
	s.Load(context.Background())

	err := s.Save(context.Background(), models.Snapshot{Checks: []models.Check{{ID: 1}}})
	require.NoError(t, err)

	assert.Equal(t, "sha-2", s.Token())
	assert.Equal(t, StateSynced, s.State())
	// load + save both wrote through
	assert.Len(t, cache.saved, 2)
}

func TestSave_LazyTokenPrefetch(t *testing.T) {
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return &remote.Document{Content: snapshotDoc(t), Token: "sha-9"}, nil
		},
		put: func(ctx context.Context, content []byte, token string) (string, error) {
			assert.Equal(t, "sha-9", token)
			return "sha-10", nil
		},
	}
	s := New(r, nil, logging.Nop{})

	// no Load happened, so Save must fetch a token first
	err := s.Save(context.Background(), models.Snapshot{Checks: []models.Check{}})
	require.NoError(t, err)
	assert.Equal(t, "sha-10", s.Token())
	assert.Equal(t, int32(1), r.fetchCalls.Load())
}

func TestSave_PrefetchFailureWritesUnconditionally(t *testing.T) {
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return nil, common.ErrRemote
		},
		put: func(ctx context.Context, content []byte, token string) (string, error) {
			assert.Empty(t, token)
			return "sha-1", nil
		},
	}
	s := New(r, nil, logging.Nop{})

	err := s.Save(context.Background(), models.Snapshot{Checks: []models.Check{}})
	require.NoError(t, err)
	assert.Equal(t, "sha-1", s.Token())
}

func TestSave_FailureRestoresState(t *testing.T) {
	content := snapshotDoc(t)
	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return &remote.Document{Content: content, Token: "sha-1"}, nil
		},
		put: func(ctx context.Context, content []byte, token string) (string, error) {
			return "", common.ErrVersionConflict
		},
	}
	s := New(r, nil, logging.Nop{})
	s.Load(context.Background())

	err := s.Save(context.Background(), models.Snapshot{Checks: []models.Check{}})
	assert.ErrorIs(t, err, common.ErrVersionConflict)
	assert.Equal(t, StateSynced, s.State())
	// the stale token is kept; a later save retries with it
	assert.Equal(t, "sha-1", s.Token())
}

func TestSave_SecondConcurrentSaveRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var first sync.Once

	r := &fakeRemote{
		fetch: func(ctx context.Context) (*remote.Document, error) {
			return &remote.Document{Content: snapshotDoc(t), Token: "sha-1"}, nil
		},
		put: func(ctx context.Context, content []byte, token string) (string, error) {
			first.Do(func() {
				close(entered)
				<-release
			})
			return "sha-2", nil
		},
	}
	s := New(r, nil, logging.Nop{})
	s.Load(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.Save(context.Background(), models.Snapshot{Checks: []models.Check{}})
	}()

	<-entered
	// a save is in flight: the second one is rejected immediately, not queued
	err := s.Save(context.Background(), models.Snapshot{Checks: []models.Check{}})
	assert.ErrorIs(t, err, common.ErrSaveInProgress)

	close(release)
	require.NoError(t, <-done)

	// the slot is free again
	require.NoError(t, s.Save(context.Background(), models.Snapshot{Checks: []models.Check{}}))
}
