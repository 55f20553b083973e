package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOrCreateCachesSession(t *testing.T) {
	var builds atomic.Int32
	store := NewStore(4, func(_ context.Context, id string) (*Session, error) {
		builds.Add(1)
		return &Session{ID: id}, nil
	})

	first, err := store.GetOrCreate(context.Background(), "vid")
	require.NoError(t, err)
	second, err := store.GetOrCreate(context.Background(), "vid")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, int32(1), builds.Load())
	require.Equal(t, 1, store.Len())
}

func TestGetOrCreateSingleFlight(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})
	store := NewStore(4, func(_ context.Context, id string) (*Session, error) {
		builds.Add(1)
		<-release
		return &Session{ID: id}, nil
	})

	const callers = 16
	sessions := make([]*Session, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := store.GetOrCreate(context.Background(), "vid")
			require.NoError(t, err)
			sessions[i] = sess
		}(i)
	}
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), builds.Load(), "concurrent callers must share one build")
	for i := 1; i < callers; i++ {
		require.Same(t, sessions[0], sessions[i])
	}
}

func TestFailedBuildNotMemoized(t *testing.T) {
	var builds atomic.Int32
	boom := errors.New("no captions")
	store := NewStore(4, func(_ context.Context, id string) (*Session, error) {
		if builds.Add(1) == 1 {
			return nil, boom
		}
		return &Session{ID: id}, nil
	})

	_, err := store.GetOrCreate(context.Background(), "vid")
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, store.Len())

	sess, err := store.GetOrCreate(context.Background(), "vid")
	require.NoError(t, err)
	require.Equal(t, "vid", sess.ID)
	require.Equal(t, int32(2), builds.Load())
}

func TestBuildSurvivesCallerCancellation(t *testing.T) {
	store := NewStore(4, func(ctx context.Context, id string) (*Session, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &Session{ID: id}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess, err := store.GetOrCreate(ctx, "vid")
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewStore(2, func(_ context.Context, id string) (*Session, error) {
		return &Session{ID: id}, nil
	})

	for _, id := range []string{"a", "b"} {
		_, err := store.GetOrCreate(context.Background(), id)
		require.NoError(t, err)
	}
	// touch "a" so "b" becomes the eviction candidate
	_, ok := store.Get("a")
	require.True(t, ok)

	_, err := store.GetOrCreate(context.Background(), "c")
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	_, ok = store.Get("a")
	require.True(t, ok)
	_, ok = store.Get("b")
	require.False(t, ok, "least recently used entry should be evicted")
	_, ok = store.Get("c")
	require.True(t, ok)
}

func TestDistinctVideosBuildIndependently(t *testing.T) {
	var builds atomic.Int32
	store := NewStore(8, func(_ context.Context, id string) (*Session, error) {
		builds.Add(1)
		return &Session{ID: id}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("vid-%d", i)
			sess, err := store.GetOrCreate(context.Background(), id)
			require.NoError(t, err)
			require.Equal(t, id, sess.ID)
		}(i)
	}
	wg.Wait()
	require.Equal(t, int32(4), builds.Load())
	require.Equal(t, 4, store.Len())
}
