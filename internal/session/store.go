// Package session owns the per-video state bundle and the keyed cache that
// lets repeated requests for a video reuse its transcript and index.
package session

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"quicktube/internal/chain"
	"quicktube/internal/domain"
	"quicktube/internal/transcript"
	"quicktube/internal/vectorstore"
)

// Session is the per-video bundle of transcript, chunk set, similarity
// index, and bound answer chain. Fields are immutable after build, so a
// session stays usable even after the store evicts it.
type Session struct {
	ID         string
	Transcript transcript.Transcript
	Chunks     []domain.Chunk
	Index      *vectorstore.Index
	Chain      *chain.Chain
}

// BuildFunc runs the full fetch→chunk→index→chain pipeline for one video.
type BuildFunc func(ctx context.Context, videoID string) (*Session, error)

// Store maps canonical video identifiers to sessions. Builds are
// single-flight per key: concurrent callers for the same video share one
// pipeline run, while unrelated videos build in parallel. The cache is
// bounded by an LRU of capacity entries; failed builds are never memoized.
type Store struct {
	build    BuildFunc
	capacity int

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

// NewStore creates a session store over the given build pipeline.
func NewStore(capacity int, build BuildFunc) *Store {
	if capacity <= 0 {
		capacity = 64
	}
	return &Store{
		build:    build,
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached session for an identifier, if present.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	s.order.MoveToFront(el)
	return el.Value.(*Session), true
}

// GetOrCreate returns the session for an identifier, building it if needed.
// The build runs detached from the caller's cancellation: a disconnected
// caller still populates the cache for everyone waiting behind it. There is
// no externally observable half-built state.
func (s *Store) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	if sess, ok := s.Get(id); ok {
		return sess, nil
	}
	v, err, _ := s.group.Do(id, func() (any, error) {
		if sess, ok := s.Get(id); ok {
			return sess, nil
		}
		sess, err := s.build(context.WithoutCancel(ctx), id)
		if err != nil {
			return nil, err
		}
		s.put(sess)
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Len reports the number of cached sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *Store) put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[sess.ID]; ok {
		el.Value = sess
		s.order.MoveToFront(el)
		return
	}
	s.entries[sess.ID] = s.order.PushFront(sess)
	for s.order.Len() > s.capacity {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*Session).ID)
	}
}
