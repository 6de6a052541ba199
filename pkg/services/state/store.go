package state

import (
	"context"
	"sync"
	"time"

	"github.com/agroinform/prices-web/pkg/models/domain"
)

// Observer receives a snapshot after every mutation.
type Observer func(domain.State)

// Store owns the application state. All writes go through its mutators and
// readers only ever see copies.
type Store struct {
	// writeMu orders mutate+notify so observers see writes in the order they happened.
	writeMu sync.Mutex
	mu      sync.RWMutex
	state   domain.State
	nowFn   func() time.Time

	subMu     sync.RWMutex
	nextSubID uint64
	observers map[uint64]Observer
}

type Option func(*Store)

// WithClock overrides the time source used to stamp cachedAt.
func WithClock(nowFn func() time.Time) Option {
	return func(s *Store) {
		if nowFn != nil {
			s.nowFn = nowFn
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state:     domain.NewState(),
		nowFn:     time.Now,
		observers: make(map[uint64]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Snapshot() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) WeeklyReport() domain.WeeklyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.WeeklyReport.Clone()
}

// IsStale reports whether the weekly report was never cached, was cleared, or
// was cached more than maxAge ago.
func (s *Store) IsStale(maxAge time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.WeeklyReport.IsStale(s.nowFn(), maxAge)
}

// SetWeeklyReportState merges the keys present in patch into the weekly report
// and stamps cachedAt. Keys absent from patch are left untouched.
func (s *Store) SetWeeklyReportState(patch domain.WeeklyReportPatch) {
	s.mutate(func(st *domain.State) {
		patch.Apply(&st.WeeklyReport)
		cachedAt := s.nextStamp(st.WeeklyReport.CachedAt)
		st.WeeklyReport.CachedAt = &cachedAt
	})
}

// ClearWeeklyReportState restores the empty weekly report, cachedAt included.
func (s *Store) ClearWeeklyReportState() {
	s.mutate(func(st *domain.State) {
		st.WeeklyReport = domain.EmptyWeeklyReport()
	})
}

func (s *Store) SetCountryID(value string) {
	s.mutate(func(st *domain.State) {
		st.CountryID = value
	})
}

func (s *Store) SetLoading(value bool) {
	s.mutate(func(st *domain.State) {
		st.Loading = value
	})
}

// Subscribe registers fn to run synchronously after every mutation. fn may read
// the store but must not mutate it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.observers[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.observers, id)
			s.subMu.Unlock()
		})
	}
}

// Watch delivers snapshots on a channel until ctx is done. A slow reader only
// ever gets the latest snapshot; intermediate ones are dropped.
func (s *Store) Watch(ctx context.Context) <-chan domain.State {
	out := make(chan domain.State, 1)
	var mu sync.Mutex
	closed := false

	unsubscribe := s.Subscribe(func(st domain.State) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case <-out:
		default:
		}
		out <- st
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	return out
}

func (s *Store) mutate(fn func(*domain.State)) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) notify(snapshot domain.State) {
	s.subMu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range observers {
		fn(snapshot.Clone())
	}
}

// nextStamp returns the current time truncated to milliseconds, bumped past prev
// when the clock has not moved on.
func (s *Store) nextStamp(prev *time.Time) time.Time {
	now := s.nowFn().Truncate(time.Millisecond)
	if prev != nil && !now.After(*prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}
