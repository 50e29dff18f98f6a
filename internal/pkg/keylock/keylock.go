package keylock

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// KeyLock serializes mutations per user key. Entries are created lazily on
// first Lock and swept by a background janitor once they have been idle for
// longer than idleTTL. Operations on different keys never block each other.
type KeyLock struct {
	mu      sync.Mutex
	entries map[int64]*entry

	idleTTL       time.Duration
	sweepInterval time.Duration
	logger        *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

type entry struct {
	mu       sync.Mutex
	refs     int
	idleFrom time.Time
}

// New constructs a key lock table.
func New(idleTTL, sweepInterval time.Duration, logger *slog.Logger) *KeyLock {
	if idleTTL <= 0 {
		idleTTL = time.Minute
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	return &KeyLock{
		entries:       make(map[int64]*entry),
		idleTTL:       idleTTL,
		sweepInterval: sweepInterval,
		logger:        logger,
	}
}

// Lock acquires the mutex for the given key, creating it if needed.
func (l *KeyLock) Lock(key int64) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key.
func (l *KeyLock) Unlock(key int64) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			e.idleFrom = time.Now()
		}
	}
	l.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}

// Len reports the number of live lock entries.
func (l *KeyLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Start launches the idle entry janitor.
func (l *KeyLock) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.cancel = cancel
	l.mu.Unlock()

	l.wg.Add(1)
	go l.sweeper(runCtx)
}

// Stop terminates the janitor and waits for it to finish.
func (l *KeyLock) Stop() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *KeyLock) sweeper(ctx context.Context) {
	defer l.wg.Done()
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep(time.Now())
		}
	}
}

func (l *KeyLock) sweep(now time.Time) {
	l.mu.Lock()
	removed := 0
	for key, e := range l.entries {
		if e.refs == 0 && now.Sub(e.idleFrom) >= l.idleTTL {
			delete(l.entries, key)
			removed++
		}
	}
	l.mu.Unlock()

	if removed > 0 && l.logger != nil {
		l.logger.Debug("swept idle key locks", slog.Int("removed", removed))
	}
}
