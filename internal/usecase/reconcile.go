package usecase

import (
	"sort"
	"sync"
	"time"

	"tailtracker-service/internal/domain/entity"
)

const (
	// historyFreshFor is how long a cached history survives before the next
	// details lookup refreshes it from the provider.
	historyFreshFor = 30 * time.Minute

	// recentFlightWindowSeconds: a segment that ended this recently means the
	// aircraft is on a currently-tracked flight and the cache is current.
	recentFlightWindowSeconds = int64(3600)

	// backfillWindowSeconds matches the history provider's maximum query span.
	backfillWindowSeconds = int64(30 * 24 * 60 * 60)
)

// shouldRefreshHistory decides whether the cached history is stale. Pure
// function of its inputs.
func shouldRefreshHistory(lastCheck time.Time, historyCount int, now time.Time) bool {
	if historyCount == 0 || lastCheck.IsZero() {
		return true
	}
	return now.Sub(lastCheck) > historyFreshFor
}

// hasRecentFlight reports whether any cached segment ended within the last
// hour. When true the history provider call is skipped entirely, regardless
// of how old the last check is.
func hasRecentFlight(history []entity.HistoryEntry, now time.Time) bool {
	cutoff := now.Unix() - recentFlightWindowSeconds
	for _, h := range history {
		if h.LastSeen >= cutoff {
			return true
		}
	}
	return false
}

// mergeFlightHistory combines freshly fetched segments with the stored ones,
// drops duplicates by lastSeen (first occurrence wins, fetched entries first)
// and returns the result sorted by lastSeen descending.
func mergeFlightHistory(existing, fetched []entity.HistoryEntry) []entity.HistoryEntry {
	combined := make([]entity.HistoryEntry, 0, len(existing)+len(fetched))
	combined = append(combined, fetched...)
	combined = append(combined, existing...)

	seen := make(map[int64]struct{}, len(combined))
	merged := make([]entity.HistoryEntry, 0, len(combined))
	for _, h := range combined {
		if _, dup := seen[h.LastSeen]; dup {
			continue
		}
		seen[h.LastSeen] = struct{}{}
		merged = append(merged, h)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].LastSeen > merged[j].LastSeen
	})

	return merged
}

// keyMutex serializes refresh cycles per registration so two concurrent
// stale lookups cannot interleave their backfill-and-persist steps.
type keyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyMutex() *keyMutex {
	return &keyMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyMutex) lock(key string) *sync.Mutex {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m
}
