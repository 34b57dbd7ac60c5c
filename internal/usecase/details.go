package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/internal/domain/repository"
	"tailtracker-service/pkg/logger"
	"tailtracker-service/pkg/metrics"
)

// DetailsUsecase serves the details lookup: it enriches a stored aircraft
// record with registry metadata and a live position, and reconciles the
// cached flight history with the history provider when it has gone stale.
type DetailsUsecase struct {
	entryRepo       repository.EntryRepository
	airportRepo     repository.AirportRepository
	registry        repository.RegistryProvider
	live            repository.LiveFlightProvider
	history         repository.FlightHistoryProvider
	metrics         *metrics.Metrics
	logger          logger.Logger
	backfillTimeout time.Duration
	refreshLocks    *keyMutex
	now             func() time.Time
}

// NewDetailsUsecase creates a new details usecase. airportRepo may be nil
// when no reference database is configured.
func NewDetailsUsecase(
	entryRepo repository.EntryRepository,
	airportRepo repository.AirportRepository,
	registry repository.RegistryProvider,
	live repository.LiveFlightProvider,
	history repository.FlightHistoryProvider,
	metrics *metrics.Metrics,
	logger logger.Logger,
	backfillTimeout time.Duration,
) *DetailsUsecase {
	return &DetailsUsecase{
		entryRepo:       entryRepo,
		airportRepo:     airportRepo,
		registry:        registry,
		live:            live,
		history:         history,
		metrics:         metrics,
		logger:          logger,
		backfillTimeout: backfillTimeout,
		refreshLocks:    newKeyMutex(),
		now:             time.Now,
	}
}

// GetDetails assembles the details response for a registration. Only an
// unknown registration fails; every provider failure degrades its own slice
// of the payload and the rest is served from the store.
func (u *DetailsUsecase) GetDetails(ctx context.Context, registration string) (*entity.AircraftDetails, error) {
	start := time.Now()
	defer func() {
		u.metrics.LookupDuration.Observe(time.Since(start).Seconds())
	}()

	record, err := u.entryRepo.FindByRegistration(ctx, registration)
	if err != nil {
		if errors.Is(err, entity.ErrRecordNotFound) {
			return nil, entity.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	u.metrics.DetailsLookups.Inc()

	aircraft, err := u.registry.Lookup(ctx, registration)
	if err != nil {
		u.logger.Warn("Registry lookup failed, continuing without aircraft metadata",
			"registration", registration, "error", err)
		u.metrics.ProviderErrors.WithLabelValues("registry").Inc()
		aircraft = nil
	}

	liveFlight, err := u.live.CurrentPosition(ctx, registration)
	if err != nil {
		u.logger.Warn("Live position lookup failed, continuing without position",
			"registration", registration, "error", err)
		u.metrics.ProviderErrors.WithLabelValues("live").Inc()
		liveFlight = nil
	}

	record = u.reconcileHistory(ctx, record, aircraft)

	return &entity.AircraftDetails{
		Aircraft:         aircraft,
		LiveFlight:       liveFlight,
		Sightings:        record.Sightings,
		FlightHistory:    u.decorateAirports(ctx, record.FlightHistory),
		LastHistoryCheck: record.LastFlightHistoryCheck,
	}, nil
}

// reconcileHistory applies the staleness policy and, when a refresh is due,
// backfills from the provider, merges with the stored history and persists
// the result. It always returns a usable record, falling back to the stored
// state on any failure.
func (u *DetailsUsecase) reconcileHistory(ctx context.Context, record *entity.AircraftRecord, aircraft *entity.Aircraft) *entity.AircraftRecord {
	now := u.now()

	if hasRecentFlight(record.FlightHistory, now) {
		u.logger.Debug("Cached history contains a recent flight, skipping refresh",
			"registration", record.Registration)
		return record
	}
	if !shouldRefreshHistory(record.LastFlightHistoryCheck, len(record.FlightHistory), now) {
		return record
	}
	if aircraft == nil || aircraft.Icao24 == "" {
		u.logger.Warn("History refresh due but icao24 unavailable, serving cached history",
			"registration", record.Registration)
		return record
	}

	m := u.refreshLocks.lock(record.Registration)
	defer m.Unlock()

	// Re-read under the lock: a cycle that just finished here may have
	// already refreshed the cache, and the CAS token must be current.
	if fresh, err := u.entryRepo.FindByRegistration(ctx, record.Registration); err == nil {
		record = fresh
	}

	now = u.now()
	if hasRecentFlight(record.FlightHistory, now) ||
		!shouldRefreshHistory(record.LastFlightHistoryCheck, len(record.FlightHistory), now) {
		return record
	}

	if u.backfillTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.backfillTimeout)
		defer cancel()
	}

	begin := u.backfillBegin(record, now)
	fetched, missedChunks := u.fetchHistorySince(ctx, aircraft.Icao24, begin, now.Unix())
	if missedChunks > 0 {
		u.logger.Warn("History backfill incomplete, persisting partial results",
			"registration", record.Registration, "missedChunks", missedChunks)
	}

	merged := mergeFlightHistory(record.FlightHistory, fetched)

	err := u.entryRepo.UpdateFlightHistory(ctx, record.Registration, merged, now, record.LastFlightHistoryCheck)
	switch {
	case err == nil:
		record.FlightHistory = merged
		record.LastFlightHistoryCheck = now
	case errors.Is(err, entity.ErrConflict):
		u.logger.Warn("Concurrent history refresh won, serving its result",
			"registration", record.Registration)
		if fresh, ferr := u.entryRepo.FindByRegistration(ctx, record.Registration); ferr == nil {
			record = fresh
		}
	default:
		u.logger.Error("Failed to persist merged history, serving it unpersisted",
			"registration", record.Registration, "error", err)
		record.FlightHistory = merged
	}

	return record
}

// backfillBegin picks the start of the backfill range: the newest stored
// segment, else the earliest sighting, else now (which yields no backfill).
func (u *DetailsUsecase) backfillBegin(record *entity.AircraftRecord, now time.Time) int64 {
	if latest := record.LatestHistoryLastSeen(); latest > 0 {
		return latest
	}
	if earliest := record.EarliestSightingDate(); !earliest.IsZero() {
		return earliest.Unix()
	}
	return now.Unix()
}

// fetchHistorySince walks the [begin, now) range in provider-sized windows,
// strictly in order since each window starts where the previous one ended.
// The first failed chunk abandons the remainder; partial history is better
// than none and there is no retry budget. Returns the fetched segments and
// the number of chunks that were never retrieved.
func (u *DetailsUsecase) fetchHistorySince(ctx context.Context, icao24 string, begin, now int64) ([]entity.HistoryEntry, int) {
	var fetched []entity.HistoryEntry

	current := begin
	for current < now {
		windowEnd := current + backfillWindowSeconds
		if windowEnd > now {
			windowEnd = now
		}

		chunk, err := u.history.FetchSegments(ctx, icao24, current, windowEnd)
		if err != nil {
			u.metrics.ProviderErrors.WithLabelValues("history").Inc()
			u.metrics.BackfillFailures.Inc()
			u.logger.Warn("History chunk fetch failed, abandoning remaining chunks",
				"icao24", icao24, "begin", current, "end", windowEnd, "error", err)

			remaining := now - current
			missed := int((remaining + backfillWindowSeconds - 1) / backfillWindowSeconds)
			return fetched, missed
		}

		u.metrics.BackfillChunks.Inc()
		fetched = append(fetched, chunk...)
		current = windowEnd
	}

	return fetched, 0
}

// decorateAirports attaches airport names from the reference table to each
// segment. Purely cosmetic: lookup failures leave the segment untouched.
func (u *DetailsUsecase) decorateAirports(ctx context.Context, history []entity.HistoryEntry) []entity.HistoryEntry {
	if u.airportRepo == nil || len(history) == 0 {
		return history
	}

	cache := make(map[string]*entity.Airport)
	lookup := func(code string) *entity.Airport {
		if code == "" {
			return nil
		}
		if airport, ok := cache[code]; ok {
			return airport
		}
		airport, err := u.airportRepo.GetByIcao(ctx, code)
		if err != nil {
			u.logger.Debug("Airport lookup failed", "code", code, "error", err)
			airport = nil
		}
		cache[code] = airport
		return airport
	}

	decorated := make([]entity.HistoryEntry, len(history))
	copy(decorated, history)
	for i := range decorated {
		if airport := lookup(decorated[i].EstDepartureAirport); airport != nil {
			decorated[i].DepartureAirportName = fmt.Sprintf("%s | %s", airport.Name, airport.City)
		}
		if airport := lookup(decorated[i].EstArrivalAirport); airport != nil {
			decorated[i].ArrivalAirportName = fmt.Sprintf("%s | %s", airport.Name, airport.City)
		}
	}

	return decorated
}
