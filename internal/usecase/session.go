package usecase

import (
	"context"
	"sync"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/markets"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/pkg/util"
)

const defaultPageSize = 12

// SessionParams starts one query session.
type SessionParams struct {
	Query    string
	PageSize int
	Filters  models.FilterState
	Sort     models.SortMode
}

// Session owns one query session: the per-source offsets, the append-only
// accumulated set and the displayed projection over it. LoadInitial and
// LoadMore never run concurrently against the same session; the phase acts
// as the in-flight flag, and a generation counter invalidates responses of
// a superseded load so a late arrival cannot corrupt a newer session state.
type Session struct {
	id            string
	registry      *markets.Registry
	balancer      *Balancer
	filterEngine  *FilterEngine
	maxConcurrent int64

	mu          sync.Mutex
	phase       models.SessionPhase
	generation  int64
	cancelLoad  context.CancelFunc
	params      SessionParams
	query       string
	pageSize    int
	filterState models.FilterState
	sortMode    models.SortMode
	offsets     map[models.Marketplace]*models.SourceOffset
	accumulated []models.Product
	displayed   []models.Product
	lastErr     error
	loadedOnce  bool
	lastAccess  time.Time
	observers   []func(models.SessionEvent)
}

func newSession(id string, registry *markets.Registry, balancer *Balancer, filterEngine *FilterEngine, maxConcurrent int64) *Session {
	return &Session{
		id:            id,
		registry:      registry,
		balancer:      balancer,
		filterEngine:  filterEngine,
		maxConcurrent: maxConcurrent,
		phase:         models.PhaseIdle,
		offsets:       make(map[models.Marketplace]*models.SourceOffset),
		lastAccess:    time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Subscribe registers an observer for session events. Observers run after
// the state transition, outside the session lock.
func (s *Session) Subscribe(fn func(models.SessionEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// LoadInitial resets the session and fetches the first page from every
// enabled source. Calling it while another load is in flight supersedes
// that load: its response is discarded on arrival.
func (s *Session) LoadInitial(ctx context.Context, params SessionParams) (models.SessionSnapshot, error) {
	if params.PageSize <= 0 {
		params.PageSize = defaultPageSize
	}
	if params.Filters.Category == "" {
		params.Filters.Category = models.CategoryAll
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel

	s.params = params
	s.query = params.Query
	s.pageSize = params.PageSize
	s.filterState = params.Filters
	s.sortMode = params.Sort
	s.accumulated = nil
	s.displayed = nil
	s.lastErr = nil
	s.loadedOnce = false
	s.offsets = make(map[models.Marketplace]*models.SourceOffset)

	var targets []fetchTarget
	for _, m := range s.registry.List() {
		if !util.SliceIncludes(params.Filters.EnabledSources, m) {
			continue
		}
		s.offsets[m] = &models.SourceOffset{Marketplace: m, HasMore: true}
		client, err := s.registry.Get(m)
		if err != nil {
			continue
		}
		targets = append(targets, fetchTarget{
			client: client,
			request: markets.PageRequest{
				Query:      params.Query,
				PageNumber: 1,
				PageSize:   params.PageSize,
			},
		})
	}
	s.phase = models.PhaseLoading
	s.touchLocked()
	s.mu.Unlock()
	defer cancel()

	s.emit(models.SessionReset{Query: params.Query}, models.LoadStarted{Initial: true})
	log.Infow(ctx, "loading initial results",
		"session_id", s.id,
		"query", params.Query,
		"page_size", params.PageSize,
		"sources", len(targets),
	)

	outcomes := fanOut(loadCtx, s.maxConcurrent, targets)
	return s.finishLoad(ctx, gen, len(targets), outcomes)
}

// LoadMore fetches the next page from every source that still has more.
// A call while a load is in flight is a no-op surfaced as ErrLoadInFlight;
// a call with nothing left is ErrNoMoreResults. Both leave state untouched.
func (s *Session) LoadMore(ctx context.Context) (models.SessionSnapshot, error) {
	s.mu.Lock()
	if s.phase == models.PhaseLoading || s.phase == models.PhaseLoadingMore {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, models.ErrLoadInFlight
	}
	targets := s.moreTargetsLocked()
	if len(targets) == 0 {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, models.ErrNoMoreResults
	}
	gen := s.generation
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	s.phase = models.PhaseLoadingMore
	s.touchLocked()
	s.mu.Unlock()
	defer cancel()

	s.emit(models.LoadStarted{Initial: false})
	log.Debugw(ctx, "loading more results", "session_id", s.id, "sources", len(targets))

	outcomes := fanOut(loadCtx, s.maxConcurrent, targets)
	return s.finishLoad(ctx, gen, len(targets), outcomes)
}

// Retry re-runs the failed operation: the original loadInitial when the
// first page never landed, otherwise a loadMore at unchanged offsets.
func (s *Session) Retry(ctx context.Context) (models.SessionSnapshot, error) {
	s.mu.Lock()
	initial := !s.loadedOnce
	params := s.params
	s.mu.Unlock()

	if initial {
		return s.LoadInitial(ctx, params)
	}
	return s.LoadMore(ctx)
}

// moreTargetsLocked picks the sources for the next round: initialized at
// loadInitial, still enabled, and not yet exhausted.
func (s *Session) moreTargetsLocked() []fetchTarget {
	var targets []fetchTarget
	for _, m := range s.registry.List() {
		offset := s.offsets[m]
		if offset == nil || !offset.HasMore {
			continue
		}
		if !util.SliceIncludes(s.filterState.EnabledSources, m) {
			continue
		}
		client, err := s.registry.Get(m)
		if err != nil {
			continue
		}
		targets = append(targets, fetchTarget{
			client: client,
			request: markets.PageRequest{
				Query:      s.query,
				PageNumber: offset.NextOffset/s.pageSize + 1,
				PageSize:   s.pageSize,
			},
		})
	}
	return targets
}

// finishLoad applies one settled round. Offsets advance by the page size
// requested, a short page retires its source, a failed source is left
// untouched so the next round retries it. The whole round is discarded
// when a newer loadInitial superseded it.
func (s *Session) finishLoad(ctx context.Context, gen int64, targetCount int, outcomes []fetchOutcome) (models.SessionSnapshot, error) {
	s.mu.Lock()
	if s.generation != gen {
		log.Debugw(ctx, "discarding superseded load", "session_id", s.id)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	batch := make(map[models.Marketplace][]models.Product, len(outcomes))
	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.err != nil || outcome.result == nil {
			continue
		}
		succeeded++
		offset := s.offsets[outcome.marketplace]
		if offset == nil {
			continue
		}
		offset.NextOffset += s.pageSize
		if outcome.result.ReceivedCount < s.pageSize {
			offset.HasMore = false
		}
		if len(outcome.result.Products) > 0 {
			batch[outcome.marketplace] = outcome.result.Products
		}
	}

	appended := 0
	if len(batch) > 0 {
		newItems := s.balancer.Balance(batch)
		s.accumulated = append(s.accumulated, newItems...)
		appended = len(newItems)
	}

	var err error
	var events []models.SessionEvent
	if targetCount > 0 && succeeded == 0 {
		err = models.ErrAllSourcesFailed
		s.lastErr = err
		events = append(events, models.LoadFailed{Err: err})
	} else {
		s.lastErr = nil
		s.loadedOnce = true
		events = append(events, models.LoadCompleted{Appended: appended, Total: len(s.accumulated)})
	}
	s.recomputeLocked()
	s.phase = models.PhaseReady
	s.cancelLoad = nil
	s.touchLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(events...)
	if err != nil {
		log.Warnw(ctx, "load failed on every source", "session_id", s.id, "sources", targetCount)
	}
	return snap, err
}

// UpdateFilters recomputes the displayed set synchronously from the
// accumulated set. No network involved.
func (s *Session) UpdateFilters(patch models.FilterPatch) models.SessionSnapshot {
	s.mu.Lock()
	s.filterState = s.filterState.Merge(patch)
	s.recomputeLocked()
	s.touchLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(models.FiltersChanged{})
	return snap
}

// UpdateSort re-sorts the displayed set synchronously.
func (s *Session) UpdateSort(mode models.SortMode) models.SessionSnapshot {
	s.mu.Lock()
	s.sortMode = mode
	s.recomputeLocked()
	s.touchLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(models.FiltersChanged{})
	return snap
}

func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMoreLocked()
}

// LastAccess reports when the session was last used, for idle collection.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) recomputeLocked() {
	s.displayed = SortProducts(s.filterEngine.Apply(s.accumulated, s.filterState), s.sortMode)
}

func (s *Session) hasMoreLocked() bool {
	for m, offset := range s.offsets {
		if offset.HasMore && util.SliceIncludes(s.filterState.EnabledSources, m) {
			return true
		}
	}
	return false
}

func (s *Session) snapshotLocked() models.SessionSnapshot {
	offsets := make([]models.SourceOffset, 0, len(s.offsets))
	for _, m := range models.AllMarketplaces() {
		if offset := s.offsets[m]; offset != nil {
			offsets = append(offsets, *offset)
		}
	}
	lastError := ""
	if s.lastErr != nil {
		lastError = s.lastErr.Error()
	}
	return models.SessionSnapshot{
		ID:          s.id,
		Phase:       s.phase,
		Query:       s.query,
		PageSize:    s.pageSize,
		Filters:     s.filterState,
		Sort:        s.sortMode,
		Displayed:   append([]models.Product(nil), s.displayed...),
		Accumulated: len(s.accumulated),
		HasMore:     s.hasMoreLocked(),
		LastError:   lastError,
		Offsets:     offsets,
	}
}

func (s *Session) touchLocked() {
	s.lastAccess = time.Now()
}

func (s *Session) emit(events ...models.SessionEvent) {
	s.mu.Lock()
	observers := append([]func(models.SessionEvent)(nil), s.observers...)
	s.mu.Unlock()

	for _, event := range events {
		for _, observer := range observers {
			observer(event)
		}
	}
}
