package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/config"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/repo/markets"
)

// ManagedSession pairs a session with the scroll driver that feeds it.
type ManagedSession struct {
	Session *Session
	Driver  *ScrollDriver
}

// SessionManager owns the in-memory session store. Sessions are
// independent; an abandoned one is collected once it sits idle past the
// configured TTL.
type SessionManager interface {
	Create(ctx context.Context, params SessionParams) (*ManagedSession, models.SessionSnapshot, error)
	Get(id string) (*ManagedSession, error)
	Delete(id string) bool
	Sweep() int
}

type sessionManager struct {
	conf         *config.Config
	registry     *markets.Registry
	balancer     *Balancer
	filterEngine *FilterEngine

	mu       sync.RWMutex
	sessions map[string]*ManagedSession
}

func NewSessionManager(conf *config.Config, registry *markets.Registry, balancer *Balancer, filterEngine *FilterEngine) SessionManager {
	return &sessionManager{
		conf:         conf,
		registry:     registry,
		balancer:     balancer,
		filterEngine: filterEngine,
		sessions:     make(map[string]*ManagedSession),
	}
}

// Create registers a fresh session and runs its initial load. The session
// stays usable even when the load fails; the caller retries through it.
func (m *sessionManager) Create(ctx context.Context, params SessionParams) (*ManagedSession, models.SessionSnapshot, error) {
	if params.PageSize <= 0 {
		params.PageSize = m.conf.Engine.DefaultPageSize
	}

	session := newSession(
		uuid.NewString(),
		m.registry,
		m.balancer,
		m.filterEngine,
		m.conf.Engine.MaxConcurrentFetches,
	)
	managed := &ManagedSession{
		Session: session,
		Driver:  NewScrollDriver(session, m.conf.Engine.ScrollDebounce),
	}

	m.mu.Lock()
	m.sessions[session.ID()] = managed
	m.mu.Unlock()

	snap, err := session.LoadInitial(ctx, params)
	return managed, snap, err
}

func (m *sessionManager) Get(id string) (*ManagedSession, error) {
	m.mu.RLock()
	managed, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	// an idle session past its TTL is gone, not stale
	if time.Since(managed.Session.LastAccess()) > m.conf.Engine.SessionTTL {
		m.Delete(id)
		return nil, models.ErrSessionNotFound
	}
	return managed, nil
}

func (m *sessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Sweep drops every session idle past the TTL and returns how many went.
func (m *sessionManager) Sweep() int {
	ttl := m.conf.Engine.SessionTTL

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, managed := range m.sessions {
		if time.Since(managed.Session.LastAccess()) > ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired sessions in the background for the lifetime
// of the process.
func StartJanitor(lc fx.Lifecycle, conf *config.Config, manager SessionManager) {
	logt := logger.MustNamed("janitor")
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			interval := conf.Engine.SweepInterval
			if interval <= 0 {
				interval = time.Minute
			}
			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						if removed := manager.Sweep(); removed > 0 {
							log.Infow(context.Background(), "swept idle sessions", "removed", removed)
						}
					}
				}
			}()
			logt.Infow("session janitor started", "interval", interval.String())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}
