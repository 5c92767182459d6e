package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

const DefaultProfileMaxAge = 5 * time.Minute

// ProfileQuery caches the caller profile per session address. Concurrent
// fetches for the same caller share one service call.
type ProfileQuery struct {
	service ports.ProfileService
	clock   ports.Clock
	logger  *slog.Logger
	maxAge  time.Duration
	group   singleflight.Group

	mu      sync.Mutex
	caller  string
	profile *domain.UserProfile
	status  domain.ProfileStatus
	gen     uint64
	lastErr error
}

func NewProfileQuery(service ports.ProfileService, clock ports.Clock, logger *slog.Logger) *ProfileQuery {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileQuery{
		service: service,
		clock:   clock,
		logger:  logger,
		maxAge:  DefaultProfileMaxAge,
	}
}

// Fetch returns the caller profile, nil when none is saved yet.
func (q *ProfileQuery) Fetch(ctx context.Context, caller string) (*domain.UserProfile, error) {
	if caller == "" {
		return nil, domain.ErrNotConnected
	}

	q.mu.Lock()
	if q.caller != caller {
		q.resetLocked(caller)
	}
	if !q.status.IsStale(q.clock.Now(), q.maxAge) {
		profile := cloneProfile(q.profile)
		q.mu.Unlock()
		return profile, nil
	}
	q.status.Loading = true
	gen := q.gen
	q.mu.Unlock()

	// The shared call outlives any single caller.
	shared := context.WithoutCancel(ctx)
	results := q.group.DoChan(caller, func() (any, error) {
		profile, err := q.service.GetCallerUserProfile(shared, caller)
		q.settle(gen, caller, profile, err)
		return profile, err
	})

	select {
	case res := <-results:
		if res.Err != nil {
			return nil, fmt.Errorf("get caller profile: %w", res.Err)
		}
		profile, _ := res.Val.(*domain.UserProfile)
		return cloneProfile(profile), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("get caller profile: %w", ctx.Err())
	}
}

// settle records a finished fetch unless the cache was reset meanwhile.
func (q *ProfileQuery) settle(gen uint64, caller string, profile *domain.UserProfile, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.gen != gen {
		return
	}

	q.status.Loading = false
	if err != nil {
		q.lastErr = err
		q.logger.Warn("fetch caller profile", "caller", caller, "error", err)
		return
	}

	q.lastErr = nil
	q.profile = cloneProfile(profile)
	q.status.Fetched = true
	q.status.FetchedAt = q.clock.Now()
}

// Save stores the profile and drops the cached copy so the next Fetch reads
// it back.
func (q *ProfileQuery) Save(ctx context.Context, caller string, profile domain.UserProfile) error {
	if caller == "" {
		return domain.ErrNotConnected
	}
	if profile.Preferences.FavoriteDestinations == nil {
		profile.Preferences.FavoriteDestinations = []string{}
	}

	if err := q.service.SaveCallerUserProfile(ctx, caller, profile); err != nil {
		return fmt.Errorf("save caller profile: %w", err)
	}

	q.mu.Lock()
	q.resetLocked(caller)
	q.mu.Unlock()
	q.group.Forget(caller)

	return nil
}

func (q *ProfileQuery) IsAdmin(ctx context.Context, caller string) (bool, error) {
	if caller == "" {
		return false, nil
	}

	admin, err := q.service.IsCallerAdmin(ctx, caller)
	if err != nil {
		return false, fmt.Errorf("check caller admin: %w", err)
	}

	return admin, nil
}

func (q *ProfileQuery) Invalidate() {
	q.mu.Lock()
	caller := q.caller
	q.resetLocked("")
	q.mu.Unlock()

	if caller != "" {
		q.group.Forget(caller)
	}
}

// HandleSession drops the cache when the session ends or changes hands.
func (q *ProfileQuery) HandleSession(snapshot SessionSnapshot) {
	q.mu.Lock()
	current := q.caller
	q.mu.Unlock()

	if current == "" {
		return
	}
	if !snapshot.Connected() || snapshot.Session.Address != current {
		q.Invalidate()
	}
}

func (q *ProfileQuery) Status() domain.ProfileStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.status
}

func (q *ProfileQuery) Profile() *domain.UserProfile {
	q.mu.Lock()
	defer q.mu.Unlock()

	return cloneProfile(q.profile)
}

func (q *ProfileQuery) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.lastErr
}

// Gate evaluates MustShowProfileSetup against the cached state.
func (q *ProfileQuery) Gate(connected bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return MustShowProfileSetup(connected, q.status, q.profile)
}

func (q *ProfileQuery) resetLocked(caller string) {
	q.gen++
	q.caller = caller
	q.profile = nil
	q.status = domain.ProfileStatus{}
	q.lastErr = nil
}

func cloneProfile(profile *domain.UserProfile) *domain.UserProfile {
	if profile == nil {
		return nil
	}

	clone := *profile
	clone.Preferences.FavoriteDestinations = append([]string{}, profile.Preferences.FavoriteDestinations...)
	return &clone
}
