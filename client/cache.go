package client

import (
	"context"
	"errors"
	"sync"

	"github.com/netflim/movie-reactions/internal/model"
)

// ErrToggleInFlight is returned when a toggle is attempted on a movie
// whose previous toggle has not resolved yet.
var ErrToggleInFlight = errors.New("toggle already in flight for movie")

// Entry is the cached view of one movie: the session's reaction, the
// movie's statistics and whether a call for it is in flight.
type Entry struct {
	Reaction model.Reaction
	Stats    model.MovieStats
	Loading  bool
}

// ReactionCache mirrors server-confirmed reaction state per movie and
// applies optimistic transitions before the server confirms them.  It is
// a presentation-layer mirror, never authoritative: a full reload always
// re-fetches truth from the server.
//
// Toggle computes the next step of the cycle neutral -> liked ->
// disliked -> neutral locally, shows it immediately, then persists it.
// On failure the pre-toggle state is restored — except when the backend
// is unreachable, in which case the optimistic state is kept and the
// caller is told it is running in local-only mode.
type ReactionCache struct {
	mu      sync.Mutex
	client  *Client
	entries map[int64]*Entry
}

// NewReactionCache returns an empty cache backed by the given client.
func NewReactionCache(c *Client) *ReactionCache {
	return &ReactionCache{client: c, entries: make(map[int64]*Entry)}
}

// Entry returns the cached view for a movie.  Unknown movies report the
// neutral state with zero statistics.
func (rc *ReactionCache) Entry(movieID int64) Entry {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if e, ok := rc.entries[movieID]; ok {
		return *e
	}
	return Entry{Reaction: model.ReactionNeutral}
}

// IsLoading reports whether a call for the movie is in flight.
func (rc *ReactionCache) IsLoading(movieID int64) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	e, ok := rc.entries[movieID]
	return ok && e.Loading
}

// Load fetches the server-confirmed state for a movie into the cache.
// When the backend is unreachable the movie is cached as neutral with
// zero statistics and ErrBackendUnavailable is returned so the caller
// can warn about local-only mode.
func (rc *ReactionCache) Load(ctx context.Context, movieID int64) (Entry, error) {
	rc.setLoading(movieID, true)
	status, err := rc.client.Status(ctx, movieID)
	rc.mu.Lock()
	defer rc.mu.Unlock()
	e := rc.entry(movieID)
	e.Loading = false
	if err != nil {
		if errors.Is(err, ErrBackendUnavailable) {
			e.Reaction = model.ReactionNeutral
			e.Stats = model.MovieStats{}
			return *e, err
		}
		return *e, err
	}
	e.Reaction = status.IsLiked
	e.Stats = status.MovieStats
	return *e, nil
}

// Toggle advances the movie's reaction one step in the cycle.  The new
// state is applied locally before the server call; movie metadata, when
// given, is forwarded so the server can cache it.  The returned Entry is
// the cache content after reconciliation.
func (rc *ReactionCache) Toggle(ctx context.Context, movieID int64, movie *model.Movie) (Entry, error) {
	rc.mu.Lock()
	e := rc.entry(movieID)
	if e.Loading {
		result := *e
		rc.mu.Unlock()
		return result, ErrToggleInFlight
	}
	previous := e.Reaction
	next := previous.Next()
	e.Reaction = next
	e.Loading = true
	rc.mu.Unlock()

	err := rc.persist(ctx, movieID, next, movie)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	e = rc.entry(movieID)
	e.Loading = false
	if err != nil {
		if errors.Is(err, ErrBackendUnavailable) {
			// local-only mode: keep the optimistic state unpersisted
			return *e, err
		}
		e.Reaction = previous
		return *e, err
	}

	// refresh statistics from a fresh status read
	if status, serr := rc.statusUnlocked(ctx, movieID); serr == nil {
		e.Stats = status.MovieStats
	}
	return *e, nil
}

func (rc *ReactionCache) persist(ctx context.Context, movieID int64, next model.Reaction, movie *model.Movie) error {
	isLiked, present := next.Stored()
	if !present {
		_, err := rc.client.ClearReaction(ctx, movieID)
		return err
	}
	_, err := rc.client.RecordReaction(ctx, movieID, isLiked, movie)
	return err
}

// statusUnlocked performs the network read without holding the mutex
// longer than needed; the caller re-acquires before applying the result.
func (rc *ReactionCache) statusUnlocked(ctx context.Context, movieID int64) (StatusResult, error) {
	rc.mu.Unlock()
	defer rc.mu.Lock()
	return rc.client.Status(ctx, movieID)
}

func (rc *ReactionCache) setLoading(movieID int64, loading bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entry(movieID).Loading = loading
}

// entry returns the mutable cache slot for a movie, creating it if
// needed.  Callers must hold rc.mu.
func (rc *ReactionCache) entry(movieID int64) *Entry {
	e, ok := rc.entries[movieID]
	if !ok {
		e = &Entry{Reaction: model.ReactionNeutral}
		rc.entries[movieID] = e
	}
	return e
}
