package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// GatingService answers the one question the rest of the marketplace may ask
// about verification: can this carrier transact. True iff the carrier's
// current application is approved. Load posting and bidding depend on this
// check and on nothing deeper - document detail stays private to the engine.
type GatingService struct {
	store storage.Store
	redis *redis.Client // optional; nil means local cache only
	ttl   time.Duration

	// mu also serializes cache fills against Invalidate. gen counts
	// invalidations per carrier: an answer computed from a status read that
	// predates the latest invalidation must not be written into the cache,
	// or an approval could be shadowed by the stale answer indefinitely.
	mu    sync.RWMutex
	local map[string]bool
	gen   map[string]uint64
}

// NewGatingService creates the gating query. redisClient may be nil when
// Redis is not configured; caching then stays in-process.
func NewGatingService(store storage.Store, redisClient *redis.Client, ttl time.Duration) *GatingService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &GatingService{
		store: store,
		redis: redisClient,
		ttl:   ttl,
		local: make(map[string]bool),
		gen:   make(map[string]uint64),
	}
}

func gateKey(carrierID string) string {
	return fmt.Sprintf("gate:carrier:%s", carrierID)
}

// CanTransact reports whether the carrier may post loads and bid. An unknown
// carrier or one with no application simply cannot transact; only storage
// failures surface as errors.
func (g *GatingService) CanTransact(carrierID string) (bool, error) {
	if allowed, ok := g.cached(carrierID); ok {
		return allowed, nil
	}

	gen := g.generation(carrierID)

	app, err := g.store.GetActiveApplication(carrierID)
	if err != nil {
		if models.IsKind(err, models.ErrKindNotFound) {
			g.cache(carrierID, false, gen)
			return false, nil
		}
		return false, err
	}

	allowed := app.Status == models.ApplicationStatusApproved
	g.cache(carrierID, allowed, gen)
	return allowed, nil
}

// Invalidate drops the cached answer for a carrier. The verification engine
// calls this synchronously inside every status transition, so a de-verified
// carrier can never transact off a stale cache entry.
func (g *GatingService) Invalidate(carrierID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.gen[carrierID]++
	delete(g.local, carrierID)

	if g.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := g.redis.Del(ctx, gateKey(carrierID)).Err(); err != nil {
			// Redis being down must not block the transition; the TTL caps
			// how long the stale entry can live.
			log.Printf("failed to invalidate gate cache for %s: %v", carrierID, err)
		}
	}
}

func (g *GatingService) cached(carrierID string) (bool, bool) {
	if g.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		val, err := g.redis.Get(ctx, gateKey(carrierID)).Result()
		if err == nil {
			return val == "1", true
		}
		if err != redis.Nil {
			log.Printf("gate cache read failed for %s: %v", carrierID, err)
		}
		return false, false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	allowed, ok := g.local[carrierID]
	return allowed, ok
}

func (g *GatingService) generation(carrierID string) uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.gen[carrierID]
}

// cache stores an answer only if no invalidation happened since the caller
// sampled gen. Holding mu across the redis write keeps Invalidate from
// slipping in between the generation check and the Set.
func (g *GatingService) cache(carrierID string, allowed bool, gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gen[carrierID] != gen {
		return
	}

	if g.redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		val := "0"
		if allowed {
			val = "1"
		}
		if err := g.redis.Set(ctx, gateKey(carrierID), val, g.ttl).Err(); err != nil {
			log.Printf("gate cache write failed for %s: %v", carrierID, err)
		}
		return
	}

	g.local[carrierID] = allowed
}
