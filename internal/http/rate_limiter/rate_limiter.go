package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry tracks one token-bucket limiter per visitor IP. It is injected
// where needed instead of living as package state.
type Registry struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

func NewRegistry(rps float64, burst int) *Registry {
	return &Registry{
		visitors: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (g *Registry) Visitor(ip string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, exists := g.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(g.rps, g.burst)
		g.visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// StartCleanupLoop evicts visitors idle for more than five minutes. Blocks;
// run it in a goroutine.
func (g *Registry) StartCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		g.mu.Lock()
		for ip, v := range g.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(g.visitors, ip)
			}
		}
		g.mu.Unlock()
	}
}
