package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter tracks a token bucket per client IP. Entries idle for
// longer than staleAfter are evicted on the next sweep.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	rps     rate.Limit
	burst   int
	stop    chan struct{}
	done    chan struct{}
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	staleAfter    = 10 * time.Minute
	sweepInterval = time.Minute
)

func newClientLimiter(rps float64, burst int) *clientLimiter {
	cl := &clientLimiter{
		clients: make(map[string]*clientEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cl.sweep()
	return cl
}

// RateLimit applies a per-client token bucket to the whole API. The
// limiter lives for the life of the process.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	cl := newClientLimiter(rps, burst)

	return func(c *gin.Context) {
		if !cl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mu.Lock()
	entry, ok := cl.clients[ip]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	cl.mu.Unlock()

	return entry.limiter.Allow()
}

func (cl *clientLimiter) sweep() {
	defer close(cl.done)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cl.evictStale()
		case <-cl.stop:
			return
		}
	}
}

func (cl *clientLimiter) evictStale() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	for ip, entry := range cl.clients {
		if time.Since(entry.lastSeen) > staleAfter {
			delete(cl.clients, ip)
		}
	}
}

// close terminates the sweep goroutine.
func (cl *clientLimiter) close() {
	close(cl.stop)
	<-cl.done
}
