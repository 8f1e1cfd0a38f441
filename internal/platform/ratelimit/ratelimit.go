// Package ratelimit implementa un limitador token bucket por clave (p. ej. IP del cliente).
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter mantiene un rate.Limiter independiente por clave.
// Las claves sin uso por más de idleTTL se descartan periódicamente.
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// New crea el limitador: rps solicitudes por segundo con ráfaga burst.
func New(rps float64, burst int, idleTTL time.Duration) *KeyedLimiter {
	kl := &KeyedLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if idleTTL > 0 {
		go kl.cleanupLoop()
	}
	return kl
}

// Allow no bloquea: indica si la solicitud de key puede pasar ahora.
func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	e, ok := kl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.entries[key] = e
	}
	e.lastSeen = kl.now()
	kl.mu.Unlock()

	return e.limiter.Allow()
}

// Len es el número de claves vivas (tests).
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// Prune descarta las claves inactivas.
func (kl *KeyedLimiter) Prune() {
	cutoff := kl.now().Add(-kl.idleTTL)

	kl.mu.Lock()
	defer kl.mu.Unlock()
	for k, e := range kl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(kl.entries, k)
		}
	}
}

// Stop detiene la limpieza periódica.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() {
		close(kl.done)
	})
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(kl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			kl.Prune()
		case <-kl.done:
			return
		}
	}
}
