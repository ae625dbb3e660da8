// Package pairing maps short numeric codes to project ids so a second
// participant can join a live editing view. The mapping lives only in
// process memory and is lost on restart.
package pairing

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const codeSpace = 1000000

// DefaultTTL bounds how long a code resolves. Entries are evicted lazily on
// access rather than by a background sweep.
const DefaultTTL = time.Hour

type Registry interface {
	Create(projectID string) (string, error)
	Resolve(code string) (string, bool)
}

type entry struct {
	projectID string
	expiresAt time.Time
}

type registry struct {
	mu    sync.Mutex
	codes map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewRegistry(ttl time.Duration) Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &registry{
		codes: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create issues a 6-digit code for the project. A random collision with a
// live code simply overwrites it; the 10^6 code space makes that acceptable
// for a casual pairing feature.
func (r *registry) Create(projectID string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpired()
	r.codes[code] = entry{projectID: projectID, expiresAt: r.now().Add(r.ttl)}

	return code, nil
}

func (r *registry) Resolve(code string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.codes[code]
	if !ok {
		return "", false
	}
	if r.now().After(e.expiresAt) {
		delete(r.codes, code)
		return "", false
	}

	return e.projectID, true
}

func (r *registry) evictExpired() {
	now := r.now()
	for code, e := range r.codes {
		if now.After(e.expiresAt) {
			delete(r.codes, code)
		}
	}
}
