// Package keygen produces the registry-level identifiers used across a
// provisioning request: fixed-length numeric random keys for subscriber,
// implicit-registered-set, and service-profile ids, and timestamp-seeded
// hex keys for private credentials.
package keygen

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Generator is the process-wide identifier source. Draws are serialized;
// concurrent requests may share one instance.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New returns a Generator seeded from host entropy and the current time.
func New() *Generator {
	var b [8]byte
	seed := time.Now().UnixNano()
	if _, err := crand.Read(b[:]); err == nil {
		seed ^= int64(binary.LittleEndian.Uint64(b[:]))
	}
	return NewSeeded(seed)
}

// NewSeeded returns a deterministic Generator for tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// RandomKey returns an n-character numeric key built from concatenated
// random integers, truncated to length and uppercased.
func (g *Generator) RandomKey(n int) string {
	if n <= 0 {
		return ""
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	for sb.Len() < n {
		fmt.Fprintf(&sb, "%d", g.rng.Int31())
	}
	return strings.ToUpper(sb.String()[:n])
}

// TimestampKey returns a hex key derived from the current millisecond
// timestamp, left-padded to 12 characters and doubled.
func (g *Generator) TimestampKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	hex := fmt.Sprintf("%x", g.now().UnixMilli())
	for len(hex) < 12 {
		hex = "0" + hex
	}
	return strings.ToUpper(hex + hex)
}
