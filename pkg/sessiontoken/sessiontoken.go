// Package sessiontoken generates the per-submission session token sent to the
// destination form: a random UUID v4 string.
//
// The randomness capability is injected once at startup (see SelectSource).
// Generation itself never fails: when the injected source errors, the
// generator degrades to a pseudo-random source and still returns a
// well-formed UUID v4.
package sessiontoken

import (
	"bytes"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// tokenBytes is the number of random bytes behind one token.
const tokenBytes = 16

// Source returns n random bytes.
type Source func(n int) ([]byte, error)

// Tier names the quality of a randomness source.
type Tier string

const (
	TierStrong Tier = "crypto"
	TierPseudo Tier = "pseudo"
	TierGlobal Tier = "global"
)

// StrongSource reads from the operating system CSPRNG.
func StrongSource(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WeakSource returns a ChaCha8 stream seeded with seed. It is safe for
// concurrent use but not suitable for secrets.
func WeakSource(seed [32]byte) Source {
	var mu sync.Mutex
	r := mrand.NewChaCha8(seed)
	return func(n int) ([]byte, error) {
		b := make([]byte, n)
		mu.Lock()
		defer mu.Unlock()
		if _, err := r.Read(b); err != nil {
			return nil, err
		}
		return b, nil
	}
}

// TimeSeed derives a ChaCha8 seed from the wall clock and the runtime's
// auto-seeded generator.
func TimeSeed() [32]byte {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[0:], uint64(time.Now().UnixNano()))
	binary.LittleEndian.PutUint64(seed[8:], mrand.Uint64())
	binary.LittleEndian.PutUint64(seed[16:], mrand.Uint64())
	binary.LittleEndian.PutUint64(seed[24:], mrand.Uint64())
	return seed
}

// SelectSource probes the strong source once and returns it when it works,
// or a time-seeded pseudo-random source otherwise. A nil probe means
// StrongSource.
func SelectSource(probe Source) (Source, Tier) {
	if probe == nil {
		probe = StrongSource
	}
	if b, err := probe(tokenBytes); err == nil && len(b) == tokenBytes {
		return probe, TierStrong
	}
	return WeakSource(TimeSeed()), TierPseudo
}

// Generator produces fresh session tokens. Callers must request a new token
// per submission attempt; tokens are never cached.
type Generator struct {
	source    Source
	fallback  Source
	onDegrade func(tier Tier, err error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithFallback replaces the pseudo-random source used when the primary
// source fails.
func WithFallback(s Source) Option {
	return func(g *Generator) {
		g.fallback = s
	}
}

// WithDegradeHook is called each time generation falls back to a weaker tier.
func WithDegradeHook(fn func(tier Tier, err error)) Option {
	return func(g *Generator) {
		g.onDegrade = fn
	}
}

// NewGenerator builds a generator around source. A nil source means
// StrongSource.
func NewGenerator(source Source, opts ...Option) *Generator {
	if source == nil {
		source = StrongSource
	}
	g := &Generator{source: source}
	for _, opt := range opts {
		opt(g)
	}
	if g.fallback == nil {
		g.fallback = WeakSource(TimeSeed())
	}
	return g
}

// Generate returns a new UUID v4 string such as
// "3f2b8c1e-9d4a-4c6b-a1e2-7f0d5b9c8e21".
func (g *Generator) Generate() string {
	b, err := read(g.source)
	if err != nil {
		g.degraded(TierPseudo, err)
		if b, err = read(g.fallback); err != nil {
			g.degraded(TierGlobal, err)
			b = globalBytes()
		}
	}
	// NewRandomFromReader sets the version and variant bits.
	u, err := uuid.NewRandomFromReader(bytes.NewReader(b))
	if err != nil {
		u, _ = uuid.NewRandomFromReader(bytes.NewReader(globalBytes()))
	}
	return u.String()
}

func (g *Generator) degraded(tier Tier, err error) {
	if g.onDegrade != nil {
		g.onDegrade(tier, err)
	}
}

func read(s Source) ([]byte, error) {
	b, err := s(tokenBytes)
	if err != nil {
		return nil, err
	}
	if len(b) < tokenBytes {
		return nil, fmt.Errorf("short read: got %d of %d bytes", len(b), tokenBytes)
	}
	return b[:tokenBytes], nil
}

// globalBytes uses the runtime's auto-seeded generator, which is always
// available.
func globalBytes() []byte {
	b := make([]byte, tokenBytes)
	binary.LittleEndian.PutUint64(b[0:], mrand.Uint64())
	binary.LittleEndian.PutUint64(b[8:], mrand.Uint64())
	return b
}
