// Package accumulator maintains a compact, publicly verifiable
// commitment over the set of index entries a Z&N server has accepted
// (D1). It has no counterpart in spec.md's core C1-C9 scheme — it is
// an enrichment a server may attach to detect a dropped add without
// trusting the server's own bookkeeping. The sum is commutative, so the
// order of adds does not change it, and removing an index entry does
// not change it either.
//
// The commitment is additive over Ristretto255: each b_id is hashed
// down to a scalar and folded into a running point sum. Anyone holding
// two snapshots and the scalar for a claimed entry can check inclusion
// by subtraction, without ever learning the other entries' scalars.
package accumulator

import (
	"sync"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/blake2b"
)

// Accumulator folds b_id values into a running Ristretto255 point sum.
// Add must not change ordinary Add/Search semantics in the packages
// that embed it: every field here is additive to the side, never
// consulted by a search predicate.
type Accumulator struct {
	mu    sync.Mutex
	sum   ristretto.Point
	count int
}

// New returns an accumulator at the group identity (zero entries).
func New() *Accumulator {
	a := &Accumulator{}
	a.sum.SetZero()
	return a
}

// Add folds bID into the running sum via s*B, where s is digest64(bID)
// reduced to a scalar and B is the Ristretto255 base point.
func (a *Accumulator) Add(bID []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var s ristretto.Scalar
	s.SetReduced(digest64(bID))

	var p ristretto.Point
	p.ScalarMultBase(&s)

	a.sum.Add(&a.sum, &p)
	a.count++
}

// Count reports how many entries have been folded in.
func (a *Accumulator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// Snapshot returns the compressed encoding of the current running sum,
// a 32-byte commitment to every b_id added so far.
func (a *Accumulator) Snapshot() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.sum.Bytes()
	return b
}

// digest64 derives the 64-byte wide-reduction input Scalar.SetReduced
// expects from an arbitrary-length b_id, using Blake2b-512 rather than
// double SHA-256: it is already the hash the teacher's other crypto
// helpers (utils.Generichash) reach for when a wide, keyless digest is
// needed.
func digest64(bID []byte) *[64]byte {
	sum := blake2b.Sum512(bID)
	return &sum
}
