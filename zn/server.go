package zn

import (
	"fmt"
	"log"
	"sync"

	"github.com/dsselab/libertas/accumulator"
	"github.com/dsselab/libertas/dssecrypto"
	"github.com/dsselab/libertas/metrics"
)

// Server is the Z&N server (C5): an in-memory list of index entries
// plus a filtered scan. The embedded mutex guards the
// index the way the teacher's SessionManager guards its session map —
// Add/Search are safe to call concurrently even though the baseline
// request/response model (spec.md §5) is single-threaded.
type Server struct {
	mu    sync.Mutex
	index []AddToken
	built bool

	// Accum, when non-nil, tracks an additive commitment over every
	// b_id added so far (D1). It is purely observational: disabling it
	// must not change Add/Search semantics (SPEC_FULL.md §9).
	Accum *accumulator.Accumulator
	// Counter, when non-nil, accumulates result-set sizes across
	// searches (D2). Search hands each size to Counter.Observe in the
	// clear; only the running total is kept encrypted.
	Counter *metrics.MatchCounter
}

// NewServer constructs a Z&N server. BuildIndex must still be called.
func NewServer() *Server {
	return &Server{}
}

// BuildIndex initializes the (empty) index, per spec.md §6.1.
func (s *Server) BuildIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = nil
	s.built = true
}

// Add appends an add token to the index (spec.md §4.5). Z&N itself only
// appends; entries leave the index only through Remove, which
// Libertas+'s clean-up uses.
func (s *Server) Add(tok AddToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = append(s.index, tok)
	if s.Accum != nil {
		s.Accum.Add(tok.BID)
	}
}

// Search scans the index and returns every document identifier whose
// masked Bloom filter satisfies every (position, hashed-position) pair
// in the token (spec.md §4.5). An empty token matches everything: with
// zero positions the predicate is vacuously true for every entry.
func (s *Server) Search(tok SrchToken) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.built {
		err := fmt.Errorf("search called before build_index: %w", dssecrypto.ErrStateViolation)
		log.Println("error:", err)
		return nil, err
	}

	var results [][]byte
	seen := make(map[string]bool)
	for _, e := range s.index {
		if s.matches(e, tok) {
			key := string(e.Ind)
			if !seen[key] {
				seen[key] = true
				results = append(results, e.Ind)
			}
		}
	}

	if s.Counter != nil {
		if err := s.Counter.Observe(len(results)); err != nil {
			err = fmt.Errorf("recording match count: %w", err)
			log.Println("error:", err)
			return nil, err
		}
	}
	return results, nil
}

// Snapshot returns the current accumulator commitment, or nil if no
// accumulator is attached.
func (s *Server) Snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Accum == nil {
		return nil
	}
	return s.Accum.Snapshot()
}

// matches evaluates the per-entry predicate from spec.md §4.5: an
// entry matches only if every queried feature's *unmasked* Bloom bit
// is set. The masked bit stored in the filter is maskBit XOR
// featurePresent, so recovering featurePresent means the masked bit
// and the recomputed mask must differ, not agree.
func (s *Server) matches(e AddToken, tok SrchToken) bool {
	for i, pos := range tok.Positions {
		maskBit := dssecrypto.LSB(dssecrypto.KeyedHash(e.BID, tok.HashedPositions[i])) == 1
		if e.BF.Get(pos) == maskBit {
			return false
		}
	}
	return true
}

// Remove deletes every index entry whose document identifier is in
// ind, satisfying sigma.Remover for Libertas+'s clean-up search
// (spec.md §4.8). A plain Z&N server used standalone never calls this
// itself — static-add Z&N has no delete of its own (spec.md §3,
// "Lifecycle").
func (s *Server) Remove(ind [][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]bool, len(ind))
	for _, id := range ind {
		drop[string(id)] = true
	}
	kept := s.index[:0]
	for _, e := range s.index {
		if !drop[string(e.Ind)] {
			kept = append(kept, e)
		}
	}
	s.index = kept
}
