package libertas

import (
	"fmt"
	"log"

	"github.com/dsselab/libertas/dssecrypto"
	"github.com/dsselab/libertas/sigma"
)

// Server wraps a σ server. It never decrypts or inspects the update
// records σ hands it back from Search; reconciliation is entirely the
// client's job (spec.md §4.7, "server ignorance of plaintext").
type Server[AddToken any, SrchToken any] struct {
	sigma sigma.Server[AddToken, SrchToken]
}

// NewServer wraps an already-constructed σ server.
func NewServer[AddToken any, SrchToken any](s sigma.Server[AddToken, SrchToken]) *Server[AddToken, SrchToken] {
	return &Server[AddToken, SrchToken]{sigma: s}
}

// BuildIndex initializes the wrapped σ's index.
func (s *Server[AddToken, SrchToken]) BuildIndex() {
	s.sigma.BuildIndex()
}

// Add forwards an add (or del) token straight to σ; σ only ever sees
// an opaque, encrypted document identifier (spec.md §4.7).
func (s *Server[AddToken, SrchToken]) Add(tok AddToken) {
	s.sigma.Add(tok)
}

// Search forwards a search token to σ and returns the raw, still-
// encrypted update-record blobs it matches; decryption and
// reconciliation happen client-side in DecryptResults.
func (s *Server[AddToken, SrchToken]) Search(tok SrchToken) ([][]byte, error) {
	return s.sigma.Search(tok)
}

// ApplyCleanup realizes a CleanupPlan produced by DecryptResultsPlus
// (spec.md §4.8, Libertas+'s clean-up search): it deletes every stale
// blob the plan names and inserts the plan's fresh re-add tokens.
// Requires a σ server that also implements sigma.Remover; a plain Z&N
// server does.
func (s *Server[AddToken, SrchToken]) ApplyCleanup(stale [][]byte, reAdd []AddToken) error {
	remover, ok := any(s.sigma).(sigma.Remover)
	if !ok {
		err := fmt.Errorf("wrapped sigma server cannot remove entries: %w", dssecrypto.ErrStateViolation)
		log.Println("error:", err)
		return err
	}
	remover.Remove(stale)
	for _, tok := range reAdd {
		s.sigma.Add(tok)
	}
	return nil
}
