// Package libertas implements the Libertas and Libertas+ backward-
// private DSSE overlays (C7-C9): a thin layer over any wildcard-SSE σ
// that reduces deletion to encrypted update records carried through
// σ's own add_token path, so σ itself never sees plaintext document
// identifiers or op tags.
//
// The client holds its update-record key and sequence counter as
// plain struct fields behind a single mutex, the same guarded-registry
// shape the teacher's SessionManager uses for its own per-session key
// material (session_manager.go).
package libertas

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/dsselab/libertas/dssecrypto"
	"github.com/dsselab/libertas/sigma"
)

// SecurityParameter holds Libertas's and σ's independently configurable
// key sizes, in bits (spec.md §4.7, "setup((lib_sec, sigma_sec))").
// Libertas's own AEAD key (k_L) is sized from LibertasBits; σ's Setup
// receives SigmaBits untouched.
type SecurityParameter struct {
	LibertasBits int
	SigmaBits    int
}

// DefaultSecurityParameter is spec.md §4.7's default (lib_sec,
// sigma_sec) = (256, 2048).
var DefaultSecurityParameter = SecurityParameter{LibertasBits: 256, SigmaBits: 2048}

// Client wraps a σ client, translating add_token/del_token/dec_search
// calls into σ's own Setup/AddToken/SrchToken vocabulary (spec.md
// §4.7). AddToken and SrchToken are the wire types σ uses for its own
// tokens.
type Client[AddToken any, SrchToken any] struct {
	sigma sigma.Client[AddToken, SrchToken]

	mu        sync.Mutex
	updateKey []byte
	seq       uint64
}

// NewClient wraps an already-constructed σ client. Setup must still be
// called before any token method.
func NewClient[AddToken any, SrchToken any](s sigma.Client[AddToken, SrchToken]) *Client[AddToken, SrchToken] {
	return &Client[AddToken, SrchToken]{sigma: s}
}

// Setup initializes σ with sp.SigmaBits and samples a fresh k_L update-
// record key of sp.LibertasBits bits (spec.md §4.7), resetting the
// sequence counter to zero.
func (c *Client[AddToken, SrchToken]) Setup(sp SecurityParameter) error {
	if err := c.sigma.Setup(sp.SigmaBits); err != nil {
		err = fmt.Errorf("setting up wrapped sigma: %w", err)
		log.Println("error:", err)
		return err
	}
	key, err := dssecrypto.NewUpdateKey(sp.LibertasBits)
	if err != nil {
		log.Println("error:", err)
		return err
	}

	c.mu.Lock()
	c.updateKey = key
	c.seq = 0
	c.mu.Unlock()
	return nil
}

// SrchToken passes q straight through to σ: search tokens are never
// wrapped, since the server must still evaluate them against σ's own
// index (spec.md §4.7).
func (c *Client[AddToken, SrchToken]) SrchToken(q string) (SrchToken, error) {
	return c.sigma.SrchToken(q)
}

// AddToken records an add of (ind, w) as a fresh encrypted update
// record and asks σ to index it under w, using the record's ciphertext
// as σ's opaque document identifier (spec.md §6.1, "update records
// carried inside σ's document identifier slot").
func (c *Client[AddToken, SrchToken]) AddToken(ind int, w string) (AddToken, error) {
	return c.updateToken(dssecrypto.OpAdd, ind, w)
}

// DelToken records a delete of (ind, w) the same way, tagged OpDel
// instead of appending a new plaintext op (spec.md §9, DEL-as-ADD
// resolution).
func (c *Client[AddToken, SrchToken]) DelToken(ind int, w string) (AddToken, error) {
	return c.updateToken(dssecrypto.OpDel, ind, w)
}

func (c *Client[AddToken, SrchToken]) updateToken(op dssecrypto.Op, ind int, w string) (AddToken, error) {
	var zero AddToken
	c.mu.Lock()
	if c.updateKey == nil {
		c.mu.Unlock()
		err := fmt.Errorf("add_token/del_token called before setup: %w", dssecrypto.ErrStateViolation)
		log.Println("error:", err)
		return zero, err
	}
	t := c.seq
	c.seq++
	key := c.updateKey
	c.mu.Unlock()

	blob, err := dssecrypto.EncryptUpdate(key, dssecrypto.Update{T: t, Op: op, Ind: ind, W: w})
	if err != nil {
		return zero, err
	}
	return c.sigma.AddToken(blob, w)
}

// indKeyword identifies one (ind, w) pair. Reconciliation buckets by
// this pair, not by ind alone: ADD/DEL only ever race against an
// update for the *same* keyword (spec.md §4.10, §9 design note "bucket
// by plaintext w only"), so a document added under one keyword and
// deleted under another must keep its surviving keyword's association
// live.
type indKeyword struct {
	ind int
	w   string
}

// DecryptResults decrypts opaque σ search results and reconciles them
// into plaintext document identifiers, per spec.md §4.7 and §4.10: the
// update record with the highest sequence number per (ind, w) pair
// determines that pair's membership, and a document is live in the
// result iff its last op is ADD under *some* keyword the query
// matched (Property 5, §8).
func (c *Client[AddToken, SrchToken]) DecryptResults(blobs [][]byte) ([]int, error) {
	latest, err := c.reconcile(blobs)
	if err != nil {
		return nil, err
	}

	live := make(map[int]bool)
	for key, u := range latest {
		if u.Op == dssecrypto.OpAdd {
			live[key.ind] = true
		}
	}
	out := make([]int, 0, len(live))
	for ind := range live {
		out = append(out, ind)
	}
	sort.Ints(out)
	return out, nil
}

// CleanupPlan is what Libertas+'s dec_search produces in addition to
// the matched result set: fresh add tokens for every document that is
// still present, and the stale blobs those tokens supersede (spec.md
// §4.8).
type CleanupPlan[AddToken any] struct {
	Matched []int
	ReAdd   []AddToken
	Stale   [][]byte
}

// DecryptResultsPlus is Libertas+'s dec_search (spec.md §4.8): it
// reconciles per (ind, w) pair the same way DecryptResults does, but
// additionally re-encrypts every surviving (ind, w) association under
// a fresh sequence number and marks every decrypted blob for removal,
// so the server can collapse each keyword's history down to one live
// record per document. A document with two differently-statused
// keywords (one still live, one deleted) keeps the live one re-added
// and still appears in Matched; only the deleted association's history
// is actually dropped.
func (c *Client[AddToken, SrchToken]) DecryptResultsPlus(blobs [][]byte) (CleanupPlan[AddToken], error) {
	type decoded struct {
		blob []byte
		u    dssecrypto.Update
	}

	byKey := make(map[indKeyword][]decoded)
	for _, blob := range blobs {
		u, err := dssecrypto.DecryptUpdate(c.currentKey(), blob)
		if err != nil {
			log.Println("error: decrypting update record during clean-up:", err)
			return CleanupPlan[AddToken]{}, err
		}
		key := indKeyword{ind: u.Ind, w: u.W}
		byKey[key] = append(byKey[key], decoded{blob: blob, u: u})
	}

	var plan CleanupPlan[AddToken]
	matched := make(map[int]bool)
	for key, ds := range byKey {
		best := ds[0]
		for _, d := range ds[1:] {
			if d.u.T > best.u.T {
				best = d
			}
		}
		for _, d := range ds {
			plan.Stale = append(plan.Stale, d.blob)
		}
		if best.u.Op != dssecrypto.OpAdd {
			continue
		}
		tok, err := c.updateToken(dssecrypto.OpAdd, key.ind, key.w)
		if err != nil {
			return CleanupPlan[AddToken]{}, fmt.Errorf("re-adding %d/%q: %w", key.ind, key.w, err)
		}
		matched[key.ind] = true
		plan.ReAdd = append(plan.ReAdd, tok)
	}
	for ind := range matched {
		plan.Matched = append(plan.Matched, ind)
	}
	sort.Ints(plan.Matched)
	return plan, nil
}

func (c *Client[AddToken, SrchToken]) reconcile(blobs [][]byte) (map[indKeyword]dssecrypto.Update, error) {
	key := c.currentKey()
	latest := make(map[indKeyword]dssecrypto.Update)
	for _, blob := range blobs {
		u, err := dssecrypto.DecryptUpdate(key, blob)
		if err != nil {
			log.Println("error: decrypting update record:", err)
			return nil, err
		}
		k := indKeyword{ind: u.Ind, w: u.W}
		if cur, ok := latest[k]; !ok || u.T > cur.T {
			latest[k] = u
		}
	}
	return latest, nil
}

func (c *Client[AddToken, SrchToken]) currentKey() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateKey
}
