// Package zn implements the Zhao-Nishide wildcard-SSE scheme (C4, C5):
// a static-add SSE whose per-keyword Bloom filters support single- (`_`)
// and multi-character (`*`) wildcard search. It is the σ that Libertas
// wraps.
//
// The client holds the HMAC keys generated at Setup in the same way the
// teacher's Session type holds its negotiated symmetric keys as plain
// struct fields, read-only after initialization.
package zn

import (
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"math/big"

	"github.com/dsselab/libertas/bloom"
	"github.com/dsselab/libertas/dssecrypto"
	"github.com/dsselab/libertas/features"
)

// AddToken is the wire shape of an add_token: a document identifier, its
// masked Bloom filter, and the filter's id (spec.md §3, "Index entry").
type AddToken struct {
	Ind []byte
	BF  *bloom.BitArray
	BID []byte
}

// SrchToken is the wire shape of a srch_token: aligned arrays of Bloom
// filter positions and their hashed counterparts (spec.md §4.4).
type SrchToken struct {
	Positions       []int
	HashedPositions [][]byte
}

// Client is the Z&N client (C4).
type Client struct {
	params Params
	kh     [][]byte
	kg     []byte
}

// NewClient constructs a Z&N client for the given Bloom filter
// parameters. Setup must still be called before AddToken/SrchToken.
func NewClient(params Params) *Client {
	return &Client{params: params}
}

// Setup samples r independent HMAC keys of securityParameter/8 bytes for
// k_h, and one of the same size for k_g (spec.md §4.4, §6.4).
func (c *Client) Setup(securityParameter int) error {
	if securityParameter <= 0 || securityParameter%8 != 0 {
		err := fmt.Errorf("security parameter %d must be a positive multiple of 8: %w", securityParameter, dssecrypto.ErrInvalidInput)
		log.Println("error:", err)
		return err
	}
	keySize := securityParameter / 8

	kh := make([][]byte, c.params.HashKeyCount)
	for i := range kh {
		k := make([]byte, keySize)
		if _, err := io.ReadFull(rand.Reader, k); err != nil {
			err = fmt.Errorf("generating k_h[%d]: %w", i, err)
			log.Println("error:", err)
			return err
		}
		kh[i] = k
	}
	kg := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, kg); err != nil {
		err = fmt.Errorf("generating k_g: %w", err)
		log.Println("error:", err)
		return err
	}

	c.kh, c.kg = kh, kg
	return nil
}

// AddToken builds an add token for (ind, w): a fresh Bloom filter
// carrying S_K(w)'s features, masked per-position with a pad derived
// from b_id (spec.md §4.4). ind is an opaque byte identifier — callers
// that want a plain integer document id can use IntIdent to encode it
// the way the spec's "str(ind)+w" formula assumes.
func (c *Client) AddToken(ind []byte, w string) (AddToken, error) {
	if c.kg == nil {
		err := fmt.Errorf("add_token called before setup: %w", dssecrypto.ErrStateViolation)
		log.Println("error:", err)
		return AddToken{}, err
	}

	bidInput := make([]byte, 0, len(ind)+len(w))
	bidInput = append(bidInput, ind...)
	bidInput = append(bidInput, []byte(w)...)
	bid := dssecrypto.KeyedHash(c.kg, bidInput)

	bf := bloom.New(c.params.BloomBits)
	for _, e := range features.Keyword(w) {
		for _, k := range c.kh {
			bf.Set(c.position(k, e))
		}
	}

	for p := 0; p < c.params.BloomBits; p++ {
		h := dssecrypto.KeyedHash(bid, dssecrypto.HashInt(c.kg, p))
		bf.XorAt(p, dssecrypto.LSB(h) == 1)
	}

	return AddToken{Ind: ind, BF: bf, BID: bid}, nil
}

// SrchToken builds a search token for query q: one (position,
// hashed-position) pair per element of S_T(q) per hash key, aligned by
// index (spec.md §4.4).
func (c *Client) SrchToken(q string) (SrchToken, error) {
	if c.kg == nil {
		err := fmt.Errorf("srch_token called before setup: %w", dssecrypto.ErrStateViolation)
		log.Println("error:", err)
		return SrchToken{}, err
	}

	var positions []int
	for _, e := range features.Query(q) {
		for _, k := range c.kh {
			positions = append(positions, c.position(k, e))
		}
	}

	hashed := make([][]byte, len(positions))
	for i, pos := range positions {
		hashed[i] = dssecrypto.HashInt(c.kg, pos)
	}

	return SrchToken{Positions: positions, HashedPositions: hashed}, nil
}

// position reduces HMAC(k, e) modulo the Bloom filter size.
func (c *Client) position(k []byte, e string) int {
	m := big.NewInt(int64(c.params.BloomBits))
	h := dssecrypto.HashStringToInt(k, e)
	return int(new(big.Int).Mod(h, m).Int64())
}

// IntIdent encodes a plain integer document identifier as the decimal
// ASCII bytes the spec's "str(ind)" concatenation assumes, for callers
// using Z&N directly rather than through Libertas.
func IntIdent(n int) []byte {
	return []byte(fmt.Sprintf("%d", n))
}

// ParseIntIdent reverses IntIdent.
func ParseIntIdent(b []byte) (int, error) {
	var n int
	if _, err := fmt.Sscanf(string(b), "%d", &n); err != nil {
		return 0, fmt.Errorf("parsing document identifier %q: %w", b, err)
	}
	return n, nil
}
