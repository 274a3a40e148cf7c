// Package metrics tracks aggregate search activity under a
// homomorphic counter, so an operator can read a total match count
// across all searches without the server ever decrypting an
// individual search's result size (D2). It has no counterpart in
// spec.md's core scheme — it is an enrichment a server may attach.
package metrics

import (
	"fmt"
	"log"
	"math/big"
	"sync"

	paillier "github.com/roasbeef/go-go-gadget-paillier"

	"github.com/dsselab/libertas/dssecrypto"
)

// paillierKeyBits is the Paillier modulus size. 2048 bits matches the
// σ (Z&N) security parameter, DefaultSecurityParameter.SigmaBits;
// Libertas' own update-record key is 256 bits.
const paillierKeyBits = 2048

// MatchCounter accumulates per-search result counts under Paillier
// encryption, relying on its additive homomorphism: summing
// ciphertexts yields the ciphertext of the summed counts.
type MatchCounter struct {
	mu      sync.Mutex
	privKey *paillier.PrivateKey
	total   *big.Int // ciphertext
}

// NewMatchCounter generates a fresh Paillier keypair and an
// encrypted-zero running total.
func NewMatchCounter() (*MatchCounter, error) {
	privKey, err := paillier.GenerateKey(nil, paillierKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generating paillier keypair: %w", err)
	}
	zero, err := paillier.Encrypt(&privKey.PublicKey, big.NewInt(0).Bytes())
	if err != nil {
		return nil, fmt.Errorf("encrypting initial counter: %w", err)
	}
	return &MatchCounter{
		privKey: privKey,
		total:   new(big.Int).SetBytes(zero),
	}, nil
}

// Observe homomorphically adds n (a search's result-set size) into the
// running encrypted total.
func (c *MatchCounter) Observe(n int) error {
	if n < 0 {
		err := fmt.Errorf("negative match count %d: %w", n, dssecrypto.ErrInvalidInput)
		log.Println("error:", err)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	enc, err := paillier.Encrypt(&c.privKey.PublicKey, big.NewInt(int64(n)).Bytes())
	if err != nil {
		return fmt.Errorf("encrypting observed count: %w", err)
	}
	c.total = paillier.AddCipher(&c.privKey.PublicKey, c.total.Bytes(), enc)
	return nil
}

// Reveal decrypts the running total with the Paillier private key the
// counter was constructed with. The counter keeps that key itself, so
// whoever holds the MatchCounter can call both Observe and Reveal.
func (c *MatchCounter) Reveal() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	plain, err := paillier.Decrypt(c.privKey, c.total.Bytes())
	if err != nil {
		return 0, fmt.Errorf("decrypting match counter: %w", err)
	}
	return new(big.Int).SetBytes(plain).Int64(), nil
}
