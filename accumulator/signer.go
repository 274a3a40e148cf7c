package accumulator

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"

	"github.com/dsselab/libertas/dssecrypto"
)

// Signer attests to accumulator snapshots with ECDSA over P-256,
// adapted from the teacher's TagSigningManager: same ASN.1 signature
// over a SHA-256 digest, but signing a running commitment snapshot
// instead of a TLS record tag.
type Signer struct {
	key *ecdsa.PrivateKey
}

// NewSigner generates a fresh P-256 signing key.
func NewSigner() (*Signer, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating accumulator signing key: %w", err)
	}
	return &Signer{key: key}, nil
}

// SignerFromPEM loads a SEC1 EC private key the way the
// teacher's NewTagSigningManager loads its tag-signing key from disk.
func SignerFromPEM(pemBytes []byte) (*Signer, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("decoding signing key PEM: %w", dssecrypto.ErrInvalidInput)
	}
	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing EC private key: %w", err)
	}
	log.Printf("loaded accumulator signing key (curve %s)", key.Params().Name)
	return &Signer{key: key}, nil
}

// Sign returns an ASN.1-encoded ECDSA-SHA256 signature over snapshot.
func (s *Signer) Sign(snapshot []byte) ([]byte, error) {
	digest := sha256.Sum256(snapshot)
	sig, err := ecdsa.SignASN1(rand.Reader, s.key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("signing accumulator snapshot: %w", err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature over snapshot under
// this signer's public key.
func (s *Signer) Verify(snapshot, sig []byte) bool {
	digest := sha256.Sum256(snapshot)
	return ecdsa.VerifyASN1(&s.key.PublicKey, digest[:], sig)
}

// PublicKey exposes the signer's public half, for out-of-band
// distribution to auditors.
func (s *Signer) PublicKey() *ecdsa.PublicKey {
	return &s.key.PublicKey
}
