package dssecrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// Op is the update-record operation tag (C6 / spec.md §3, §6.2).
type Op int

const (
	// OpAdd marks a record that adds a document-keyword pair.
	OpAdd Op = 1
	// OpDel marks a record that removes a document-keyword pair.
	OpDel Op = 2
)

// Update is a decrypted (t, op, ind, w) record (spec.md §3).
type Update struct {
	T   uint64
	Op  Op
	Ind int
	W   string
}

// Sentinel error classes, spec.md §7.
var (
	ErrInvalidInput     = errors.New("dsse: invalid input")
	ErrIntegrityFailure = errors.New("dsse: integrity failure")
	ErrStateViolation   = errors.New("dsse: state violation")
	ErrOutOfRange       = errors.New("dsse: out of range")
)

// nonceSize is the standard AES-GCM nonce length.
const nonceSize = 12

// NewUpdateKey samples a fresh AEAD key of libSecBits/8 bytes for
// Libertas's update records (spec.md §6.4's `k_L` of `lib_sec/8`
// bytes, independent of σ's own keys). AES-GCM only accepts
// AES-128/192/256 keys, so libSecBits must be 128, 192, or 256.
func NewUpdateKey(libSecBits int) ([]byte, error) {
	if libSecBits != 128 && libSecBits != 192 && libSecBits != 256 {
		return nil, fmt.Errorf("libertas security parameter %d must be 128, 192, or 256: %w", libSecBits, ErrInvalidInput)
	}
	key := make([]byte, libSecBits/8)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generating update key: %w", err)
	}
	return key, nil
}

// EncryptUpdate serializes (t, op, ind, w) as "t,op,ind,w" and seals it
// under k with a fresh random nonce, per spec.md §6.2. The returned blob
// is [nonce || ciphertext || tag], the layout the teacher's own AEAD
// helper (other_examples RuachTech-rep crypto.go) documents.
func EncryptUpdate(k []byte, u Update) ([]byte, error) {
	if strings.Contains(u.W, ",") {
		return nil, fmt.Errorf("keyword %q contains reserved comma: %w", u.W, ErrInvalidInput)
	}
	if u.Ind < 0 {
		return nil, fmt.Errorf("negative document identifier %d: %w", u.Ind, ErrInvalidInput)
	}

	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, fmt.Errorf("building AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("building AES-GCM: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	plaintext := []byte(fmt.Sprintf("%d,%d,%d,%s", u.T, int(u.Op), u.Ind, u.W))
	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, len(nonce)+len(sealed))
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)
	return blob, nil
}

// DecryptUpdate reverses EncryptUpdate. A tag mismatch is a fatal
// IntegrityFailure, per spec.md §7.
func DecryptUpdate(k []byte, blob []byte) (Update, error) {
	block, err := aes.NewCipher(k)
	if err != nil {
		return Update{}, fmt.Errorf("building AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return Update{}, fmt.Errorf("building AES-GCM: %w", err)
	}
	if len(blob) < nonceSize {
		err := fmt.Errorf("update blob too short: %w", ErrIntegrityFailure)
		log.Println("error:", err)
		return Update{}, err
	}
	nonce, sealed := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		err = fmt.Errorf("decrypting update record: %w", ErrIntegrityFailure)
		log.Println("error:", err)
		return Update{}, err
	}

	fields := strings.SplitN(string(plaintext), ",", 4)
	if len(fields) != 4 {
		return Update{}, fmt.Errorf("malformed update record: %w", ErrIntegrityFailure)
	}
	t, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Update{}, fmt.Errorf("malformed timestamp: %w", ErrIntegrityFailure)
	}
	opInt, err := strconv.Atoi(fields[1])
	if err != nil || (opInt != int(OpAdd) && opInt != int(OpDel)) {
		return Update{}, fmt.Errorf("malformed op: %w", ErrIntegrityFailure)
	}
	ind, err := strconv.Atoi(fields[2])
	if err != nil {
		return Update{}, fmt.Errorf("malformed document identifier: %w", ErrIntegrityFailure)
	}

	return Update{T: t, Op: Op(opInt), Ind: ind, W: fields[3]}, nil
}
