package dssecrypto

import (
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := NewUpdateKey(256)
	if err != nil {
		t.Fatalf("NewUpdateKey: %v", err)
	}

	want := Update{T: 7, Op: OpAdd, Ind: 42, W: "cat"}
	blob, err := EncryptUpdate(key, want)
	if err != nil {
		t.Fatalf("EncryptUpdate: %v", err)
	}

	got, err := DecryptUpdate(key, blob)
	if err != nil {
		t.Fatalf("DecryptUpdate: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	key, _ := NewUpdateKey(256)
	blob, err := EncryptUpdate(key, Update{T: 1, Op: OpDel, Ind: 1, W: "dog"})
	if err != nil {
		t.Fatalf("EncryptUpdate: %v", err)
	}
	blob[len(blob)-1] ^= 0xFF

	if _, err := DecryptUpdate(key, blob); !errors.Is(err, ErrIntegrityFailure) {
		t.Errorf("DecryptUpdate(tampered) error = %v, want ErrIntegrityFailure", err)
	}
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	key1, _ := NewUpdateKey(256)
	key2, _ := NewUpdateKey(256)
	blob, _ := EncryptUpdate(key1, Update{T: 1, Op: OpAdd, Ind: 2, W: "sat"})

	if _, err := DecryptUpdate(key2, blob); !errors.Is(err, ErrIntegrityFailure) {
		t.Errorf("DecryptUpdate(wrong key) error = %v, want ErrIntegrityFailure", err)
	}
}

func TestEncryptRejectsReservedComma(t *testing.T) {
	key, _ := NewUpdateKey(256)
	if _, err := EncryptUpdate(key, Update{T: 0, Op: OpAdd, Ind: 0, W: "c,t"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("EncryptUpdate(keyword with comma) error = %v, want ErrInvalidInput", err)
	}
}

func TestEncryptRejectsNegativeInd(t *testing.T) {
	key, _ := NewUpdateKey(256)
	if _, err := EncryptUpdate(key, Update{T: 0, Op: OpAdd, Ind: -1, W: "cat"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("EncryptUpdate(negative ind) error = %v, want ErrInvalidInput", err)
	}
}

func TestNewUpdateKeyRejectsUnsupportedBitLength(t *testing.T) {
	if _, err := NewUpdateKey(100); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewUpdateKey(100) error = %v, want ErrInvalidInput", err)
	}
}
