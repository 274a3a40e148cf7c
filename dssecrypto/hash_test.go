package dssecrypto

import (
	"bytes"
	"testing"
)

func TestKeyedHashDeterministic(t *testing.T) {
	key := []byte("a-test-key")
	a := HashString(key, "cat")
	b := HashString(key, "cat")
	if !bytes.Equal(a, b) {
		t.Errorf("HashString is not deterministic for identical inputs")
	}
}

func TestKeyedHashKeySensitive(t *testing.T) {
	a := HashString([]byte("key-one"), "cat")
	b := HashString([]byte("key-two"), "cat")
	if bytes.Equal(a, b) {
		t.Errorf("HashString must differ across keys")
	}
}

func TestHashIntMatchesDecimalString(t *testing.T) {
	key := []byte("k")
	if !bytes.Equal(HashInt(key, 42), HashString(key, "42")) {
		t.Errorf("HashInt(42) must equal HashString(\"42\")")
	}
}

func TestLSB(t *testing.T) {
	if LSB([]byte{0x02}) != 0 {
		t.Errorf("LSB(0x02) = 1, want 0")
	}
	if LSB([]byte{0x03}) != 1 {
		t.Errorf("LSB(0x03) = 0, want 1")
	}
	if LSB(nil) != 0 {
		t.Errorf("LSB(nil) must default to 0")
	}
}
