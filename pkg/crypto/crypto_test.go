package crypto

import (
	"testing"
)

func TestSigner(t *testing.T) {
	s, err := NewSigner("gateway-shared-key")
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	payload := "GET/api/ebay/search?q=usb+hub&page=1&limit=12"

	sig := s.Sign(payload)
	if sig == "" {
		t.Fatal("Signature should not be empty")
	}
	if sig == payload {
		t.Fatal("Signature should differ from the payload")
	}

	// signing is deterministic for the same key and payload
	if again := s.Sign(payload); again != sig {
		t.Fatalf("Signature not stable. First: %s, Second: %s", sig, again)
	}

	if !s.Verify(payload, sig) {
		t.Fatal("Verify should accept a signature it produced")
	}
	if s.Verify(payload+"x", sig) {
		t.Fatal("Verify should reject a tampered payload")
	}
	if s.Verify(payload, "deadbeef") {
		t.Fatal("Verify should reject a forged signature")
	}
}

func TestSignerDifferentKeys(t *testing.T) {
	a, err := NewSigner("key-a")
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	b, err := NewSigner("key-b")
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}

	payload := "GET/api/aliexpress/search?q=case"
	if a.Sign(payload) == b.Sign(payload) {
		t.Fatal("Different keys should produce different signatures")
	}
}

func TestSignerEmptyKey(t *testing.T) {
	if _, err := NewSigner(""); err == nil {
		t.Fatal("Expected error for empty key, but got none")
	}
}
