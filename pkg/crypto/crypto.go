package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signer produces the request signature the marketplace gateways verify.
type Signer interface {
	Sign(payload string) string
	Verify(payload, signature string) bool
}

type signer struct {
	key []byte
}

// NewSigner builds an HMAC-SHA256 signer from a shared gateway key.
func NewSigner(key string) (Signer, error) {
	if key == "" {
		return nil, fmt.Errorf("signing key is required")
	}
	return &signer{key: []byte(key)}, nil
}

func (s *signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *signer) Verify(payload, signature string) bool {
	want := s.Sign(payload)
	return hmac.Equal([]byte(want), []byte(signature))
}
