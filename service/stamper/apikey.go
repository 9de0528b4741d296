package stamper

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/pandodao/passkey-wallet/core"
)

const (
	HeaderAPIKey  = "X-Stamp"
	SchemeP256Key = "SIGNATURE_SCHEME_TK_API_P256"
)

type apiKeyStamp struct {
	PublicKey string `json:"publicKey"`
	Scheme    string `json:"scheme"`
	Signature string `json:"signature"`
}

type APIKey struct {
	publicKey  string
	privateKey *ecdsa.PrivateKey
}

// NewAPIKey builds a stamper from a hex P-256 private key and its compressed
// hex public key. The pair must match.
func NewAPIKey(publicKey, privateKey string) (*APIKey, error) {
	d, err := hex.DecodeString(strings.TrimPrefix(privateKey, "0x"))
	if err != nil || len(d) == 0 {
		return nil, fmt.Errorf("invalid api private key")
	}

	curve := elliptic.P256()
	key := &ecdsa.PrivateKey{D: new(big.Int).SetBytes(d)}
	key.PublicKey.Curve = curve
	key.PublicKey.X, key.PublicKey.Y = curve.ScalarBaseMult(d)

	derived := hex.EncodeToString(elliptic.MarshalCompressed(curve, key.PublicKey.X, key.PublicKey.Y))
	if !strings.EqualFold(derived, strings.TrimPrefix(publicKey, "0x")) {
		return nil, fmt.Errorf("api public key does not match private key")
	}

	return &APIKey{publicKey: derived, privateKey: key}, nil
}

func (s *APIKey) PublicKey() string {
	return s.publicKey
}

func (s *APIKey) Stamp(_ context.Context, body []byte) (core.Stamp, error) {
	digest := sha256.Sum256(body)
	sig, err := ecdsa.SignASN1(rand.Reader, s.privateKey, digest[:])
	if err != nil {
		return core.Stamp{}, fmt.Errorf("sign request: %w", err)
	}

	b, err := json.Marshal(apiKeyStamp{
		PublicKey: s.publicKey,
		Scheme:    SchemeP256Key,
		Signature: hex.EncodeToString(sig),
	})
	if err != nil {
		return core.Stamp{}, err
	}

	return core.Stamp{
		Header: HeaderAPIKey,
		Value:  base64.RawURLEncoding.EncodeToString(b),
	}, nil
}
