package stamper

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pandodao/passkey-wallet/core"
)

func newKeyPair(t *testing.T) (pub, priv string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	d := key.D.FillBytes(make([]byte, 32))
	return hex.EncodeToString(elliptic.MarshalCompressed(elliptic.P256(), key.X, key.Y)), hex.EncodeToString(d)
}

func TestAPIKeyStamp(t *testing.T) {
	pub, priv := newKeyPair(t)

	s, err := NewAPIKey(pub, priv)
	if err != nil {
		t.Fatalf("NewAPIKey: %v", err)
	}

	body := []byte(`{"organizationId":"org"}`)
	stamp, err := s.Stamp(context.Background(), body)
	if err != nil {
		t.Fatalf("Stamp: %v", err)
	}

	if stamp.Header != HeaderAPIKey {
		t.Errorf("header = %s, want %s", stamp.Header, HeaderAPIKey)
	}

	raw, err := base64.RawURLEncoding.DecodeString(stamp.Value)
	if err != nil {
		t.Fatalf("decode stamp: %v", err)
	}

	var v apiKeyStamp
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal stamp: %v", err)
	}

	if v.PublicKey != pub || v.Scheme != SchemeP256Key {
		t.Errorf("stamp = %+v", v)
	}

	sig, _ := hex.DecodeString(v.Signature)
	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), mustHex(t, pub))
	digest := sha256.Sum256(body)
	if !ecdsa.VerifyASN1(&ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, digest[:], sig) {
		t.Errorf("stamp signature does not verify")
	}
}

func TestNewAPIKeyMismatch(t *testing.T) {
	pub, _ := newKeyPair(t)
	_, priv := newKeyPair(t)

	if _, err := NewAPIKey(pub, priv); err == nil {
		t.Errorf("expected mismatch error")
	}

	if _, err := NewAPIKey(pub, "not-hex"); err == nil {
		t.Errorf("expected invalid key error")
	}
}

type fakeAuthenticator struct {
	challenge []byte
	err       error
}

func (f *fakeAuthenticator) Supported(context.Context) bool { return true }

func (f *fakeAuthenticator) Create(context.Context, *core.PasskeyRegistration) (*core.Attestation, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthenticator) Assert(_ context.Context, challenge []byte) (*core.Assertion, error) {
	f.challenge = challenge
	if f.err != nil {
		return nil, f.err
	}

	return &core.Assertion{
		CredentialID:      "cred",
		ClientDataJSON:    "client",
		AuthenticatorData: "auth",
		Signature:         "sig",
	}, nil
}

func TestPasskeyStamp(t *testing.T) {
	auth := &fakeAuthenticator{}
	body := []byte(`{"organizationId":"org"}`)

	stamp, err := NewPasskey(auth).Stamp(context.Background(), body)
	if err != nil {
		t.Fatalf("Stamp: %v", err)
	}

	digest := sha256.Sum256(body)
	if want := []byte(hex.EncodeToString(digest[:])); !bytes.Equal(auth.challenge, want) {
		t.Errorf("challenge = %s, want %s", auth.challenge, want)
	}

	if stamp.Header != HeaderWebAuthn {
		t.Errorf("header = %s, want %s", stamp.Header, HeaderWebAuthn)
	}

	var v webAuthnStamp
	if err := json.Unmarshal([]byte(stamp.Value), &v); err != nil {
		t.Fatalf("unmarshal stamp: %v", err)
	}

	if v.CredentialID != "cred" || v.Signature != "sig" || v.AuthenticatorData != "auth" || v.ClientDataJSON != "client" {
		t.Errorf("stamp = %+v", v)
	}
}

func TestPasskeyStampError(t *testing.T) {
	cause := errors.New("user cancelled")
	if _, err := NewPasskey(&fakeAuthenticator{err: cause}).Stamp(context.Background(), nil); !errors.Is(err, cause) {
		t.Errorf("Stamp error = %v, want %v", err, cause)
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}

	return b
}
