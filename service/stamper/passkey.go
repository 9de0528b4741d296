package stamper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/pandodao/passkey-wallet/core"
)

const HeaderWebAuthn = "X-Stamp-WebAuthn"

type webAuthnStamp struct {
	AuthenticatorData string `json:"authenticatorData"`
	ClientDataJSON    string `json:"clientDataJson"`
	CredentialID      string `json:"credentialId"`
	Signature         string `json:"signature"`
}

type Passkey struct {
	authenticator core.Authenticator
}

func NewPasskey(authenticator core.Authenticator) *Passkey {
	return &Passkey{authenticator: authenticator}
}

// Challenge is the hex sha256 digest of the request body, as bytes.
func Challenge(body []byte) []byte {
	digest := sha256.Sum256(body)
	return []byte(hex.EncodeToString(digest[:]))
}

func (s *Passkey) Stamp(ctx context.Context, body []byte) (core.Stamp, error) {
	assertion, err := s.authenticator.Assert(ctx, Challenge(body))
	if err != nil {
		return core.Stamp{}, err
	}

	b, err := json.Marshal(webAuthnStamp{
		AuthenticatorData: assertion.AuthenticatorData,
		ClientDataJSON:    assertion.ClientDataJSON,
		CredentialID:      assertion.CredentialID,
		Signature:         assertion.Signature,
	})
	if err != nil {
		return core.Stamp{}, err
	}

	return core.Stamp{Header: HeaderWebAuthn, Value: string(b)}, nil
}
