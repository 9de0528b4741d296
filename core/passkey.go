package core

import "context"

type PasskeyRegistration struct {
	AuthenticatorName string
	UserID            string
	UserName          string
	DisplayName       string
}

// Attestation is the result of a passkey creation ceremony, base64url encoded.
type Attestation struct {
	AuthenticatorName string   `json:"authenticator_name"`
	Challenge         string   `json:"challenge"`
	CredentialID      string   `json:"credential_id"`
	ClientDataJSON    string   `json:"client_data_json"`
	AttestationObject string   `json:"attestation_object"`
	Transports        []string `json:"transports,omitempty"`
}

// Assertion is the result of a passkey assertion ceremony, base64url encoded.
type Assertion struct {
	CredentialID      string `json:"credential_id"`
	ClientDataJSON    string `json:"client_data_json"`
	AuthenticatorData string `json:"authenticator_data"`
	Signature         string `json:"signature"`
}

type Authenticator interface {
	Supported(ctx context.Context) bool
	Create(ctx context.Context, reg *PasskeyRegistration) (*Attestation, error)
	Assert(ctx context.Context, challenge []byte) (*Assertion, error)
}

// Stamp is a signed proof of the caller's identity attached to a custody request.
type Stamp struct {
	Header string
	Value  string
}

type Stamper interface {
	Stamp(ctx context.Context, body []byte) (Stamp, error)
}
