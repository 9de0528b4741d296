package passkey

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-resty/resty/v2"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/protocol/webauthncose"
	"github.com/google/uuid"
	"github.com/pandodao/passkey-wallet/core"
)

type Config struct {
	BridgeURL string        `valid:"url,required"`
	RPID      string        `valid:"required"`
	RPName    string        `valid:"required"`
	Timeout   time.Duration `valid:"-"`
}

// New returns an authenticator that drives the platform passkey through a
// local bridge speaking WebAuthn JSON.
func New(cfg Config) core.Authenticator {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &bridge{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BridgeURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type bridge struct {
	cfg    Config
	client *resty.Client
}

type capability struct {
	Supported bool `json:"supported"`
}

func (b *bridge) Supported(ctx context.Context) bool {
	var c capability
	resp, err := b.client.R().SetContext(ctx).SetResult(&c).Get("/capability")
	if err != nil || resp.IsError() {
		return false
	}

	return c.Supported
}

func (b *bridge) Create(ctx context.Context, reg *core.PasskeyRegistration) (*core.Attestation, error) {
	userHandle, err := base64.StdEncoding.DecodeString(reg.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id is not base64: %v", core.ErrInvalidArgument, err)
	}

	challenge, err := protocol.CreateChallenge()
	if err != nil {
		return nil, err
	}

	creation := protocol.CredentialCreation{
		Response: protocol.PublicKeyCredentialCreationOptions{
			RelyingParty: protocol.RelyingPartyEntity{
				CredentialEntity: protocol.CredentialEntity{Name: b.cfg.RPName},
				ID:               b.cfg.RPID,
			},
			User: protocol.UserEntity{
				CredentialEntity: protocol.CredentialEntity{Name: reg.UserName},
				DisplayName:      reg.DisplayName,
				ID:               protocol.URLEncodedBase64(userHandle),
			},
			Challenge: challenge,
			Parameters: []protocol.CredentialParameter{
				{Type: protocol.PublicKeyCredentialType, Algorithm: webauthncose.AlgES256},
				{Type: protocol.PublicKeyCredentialType, Algorithm: webauthncose.AlgRS256},
			},
			AuthenticatorSelection: protocol.AuthenticatorSelection{
				ResidentKey:        protocol.ResidentKeyRequirementRequired,
				RequireResidentKey: protocol.ResidentKeyRequired(),
				UserVerification:   protocol.VerificationPreferred,
			},
			Timeout: int(b.cfg.Timeout.Milliseconds()),
		},
	}

	body, err := b.post(ctx, "/credentials/create", creation)
	if err != nil {
		return nil, err
	}

	parsed, err := protocol.ParseCredentialCreationResponseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse attestation: %w", err)
	}

	return &core.Attestation{
		AuthenticatorName: reg.AuthenticatorName,
		Challenge:         encode(challenge),
		CredentialID:      parsed.Raw.ID,
		ClientDataJSON:    encode(parsed.Raw.AttestationResponse.ClientDataJSON),
		AttestationObject: encode(parsed.Raw.AttestationResponse.AttestationObject),
		Transports:        parsed.Raw.AttestationResponse.Transports,
	}, nil
}

func (b *bridge) Assert(ctx context.Context, challenge []byte) (*core.Assertion, error) {
	assertion := protocol.CredentialAssertion{
		Response: protocol.PublicKeyCredentialRequestOptions{
			Challenge:        protocol.URLEncodedBase64(challenge),
			RelyingPartyID:   b.cfg.RPID,
			UserVerification: protocol.VerificationPreferred,
			Timeout:          int(b.cfg.Timeout.Milliseconds()),
		},
	}

	body, err := b.post(ctx, "/credentials/get", assertion)
	if err != nil {
		return nil, err
	}

	parsed, err := protocol.ParseCredentialRequestResponseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse assertion: %w", err)
	}

	return &core.Assertion{
		CredentialID:      parsed.Raw.ID,
		ClientDataJSON:    encode(parsed.Raw.AssertionResponse.ClientDataJSON),
		AuthenticatorData: encode(parsed.Raw.AssertionResponse.AuthenticatorData),
		Signature:         encode(parsed.Raw.AssertionResponse.Signature),
	}, nil
}

func (b *bridge) post(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("passkey bridge %s: %s", resp.Status(), resp.String())
	}

	return resp.Body(), nil
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
