package custody

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-resty/resty/v2"
	"github.com/pandodao/generic"
	"github.com/pandodao/passkey-wallet/core"
)

type Config struct {
	BaseURL        string        `valid:"url,required"`
	OrganizationID string        `valid:"required"`
	Timeout        time.Duration `valid:"-"`
}

// New returns a custody client whose requests are all stamped by stamper.
func New(cfg Config, stamper core.Stamper) core.CustodyService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &service{
		cfg:     cfg,
		stamper: stamper,
		now:     time.Now,
		client: resty.New().
			SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type service struct {
	cfg     Config
	stamper core.Stamper
	client  *resty.Client
	now     func() time.Time
}

func (s *service) do(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	stamp, err := s.stamper.Stamp(ctx, body)
	if err != nil {
		return err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader(stamp.Header, stamp.Value).
		SetBody(body).
		Post(path)
	if err != nil {
		return err
	}

	if resp.IsError() {
		e := &Error{Status: resp.StatusCode()}
		if err := json.Unmarshal(resp.Body(), e); err != nil || e.Message == "" {
			e.Message = resp.String()
		}
		return e
	}

	return json.Unmarshal(resp.Body(), out)
}

func (s *service) activity(ctx context.Context, path, typ, organizationID string, timestampMs int64, params any) (*activityResponse, error) {
	req := activityRequest{
		Type:           typ,
		TimestampMs:    strconv.FormatInt(timestampMs, 10),
		OrganizationID: organizationID,
		Parameters:     params,
	}

	var resp activityResponse
	if err := s.do(ctx, path, req, &resp); err != nil {
		return nil, err
	}

	if resp.Activity.Status != activityStatusCompleted {
		return nil, &ActivityError{ID: resp.Activity.ID, Type: typ, Status: resp.Activity.Status}
	}

	return &resp, nil
}

func (s *service) CreateSubOrganization(ctx context.Context, input *core.SubOrganizationInput) (*core.SubOrganization, error) {
	if input.Attestation == nil {
		return nil, errors.New("attestation is required")
	}

	att := input.Attestation
	params := createSubOrganizationParams{
		SubOrganizationName: input.Name,
		RootQuorumThreshold: 1,
		RootUsers: []rootUser{{
			UserName: input.RootUserName,
			APIKeys:  []any{},
			Authenticators: []authenticator{{
				AuthenticatorName: att.AuthenticatorName,
				Challenge:         att.Challenge,
				Attestation: attestation{
					CredentialID:      att.CredentialID,
					ClientDataJSON:    att.ClientDataJSON,
					AttestationObject: att.AttestationObject,
					Transports:        generic.MapSlice(att.Transports, transport),
				},
			}},
			OauthProviders: []any{},
		}},
		Wallet: walletParams{
			WalletName: input.WalletName,
			Accounts: []walletAccountParams{{
				Curve:         curveSecp256k1,
				PathFormat:    pathFormatBIP32,
				Path:          input.DerivationPath,
				AddressFormat: addressFormatEthereum,
			}},
			MnemonicLength: input.MnemonicLength,
		},
	}

	resp, err := s.activity(ctx, "/public/v1/submit/create_sub_organization", activityCreateSubOrganization, s.cfg.OrganizationID, input.TimestampMs, params)
	if err != nil {
		return nil, err
	}

	result := resp.Activity.Result.CreateSubOrganizationResultV4
	if result == nil || result.SubOrganizationID == "" {
		return nil, errors.New("create sub-organization: empty result")
	}

	if result.Wallet == nil || len(result.Wallet.Addresses) == 0 {
		return nil, errors.New("create sub-organization: no wallet address generated")
	}

	return &core.SubOrganization{
		ID:       result.SubOrganizationID,
		WalletID: result.Wallet.WalletID,
		SignWith: result.Wallet.Addresses[0],
	}, nil
}

func (s *service) Whoami(ctx context.Context) (string, error) {
	var resp whoamiResponse
	if err := s.do(ctx, "/public/v1/query/whoami", organizationRequest{OrganizationID: s.cfg.OrganizationID}, &resp); err != nil {
		return "", err
	}

	if resp.OrganizationID == "" {
		return "", errors.New("whoami: empty organization id")
	}

	return resp.OrganizationID, nil
}

func (s *service) ListWallets(ctx context.Context, organizationID string) ([]*core.Wallet, error) {
	var resp listWalletsResponse
	if err := s.do(ctx, "/public/v1/query/list_wallets", organizationRequest{OrganizationID: organizationID}, &resp); err != nil {
		return nil, err
	}

	wallets := make([]*core.Wallet, 0, len(resp.Wallets))
	for _, w := range resp.Wallets {
		wallets = append(wallets, &core.Wallet{ID: w.WalletID, Name: w.WalletName})
	}

	return wallets, nil
}

func (s *service) ListWalletAccounts(ctx context.Context, organizationID, walletID string) ([]*core.WalletAccount, error) {
	var resp listWalletAccountsResponse
	req := organizationRequest{OrganizationID: organizationID, WalletID: walletID}
	if err := s.do(ctx, "/public/v1/query/list_wallet_accounts", req, &resp); err != nil {
		return nil, err
	}

	accounts := make([]*core.WalletAccount, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		accounts = append(accounts, &core.WalletAccount{WalletID: a.WalletID, Address: a.Address, Path: a.Path})
	}

	return accounts, nil
}

func (s *service) SignTransaction(ctx context.Context, organizationID, signWith, unsignedTx string) (string, error) {
	params := signTransactionParams{
		SignWith:            signWith,
		UnsignedTransaction: strings.TrimPrefix(unsignedTx, "0x"),
		Type:                transactionTypeEthereum,
	}

	resp, err := s.activity(ctx, "/public/v1/submit/sign_transaction", activitySignTransaction, organizationID, s.now().UnixMilli(), params)
	if err != nil {
		return "", err
	}

	result := resp.Activity.Result.SignTransactionResult
	if result == nil || result.SignedTransaction == "" {
		return "", errors.New("sign transaction: empty result")
	}

	return result.SignedTransaction, nil
}
