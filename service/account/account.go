package account

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pandodao/passkey-wallet/core"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	AuthenticatorName string `valid:"required"`
	RootUserName      string `valid:"required"`
	WalletName        string `valid:"required"`
	DerivationPath    string `valid:"required"`
	MnemonicLength    int    `valid:"required"`
	MaxTransfers      int    `valid:"required"`
}

func DefaultConfig() Config {
	return Config{
		AuthenticatorName: "End-User Passkey",
		RootUserName:      "Root User",
		WalletName:        "Default Wallet",
		DerivationPath:    "m/44'/60'/0'/0/0",
		MnemonicLength:    24,
		MaxTransfers:      1000,
	}
}

func New(
	authenticator core.Authenticator,
	registrar core.Registrar,
	custody core.CustodyService,
	providers core.ProviderFactory,
	history core.HistoryService,
	credentials core.CredentialStore,
	logger *slog.Logger,
	cfg Config,
) core.AccountService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &service{
		authenticator: authenticator,
		registrar:     registrar,
		custody:       custody,
		providers:     providers,
		history:       history,
		credentials:   credentials,
		logger:        logger.With("service", "account"),
		cfg:           cfg,
		now:           time.Now,
	}
}

type service struct {
	authenticator core.Authenticator
	registrar     core.Registrar
	custody       core.CustodyService
	providers     core.ProviderFactory
	history       core.HistoryService
	credentials   core.CredentialStore
	logger        *slog.Logger
	cfg           Config
	now           func() time.Time

	// inflight joins overlapping calls of the same action
	inflight singleflight.Group
	loading  atomic.Int32

	mux            sync.RWMutex
	provider       core.Provider
	address        string
	organizationID string
}

func (s *service) Session() core.Session {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return core.Session{
		Address:        s.address,
		OrganizationID: s.organizationID,
		LoggedIn:       s.provider != nil,
		Loading:        s.loading.Load() > 0,
	}
}

// guard joins overlapping calls of the same action. The shared call runs
// detached from any single caller; a caller whose ctx ends stops waiting
// while the others keep their result.
func (s *service) guard(ctx context.Context, action string, fn func(ctx context.Context) error) error {
	ch := s.inflight.DoChan(action, func() (any, error) {
		s.loading.Add(1)
		defer s.loading.Add(-1)

		return nil, fn(context.WithoutCancel(ctx))
	})

	select {
	case r := <-ch:
		return r.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *service) Signup(ctx context.Context) error {
	return s.guard(ctx, "signup", func(ctx context.Context) error {
		if err := s.signup(ctx); err != nil {
			s.logger.Error("signup failed", "err", err)
			return err
		}

		return nil
	})
}

func (s *service) signup(ctx context.Context) error {
	if !s.authenticator.Supported(ctx) {
		return core.ErrUnsupportedDevice
	}

	now := s.now()
	ms := now.UnixMilli()
	label := fmt.Sprintf("Key @ %d-%d-%d@%dh%dmin", now.Year(), int(now.Month()), now.Day(), now.Hour(), now.Minute())

	attestation, err := s.authenticator.Create(ctx, &core.PasskeyRegistration{
		AuthenticatorName: s.cfg.AuthenticatorName,
		UserID:            base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(ms, 10))),
		UserName:          label,
		DisplayName:       label,
	})
	if err != nil {
		return core.Upstream("passkey", "create", err)
	}

	sub, err := s.registrar.CreateSubOrganization(ctx, &core.SubOrganizationInput{
		Name:           fmt.Sprintf("Sub-organization at %d", ms),
		RootUserName:   s.cfg.RootUserName,
		Attestation:    attestation,
		WalletName:     s.cfg.WalletName,
		MnemonicLength: s.cfg.MnemonicLength,
		DerivationPath: s.cfg.DerivationPath,
		TimestampMs:    ms,
	})
	if err != nil {
		return core.Upstream("custody", "create_sub_organization", err)
	}

	s.logger.Info("sub-organization created", "organization", sub.ID, "address", sub.SignWith)
	return s.connect(ctx, sub)
}

func (s *service) Login(ctx context.Context, mode core.LoginMode) error {
	action := "login"
	if m, ok := mode.(core.RestoreLogin); ok {
		action = "login:" + m.OrganizationID + ":" + m.Address
	}

	return s.guard(ctx, action, func(ctx context.Context) error {
		if err := s.login(ctx, mode); err != nil {
			s.logger.Error("login failed", "err", err)
			return err
		}

		return nil
	})
}

func (s *service) login(ctx context.Context, mode core.LoginMode) error {
	var sub *core.SubOrganization

	switch m := mode.(type) {
	case core.RestoreLogin:
		if m.OrganizationID == "" || m.Address == "" {
			return fmt.Errorf("%w: restore login needs organization id and address", core.ErrInvalidArgument)
		}

		sub = &core.SubOrganization{ID: m.OrganizationID, SignWith: m.Address}
	case core.FreshLogin, nil:
		resolved, err := s.resolve(ctx)
		if err != nil {
			return err
		}

		sub = resolved
	default:
		return fmt.Errorf("%w: unknown login mode %T", core.ErrInvalidArgument, mode)
	}

	return s.connect(ctx, sub)
}

// resolve finds the caller's sub-organization and default wallet address.
func (s *service) resolve(ctx context.Context) (*core.SubOrganization, error) {
	organizationID, err := s.custody.Whoami(ctx)
	if err != nil {
		return nil, core.Upstream("custody", "whoami", err)
	}

	wallets, err := s.custody.ListWallets(ctx, organizationID)
	if err != nil {
		return nil, core.Upstream("custody", "list_wallets", err)
	}

	if len(wallets) == 0 {
		return nil, core.Upstream("custody", "list_wallets", errors.New("organization has no wallets"))
	}

	accounts, err := s.custody.ListWalletAccounts(ctx, organizationID, wallets[0].ID)
	if err != nil {
		return nil, core.Upstream("custody", "list_wallet_accounts", err)
	}

	if len(accounts) == 0 {
		return nil, core.Upstream("custody", "list_wallet_accounts", errors.New("wallet has no accounts"))
	}

	return &core.SubOrganization{
		ID:       organizationID,
		WalletID: wallets[0].ID,
		SignWith: accounts[0].Address,
	}, nil
}

// connect builds the provider for sub, persists the pair and commits the
// session. Nothing is committed when the provider cannot be built.
func (s *service) connect(ctx context.Context, sub *core.SubOrganization) error {
	provider, err := s.providers.Connect(ctx, sub)
	if err != nil {
		return core.Upstream("chain", "connect", err)
	}

	address := provider.Address().Hex()
	if err := s.credentials.Save(ctx, &core.Credentials{Address: address, OrganizationID: sub.ID}); err != nil {
		s.logger.Error("credentials.Save", "err", err)
	}

	s.mux.Lock()
	s.provider = provider
	s.address = address
	s.organizationID = sub.ID
	s.mux.Unlock()

	s.logger.Info("logged in", "organization", sub.ID, "address", address)
	return nil
}

func (s *service) Logout(ctx context.Context) {
	s.mux.Lock()
	s.provider = nil
	s.address = ""
	s.organizationID = ""
	s.mux.Unlock()

	if err := s.credentials.Clear(ctx); err != nil {
		s.logger.Error("credentials.Clear", "err", err)
	}

	s.logger.Info("logged out")
}

func (s *service) Restore(ctx context.Context) bool {
	c, err := s.credentials.Load(ctx)
	if err != nil {
		s.logger.Error("credentials.Load", "err", err)
		return false
	}

	if c == nil {
		return false
	}

	if err := s.Login(ctx, core.RestoreLogin{OrganizationID: c.OrganizationID, Address: c.Address}); err != nil {
		s.logger.Error("restore session", "err", err)
		return false
	}

	return true
}

func (s *service) current() (core.Provider, string, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	if s.provider == nil || s.address == "" {
		return nil, "", core.ErrNotAuthenticated
	}

	return s.provider, s.address, nil
}

func (s *service) SendTransaction(ctx context.Context, to, amount string) (common.Hash, error) {
	provider, _, err := s.current()
	if err != nil {
		return common.Hash{}, err
	}

	if !common.IsHexAddress(to) {
		return common.Hash{}, fmt.Errorf("%w: recipient %q is not an address", core.ErrInvalidArgument, to)
	}

	value, err := core.ParseEther(amount)
	if err != nil {
		return common.Hash{}, err
	}

	balance, err := provider.GetBalance(ctx, provider.Address())
	if err != nil {
		return common.Hash{}, core.Upstream("chain", "get_balance", err)
	}

	if balance.Cmp(value) < 0 {
		return common.Hash{}, &core.InsufficientFundsError{Balance: balance, Required: value}
	}

	hash, err := provider.SendTransaction(ctx, common.HexToAddress(to), value)
	if err != nil {
		return common.Hash{}, core.Upstream("chain", "send_transaction", err)
	}

	s.logger.Info("transaction submitted", "hash", hash.Hex(), "to", to, "amount", amount)
	return hash, nil
}

func (s *service) GetBalance(ctx context.Context) (string, error) {
	provider, address, err := s.current()
	if err != nil {
		return "", err
	}

	balance, err := provider.GetBalance(ctx, common.HexToAddress(address))
	if err != nil {
		return "", core.Upstream("chain", "get_balance", err)
	}

	return core.FormatEther(balance), nil
}

func (s *service) GetTransactions(ctx context.Context) ([]*core.Transfer, error) {
	_, address, err := s.current()
	if err != nil {
		return nil, err
	}

	var sent, received []*core.Transfer

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sent, err = s.history.ListTransfers(ctx, s.transferQuery(address, ""))
		return err
	})

	g.Go(func() error {
		var err error
		received, err = s.history.ListTransfers(ctx, s.transferQuery("", address))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, core.Upstream("history", "get_asset_transfers", err)
	}

	return mergeTransfers(sent, received), nil
}

func (s *service) transferQuery(from, to string) core.TransferQuery {
	return core.TransferQuery{
		FromAddress:      from,
		ToAddress:        to,
		Categories:       core.AllTransferCategories,
		MaxCount:         s.cfg.MaxTransfers,
		ExcludeZeroValue: true,
	}
}

// mergeTransfers orders the most recent block first. Equal blocks keep the
// sent list ahead of the received list.
func mergeTransfers(sent, received []*core.Transfer) []*core.Transfer {
	all := make([]*core.Transfer, 0, len(sent)+len(received))
	all = append(all, sent...)
	all = append(all, received...)

	slices.SortStableFunc(all, func(a, b *core.Transfer) int {
		return cmp.Compare(b.BlockNum, a.BlockNum)
	})

	return all
}
