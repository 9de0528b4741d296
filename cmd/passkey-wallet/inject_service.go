package main

import (
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/wire"
	"github.com/pandodao/passkey-wallet/core"
	"github.com/pandodao/passkey-wallet/service/account"
	"github.com/pandodao/passkey-wallet/service/chain"
	"github.com/pandodao/passkey-wallet/service/custody"
	"github.com/pandodao/passkey-wallet/service/history"
	"github.com/pandodao/passkey-wallet/service/passkey"
	"github.com/pandodao/passkey-wallet/service/stamper"
	"github.com/spf13/viper"
)

var serviceSet = wire.NewSet(
	providePasskeyConfig,
	passkey.New,
	stamper.NewPasskey,
	provideAPIKeyStamper,
	provideCustodyConfig,
	provideRegistrar,
	provideCustody,
	provideRPCClient,
	ethclient.NewClient,
	wire.Bind(new(chain.Client), new(*ethclient.Client)),
	chain.New,
	wire.Bind(new(history.Caller), new(*rpc.Client)),
	history.New,
	provideAccountConfig,
	account.New,
)

func providePasskeyConfig(v *viper.Viper) passkey.Config {
	v.SetDefault("passkey.bridge_url", "http://127.0.0.1:7878")
	v.SetDefault("passkey.rp_id", "localhost")
	v.SetDefault("passkey.rp_name", "Passkey Wallet")

	return passkey.Config{
		BridgeURL: v.GetString("passkey.bridge_url"),
		RPID:      v.GetString("passkey.rp_id"),
		RPName:    v.GetString("passkey.rp_name"),
		Timeout:   v.GetDuration("passkey.timeout"),
	}
}

func provideAPIKeyStamper(v *viper.Viper) (*stamper.APIKey, error) {
	return stamper.NewAPIKey(
		v.GetString("custody.api_public_key"),
		v.GetString("custody.api_private_key"),
	)
}

func provideCustodyConfig(v *viper.Viper) custody.Config {
	v.SetDefault("custody.base_url", "https://api.turnkey.com")

	return custody.Config{
		BaseURL:        v.GetString("custody.base_url"),
		OrganizationID: v.GetString("custody.organization_id"),
		Timeout:        v.GetDuration("custody.timeout"),
	}
}

// provideRegistrar signs with the static API key of the parent organization.
func provideRegistrar(cfg custody.Config, s *stamper.APIKey) core.Registrar {
	return custody.New(cfg, s)
}

// provideCustody signs every request with the user's passkey.
func provideCustody(cfg custody.Config, s *stamper.Passkey) core.CustodyService {
	return custody.New(cfg, s)
}

func provideRPCClient(v *viper.Viper) (*rpc.Client, func(), error) {
	client, err := rpc.Dial(v.GetString("chain.rpc_url"))
	if err != nil {
		return nil, nil, err
	}

	return client, client.Close, nil
}

func provideAccountConfig(v *viper.Viper) account.Config {
	cfg := account.DefaultConfig()
	if name := v.GetString("account.wallet_name"); name != "" {
		cfg.WalletName = name
	}

	if n := v.GetInt("account.max_transfers"); n > 0 {
		cfg.MaxTransfers = n
	}

	return cfg
}
