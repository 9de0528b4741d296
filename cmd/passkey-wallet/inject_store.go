package main

import (
	"fmt"

	"github.com/google/wire"
	"github.com/pandodao/passkey-wallet/core"
	"github.com/pandodao/passkey-wallet/store/bolt"
	"github.com/pandodao/passkey-wallet/store/credential"
	"github.com/pandodao/passkey-wallet/store/db"
	"github.com/pandodao/passkey-wallet/store/property"
	"github.com/spf13/viper"
	"github.com/tsenart/nap"
)

var storeSet = wire.NewSet(
	providePropertyStore,
	credential.New,
)

func providePropertyStore(v *viper.Viper) (core.PropertyStore, func(), error) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "passkey-wallet.db")

	dsn := v.GetString("store.dsn")

	switch driver := v.GetString("store.driver"); driver {
	case "sqlite":
		conn, err := nap.Open(db.Driver, dsn)
		if err != nil {
			return nil, nil, err
		}

		if err := db.Migrate(conn.Master()); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}

		return property.New(conn), func() { _ = conn.Close() }, nil
	case "bolt":
		s, err := bolt.Open(dsn)
		if err != nil {
			return nil, nil, err
		}

		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
