package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/wire"
	"github.com/pandodao/passkey-wallet/core"
	"github.com/pandodao/passkey-wallet/handler/api"
	"github.com/pandodao/passkey-wallet/handler/hc"
	"github.com/pandodao/passkey-wallet/worker/watcher"
	"github.com/rs/cors"
	"github.com/spf13/viper"
)

var serverSet = wire.NewSet(
	api.New,
	provideServer,
	provideWatcherConfig,
	watcher.New,
)

func provideServer(apiHandler *api.Server, accounts core.AccountService) *http.Server {
	m := chi.NewMux()
	m.Use(middleware.RealIP)
	m.Use(middleware.Logger)
	m.Use(middleware.Recoverer)
	m.Use(cors.AllowAll().Handler)

	m.Mount("/api", apiHandler.Handler())
	m.Mount("/hc", hc.Handler(version, accounts))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", opt.port),
		Handler: m,
	}
}

func provideWatcherConfig(v *viper.Viper) watcher.Config {
	return watcher.Config{
		Interval: v.GetDuration("watcher.interval"),
	}
}
