package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/carlmjohnson/versioninfo"
	"github.com/pandodao/passkey-wallet/cmd/passkey-wallet/cmds"
	"github.com/pandodao/passkey-wallet/core"
	"github.com/spf13/viper"
)

var (
	opt struct {
		config string
		port   int
		debug  bool
	}

	version = "0.0.1-src"
	commit  = versioninfo.Short()
)

func main() {
	flag.StringVar(&opt.config, "config", "config.yaml", "config file path")
	flag.IntVar(&opt.port, "port", 8080, "api server port")
	flag.BoolVar(&opt.debug, "debug", false, "debug mode")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	v := initViper()
	logger := initLogger()

	app, cleanup, err := setupApp(v, logger)
	if err != nil {
		logger.Error("setup failed", "err", err)
		os.Exit(1)
	}

	defer cleanup()

	logger.Debug("passkey wallet launched", "version", version, "commit", commit)

	if app.accounts.Restore(ctx) {
		logger.Debug("session restored", "address", app.accounts.Session().Address)
	}

	if err := app.cmd.Run(ctx, flag.Args()); err != nil {
		logger.Error("command failed", "err", err)
		cleanup()
		os.Exit(1)
	}
}

type app struct {
	cmd      *cmds.Cmd
	accounts core.AccountService
	logger   *slog.Logger
}

func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if opt.debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func initViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(opt.config)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PASSKEY_WALLET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Panicln(err)
	}

	return v
}
