package watcher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pandodao/passkey-wallet/core"
	"github.com/zyedidia/generic/mapset"
)

const propertyWatchOffset = "watch_offset:"

type Config struct {
	Interval time.Duration
}

func New(
	accounts core.AccountService,
	properties core.PropertyStore,
	logger *slog.Logger,
	cfg Config,
) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}

	return &Watcher{
		accounts:   accounts,
		properties: properties,
		logger:     logger.With("worker", "watcher"),
		cfg:        cfg,
	}
}

type Watcher struct {
	accounts   core.AccountService
	properties core.PropertyStore
	logger     *slog.Logger
	cfg        Config
}

func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher start", "interval", w.cfg.Interval)

	for {
		dur := w.cfg.Interval
		if err := w.run(ctx); err != nil {
			dur = 2 * w.cfg.Interval
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
		}
	}
}

func (w *Watcher) run(ctx context.Context) error {
	session := w.accounts.Session()
	if !session.LoggedIn {
		return nil
	}

	key := propertyWatchOffset + strings.ToLower(session.Address)

	// nil until the first run for this address stores a cursor
	var offset *uint64
	if err := w.properties.Get(ctx, key, &offset); err != nil {
		w.logger.Error("properties.Get", "err", err)
		return err
	}

	transfers, err := w.accounts.GetTransactions(ctx)
	if err != nil {
		w.logger.Error("accounts.GetTransactions", "err", err)
		return err
	}

	var cursor uint64
	if offset != nil {
		cursor = *offset
	}

	next := cursor
	// self transfers show up in both the sent and received lists
	seen := mapset.New[string]()
	for _, t := range transfers {
		if t.BlockNum <= cursor || seen.Has(t.UniqueID) {
			continue
		}

		seen.Put(t.UniqueID)
		next = max(next, t.BlockNum)

		// a fresh cursor only records the head
		if offset == nil {
			continue
		}

		w.logger.Info("new transfer",
			"hash", t.Hash.Hex(),
			"block", t.BlockNum,
			"from", t.From,
			"to", t.To,
			"value", t.Value.Decimal.String(),
			"asset", t.Asset,
			"category", t.Category,
		)
	}

	if offset != nil && next <= cursor {
		return nil
	}

	if err := w.properties.Set(ctx, key, next); err != nil {
		w.logger.Error("properties.Set", "err", err)
		return err
	}

	return nil
}
