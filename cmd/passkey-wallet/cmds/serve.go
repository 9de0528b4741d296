package cmds

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (c *Cmd) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "log new transfers of the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Watcher.Run(cmd.Context()); !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		},
	}
}

func (c *Cmd) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the local api server and the transfer watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.Info("api server launched", "addr", c.Server.Addr)

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() error {
				if err := c.Server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}

				return nil
			})

			g.Go(func() error {
				<-ctx.Done()
				return c.Server.Shutdown(context.Background())
			})

			g.Go(func() error {
				return c.Watcher.Run(ctx)
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		},
	}
}
