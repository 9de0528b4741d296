package cmds

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/pandodao/passkey-wallet/core"
	"github.com/pandodao/passkey-wallet/worker/watcher"
	"github.com/spf13/cobra"
)

type Cmd struct {
	Accounts core.AccountService
	Server   *http.Server
	Watcher  *watcher.Watcher
	Logger   *slog.Logger
}

func (c *Cmd) Run(ctx context.Context, args []string) error {
	root := &cobra.Command{
		Use:           "passkey-wallet",
		Short:         "passkey secured ethereum wallet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(c.sessionCmd())
	root.AddCommand(c.signupCmd())
	root.AddCommand(c.loginCmd())
	root.AddCommand(c.logoutCmd())
	root.AddCommand(c.balanceCmd())
	root.AddCommand(c.sendCmd())
	root.AddCommand(c.historyCmd())
	root.AddCommand(c.watchCmd())
	root.AddCommand(c.serveCmd())

	root.SetArgs(args)
	root.SetOut(os.Stdout)

	return root.ExecuteContext(ctx)
}

func jsonPrint(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
