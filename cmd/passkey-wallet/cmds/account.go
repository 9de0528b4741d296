package cmds

import (
	"github.com/pandodao/passkey-wallet/core"
	"github.com/spf13/cobra"
)

func (c *Cmd) sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return jsonPrint(cmd, c.Accounts.Session())
		},
	}
}

func (c *Cmd) signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "create a passkey and a new wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Accounts.Signup(cmd.Context()); err != nil {
				return err
			}

			return jsonPrint(cmd, c.Accounts.Session())
		},
	}
}

func (c *Cmd) loginCmd() *cobra.Command {
	var restore core.RestoreLogin

	cmd := &cobra.Command{
		Use:   "login",
		Short: "login with an existing passkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode core.LoginMode = core.FreshLogin{}
			if restore.OrganizationID != "" || restore.Address != "" {
				mode = restore
			}

			if err := c.Accounts.Login(cmd.Context(), mode); err != nil {
				return err
			}

			return jsonPrint(cmd, c.Accounts.Session())
		},
	}

	cmd.Flags().StringVar(&restore.OrganizationID, "organization", "", "sub-organization id, skips the wallet lookup")
	cmd.Flags().StringVar(&restore.Address, "address", "", "wallet address, skips the wallet lookup")
	cmd.MarkFlagsRequiredTogether("organization", "address")
	return cmd
}

func (c *Cmd) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "forget the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Accounts.Logout(cmd.Context())
			return jsonPrint(cmd, c.Accounts.Session())
		},
	}
}

func (c *Cmd) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "show the ETH balance of the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := c.Accounts.GetBalance(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Println(balance, "ETH")
			return nil
		},
	}
}

func (c *Cmd) sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <to> <amount>",
		Short: "send ETH to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := c.Accounts.SendTransaction(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			cmd.Println(hash.Hex())
			return nil
		},
	}
}

func (c *Cmd) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "list transfers sent and received by the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			transfers, err := c.Accounts.GetTransactions(cmd.Context())
			if err != nil {
				return err
			}

			return jsonPrint(cmd, transfers)
		},
	}
}
