package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage login accounts",
	}

	cmd.AddCommand(newAccountCreateCmd())
	return cmd
}

func newAccountCreateCmd() *cobra.Command {
	cfg := DefaultCLIConfig()
	var password string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a login account in the configured storage backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}

			store, closeStore, err := openStorage(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			accounts := accountServiceFor(cfg, store, logger)

			acct, err := accounts.Register(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "account %q created with identity %d\n", acct.Name, acct.Identity)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")
	cmd.Flags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis (env: CONQUERGATE_STORAGE)")
	cmd.Flags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL when storage is redis (env: CONQUERGATE_REDIS_URL)")

	return cmd
}
