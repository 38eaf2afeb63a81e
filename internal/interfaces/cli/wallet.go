package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitcircles.github/internal/config"
	"gitcircles.github/internal/domain/entities"
	"gitcircles.github/internal/infrastructure/github"
	"gitcircles.github/internal/usecases"
	"gitcircles.github/pkg/ergo"
)

func newWalletCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Synchronize and inspect contributor wallet addresses",
	}

	sync := &cobra.Command{
		Use:   "sync <login>",
		Short: "Fetch a login's published wallet address and record changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.token(cfg)
			if err != nil {
				return err
			}
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			client := github.NewClient(token, cfg.GitHub.ProfileRepo, cfg.GitHub.WalletFile)
			syncUC := usecases.NewWalletSyncUsecase(e.walletRepo, client)

			outcome, err := syncUC.Sync(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch outcome.Status {
			case entities.SyncNoClaim:
				fmt.Fprintf(out, "%s publishes no wallet address.\n", args[0])
			case entities.SyncUnchanged:
				fmt.Fprintf(out, "Wallet unchanged: %s\n", outcome.Current)
			case entities.SyncUpdated:
				if outcome.Previous != "" {
					fmt.Fprintf(out, "Wallet updated: %s -> %s (branch %s)\n",
						outcome.Previous, outcome.Current, outcome.Source.Branch)
				} else {
					fmt.Fprintf(out, "Wallet recorded: %s (branch %s)\n", outcome.Current, outcome.Source.Branch)
				}
			}
			return nil
		},
	}

	lookup := &cobra.Command{
		Use:   "lookup <address>",
		Short: "List every identity ever linked to an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			links, err := e.status.WalletLookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ergo.ChecksumOK(args[0]) {
				fmt.Fprintln(out, "Warning: address checksum does not verify; it may be mistyped.")
			}
			if len(links) == 0 {
				fmt.Fprintln(out, "No identities linked to this address.")
				return nil
			}
			renderWalletLinks(out, links)
			return nil
		},
	}

	history := &cobra.Command{
		Use:   "history <login>",
		Short: "Show a login's wallet address audit trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			entries, err := e.status.WalletHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No wallet history for %s.\n", args[0])
				return nil
			}
			renderWalletHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.AddCommand(sync, lookup, history)
	return cmd
}
