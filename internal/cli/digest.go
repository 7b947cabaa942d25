package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ObiAU/techdigest/internal/claude"
	"github.com/ObiAU/techdigest/internal/telegram"
)

func newSendCmd() *cobra.Command {
	var sourceKeys []string
	var withEnrichment bool

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Fetch, compose, and deliver the digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)

			// Credentials are checked before any fetch work happens.
			notifier, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, cfg.SendTimeout)
			if err != nil {
				return err
			}

			agg, err := buildAggregator(cfg, sourceKeys)
			if err != nil {
				return err
			}
			if withEnrichment {
				agg.EnableEnrichment(claude.NewCLI())
			}

			return agg.Send(context.Background(), notifier)
		},
	}

	cmd.Flags().StringSliceVar(&sourceKeys, "source", nil, "restrict the run to these source keys (repeatable)")
	cmd.Flags().BoolVar(&withEnrichment, "enrich", false, "append a community-buzz section via the claude CLI")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var sourceKeys []string
	var withEnrichment bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the digest without sending or updating state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)

			agg, err := buildAggregator(cfg, sourceKeys)
			if err != nil {
				return err
			}
			if withEnrichment {
				agg.EnableEnrichment(claude.NewCLI())
			}

			doc, err := agg.Preview(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sourceKeys, "source", nil, "restrict the run to these source keys (repeatable)")
	cmd.Flags().BoolVar(&withEnrichment, "enrich", false, "append a community-buzz section via the claude CLI")
	return cmd
}
