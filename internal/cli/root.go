package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ObiAU/techdigest/internal/aggregator"
	"github.com/ObiAU/techdigest/internal/config"
	"github.com/ObiAU/techdigest/internal/sources"
	"github.com/ObiAU/techdigest/internal/state"
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "techdigest",
		Short:        "Tech release digest for Telegram",
		Long:         "techdigest aggregates release feeds and changelogs, classifies what changed, and delivers a bounded digest to a Telegram chat.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("state", "", "override the state file path")

	root.AddCommand(newSendCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newSourcesCmd())
	root.AddCommand(newStateCmd())
	root.AddCommand(newBotCmd())
	return root
}

// loadConfig applies the persistent --state override on top of the
// environment.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if path, _ := cmd.Flags().GetString("state"); path != "" {
		cfg.StateFile = path
	}
	return cfg
}

func buildAggregator(cfg *config.Config, sourceKeys []string) (*aggregator.Aggregator, error) {
	srcs, err := sources.Select(cfg, sourceKeys)
	if err != nil {
		return nil, err
	}
	store := state.NewStore(cfg.StateFile)
	return aggregator.New(cfg, srcs, store), nil
}
