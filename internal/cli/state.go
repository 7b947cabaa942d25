package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ObiAU/techdigest/internal/sources"
	"github.com/ObiAU/techdigest/internal/state"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tKIND\tLOCATION")
			for _, info := range sources.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Key, info.Name, info.Kind, info.Location)
			}
			return w.Flush()
		},
	}
}

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset novelty state",
	}
	cmd.AddCommand(newStateShowCmd())
	cmd.AddCommand(newStateResetCmd())
	return cmd
}

func newStateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted per-source state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			store := state.NewStore(cfg.StateFile)

			st, err := store.Load()
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "state file: %s\n%s\n", store.Path(), data)
			return nil
		},
	}
}

func newStateResetCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset [source-key...]",
		Short: "Forget state for the given sources (or everything with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one source key or pass --all")
			}

			cfg := loadConfig(cmd)
			if _, err := sources.Select(cfg, args); err != nil {
				return err
			}

			store := state.NewStore(cfg.StateFile)
			keys := args
			if all {
				keys = nil
			}
			if err := store.Reset(keys); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "state reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "reset every source")
	return cmd
}
