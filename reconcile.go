package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andrewpaige1/flipsnap-api/config"
	"github.com/andrewpaige1/flipsnap-api/mastery"
	"github.com/andrewpaige1/flipsnap-api/notice"
	"github.com/andrewpaige1/flipsnap-api/store"
)

func newReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute the mastery of every folder once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := config.Connect(cfg.Database)
			if err != nil {
				return fmt.Errorf("config.Connect() > %w", err)
			}

			aggregator := mastery.NewAggregator(store.New(db), notice.NewBoard())
			updated, err := aggregator.RecomputeAll(cmd.Context())
			slog.Default().Info("reconciled folder mastery", slog.Int("updated", updated))
			if err != nil {
				return fmt.Errorf("aggregator.RecomputeAll() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d folders\n", updated)
			return nil
		},
	}
}
