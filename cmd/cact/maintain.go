package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/raveit65/caja-actions/factory"
	"github.com/raveit65/caja-actions/watch"
	"github.com/raveit65/caja-actions/yamlstore"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report the items which cannot be shown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := a.store.Load()
			if err != nil {
				return err
			}

			data := pterm.TableData{{"ID", "Type", "Path"}}
			for _, item := range loaded {
				if !factory.IsValid(item) {
					data = append(data, []string{item.ID(), item.Type(), a.store.Path(item)})
				}
			}

			out := cmd.OutOrStdout()
			if len(data) == 1 {
				fmt.Fprintf(out, "All %d items are valid\n", len(loaded))
				return nil
			}

			if err := renderTable(out, data); err != nil {
				return err
			}

			return fmt.Errorf("%d of %d items are not valid", len(data)-1, len(loaded))
		},
	}
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite the writable items in the current format",
		Long: `Rewrite every writable item. Actions stored before profiles existed
are converted on load, migrate stores them converted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := a.store.Load()
			if err != nil {
				return err
			}

			saved := 0
			for _, item := range loaded {
				if item.IsReadonly() {
					a.logger.Debug().Str("id", item.ID()).Msg("skipping readonly item")
					continue
				}

				if err := a.store.Save(item); err != nil {
					return err
				}
				saved++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d items\n", saved)
			return nil
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the store whenever its documents change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reload := func() {
				loaded, err := a.store.Load()
				if err != nil {
					a.logger.Error().Err(err).Msg("reload failed")
					return
				}
				a.logger.Info().Int("items", len(loaded)).Msg("store reloaded")
			}

			reload()

			w := watch.New(a.store.Dirs(), yamlstore.Ext, a.config.WatchDelay, a.logger, reload)
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()
			return nil
		},
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
