// Command cact manages the actions and menus of the Caja file manager.
package main

import (
	"fmt"
	"os"

	"github.com/raveit65/caja-actions/boxed"
	"github.com/raveit65/caja-actions/config"
	"github.com/raveit65/caja-actions/items"
	"github.com/raveit65/caja-actions/yamlstore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by the commands, set up before any of them runs.
type app struct {
	config *config.Config
	store  *yamlstore.Store
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		configPath string
		storeDirs  []string
		locale     string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "cact",
		Short: "Manage Caja actions and menus",
		Long: `cact lists, creates, edits and validates the actions and menus
shown by the Caja file manager in its context menu and toolbar.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if len(storeDirs) > 0 {
				cfg.StoreDirs = storeDirs
			}
			if cmd.Flags().Changed("locale") {
				cfg.Locale = locale
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.config = cfg
			a.logger = cfg.Logger(cmd.ErrOrStderr())
			log.Logger = a.logger

			if err := boxed.SetLocale(cfg.Locale); err != nil {
				a.logger.Warn().Err(err).Msg("using the root collation")
			}

			items.Register()
			a.store = yamlstore.New(cfg.StoreDirs, cfg.Locale)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (default "+config.DefaultPath()+")")
	flags.StringSliceVar(&storeDirs, "store-dir", nil, "store directory, the first one is written to; repeatable")
	flags.StringVar(&locale, "locale", "", "locale of the localized data, such as fr_FR.UTF-8")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newNewCmd(a))
	cmd.AddCommand(newSetCmd(a))
	cmd.AddCommand(newCopyCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	cmd.AddCommand(newWatchCmd(a))

	return cmd
}

// load reads the store and returns the item with the given id.
func (a *app) load(id string) (items.Item, error) {
	if _, err := a.store.Load(); err != nil {
		return nil, err
	}

	item, ok := a.store.Item(id)
	if !ok {
		return nil, fmt.Errorf("no item %s in %v", id, a.store.Dirs())
	}

	return item, nil
}
