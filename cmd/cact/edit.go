package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raveit65/caja-actions/factory"
	"github.com/raveit65/caja-actions/items"
	"github.com/spf13/cobra"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		label      string
		path       string
		parameters string
		children   []string
	)

	cmd := &cobra.Command{
		Use:       "new action|menu ID",
		Short:     "Create an action or a menu",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"action", "menu"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.store.Load(); err != nil {
				return err
			}

			id := args[1]
			if _, ok := a.store.Item(id); ok {
				return fmt.Errorf("item %s already exists", id)
			}

			var item items.Item
			switch args[0] {
			case "action":
				action := items.NewAction(id)
				profile := items.NewProfile("")
				if err := factory.SetFromString(profile, items.FieldPath, path); err != nil {
					return err
				}
				if err := factory.SetFromString(profile, items.FieldParameters, parameters); err != nil {
					return err
				}
				action.AddProfile(profile)
				item = action

			case "menu":
				menu := items.NewMenu(id)
				for _, childID := range children {
					child, ok := a.store.Item(childID)
					if !ok {
						return fmt.Errorf("no item %s", childID)
					}
					menu.AddChild(child)
				}
				item = menu

			default:
				return fmt.Errorf("unknown item type %q, expected action or menu", args[0])
			}

			item.SetLabel(label)
			if !factory.IsValid(item) {
				a.logger.Warn().Str("id", id).Msg("the new item is not valid")
			}

			if err := a.store.Save(item); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.store.Path(item))
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "label of the item")
	cmd.Flags().StringVar(&path, "path", "", "command of the action")
	cmd.Flags().StringVar(&parameters, "parameters", "", "parameters of the command of the action")
	cmd.Flags().StringSliceVar(&children, "child", nil, "id of a child of the menu; repeatable")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:   "set ID FIELD=VALUE...",
		Short: "Set data of an item or of one of its profiles",
		Long: `Set data of an item, or of one of the profiles of an action with --profile.
Values are given in their text form: true/false for booleans, and
semicolon separated lists such as "text/plain;image/png;".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.load(args[0])
			if err != nil {
				return err
			}

			var target factory.Object = item
			if profileID != "" {
				action, ok := item.(*items.Action)
				if !ok {
					return fmt.Errorf("%s is not an action", item.ID())
				}

				profile := action.Profile(profileID)
				if profile == nil {
					return fmt.Errorf("action %s has no profile %s", item.ID(), profileID)
				}
				target = profile
			}

			for _, assignment := range args[1:] {
				name, value, ok := strings.Cut(assignment, "=")
				if !ok {
					return fmt.Errorf("invalid assignment %q, expected FIELD=VALUE", assignment)
				}

				if err := factory.SetFromString(target, name, value); err != nil {
					if errors.Is(err, factory.ErrUnknownField) {
						return fmt.Errorf("%s has no field %s", target.Class().Name, name)
					}
					return err
				}
			}

			if !factory.IsValid(item) {
				a.logger.Warn().Str("id", item.ID()).Msg("the item is not valid")
			}

			return a.store.Save(item)
		},
	}

	cmd.Flags().StringVarP(&profileID, "profile", "p", "", "id of the profile to edit")
	return cmd
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy ID NEW-ID",
		Short: "Copy an item under a new id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.load(args[0])
			if err != nil {
				return err
			}

			if _, ok := a.store.Item(args[1]); ok {
				return fmt.Errorf("item %s already exists", args[1])
			}

			dup, err := items.Duplicate(source)
			if err != nil {
				return err
			}
			dup.SetID(args[1])

			if err := a.store.Save(dup); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.store.Path(dup))
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			item, err := a.load(args[0])
			if err != nil {
				return err
			}

			return a.store.Delete(item)
		},
	}
}
