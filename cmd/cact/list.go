package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/raveit65/caja-actions/boxed"
	"github.com/raveit65/caja-actions/factory"
	"github.com/raveit65/caja-actions/items"
	"github.com/spf13/cobra"
)

func renderTable(w io.Writer, data pterm.TableData) error {
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).
		WithWriter(w).
		WithData(data).
		Render()
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the actions and menus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := a.store.Load()
			if err != nil {
				return err
			}

			if len(loaded) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No item in %v\n", a.store.Dirs())
				return nil
			}

			data := pterm.TableData{{"ID", "Type", "Label", "Enabled", "Readonly", "Valid"}}
			for _, item := range loaded {
				data = append(data, []string{
					item.ID(),
					item.Type(),
					item.Label(),
					strconv.FormatBool(item.IsEnabled()),
					strconv.FormatBool(item.IsReadonly()),
					strconv.FormatBool(factory.IsValid(item)),
				})
			}

			return renderTable(cmd.OutOrStdout(), data)
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show the data of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.load(args[0])
			if err != nil {
				return err
			}

			if dump {
				factory.Dump(item)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n", item.Type(), item.ID(), a.store.Path(item))
			if err := renderTable(out, fields(item)); err != nil {
				return err
			}

			switch o := item.(type) {
			case *items.Action:
				for _, profile := range o.Profiles() {
					if dump {
						factory.Dump(profile)
					}

					fmt.Fprintf(out, "\nProfile %s\n", profile.ID())
					if err := renderTable(out, fields(profile)); err != nil {
						return err
					}
				}
			case *items.Menu:
				fmt.Fprintf(out, "\nChildren: %v\n", o.ChildIDs())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "also log the attached data at debug level")
	return cmd
}

// fields returns the set data of obj in the order of its class.
func fields(obj factory.Object) pterm.TableData {
	data := pterm.TableData{{"Field", "Value", "Default"}}

	for _, def := range obj.Class().Defs() {
		if def.Kind == boxed.KindPointer {
			continue
		}

		attached := obj.Data().Get(def.Name)
		if attached == nil || !attached.Value().IsSet() {
			continue
		}

		data = append(data, []string{
			def.Name,
			attached.Value().String(),
			strconv.FormatBool(attached.IsDefault()),
		})
	}

	return data
}
