package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/prompt"
)

func newFormsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forms [form-id]",
		Short: "List the supported forms or print the directive for one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := forms.Builtin()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				table := tablewriter.NewWriter(out)
				table.Header("ID", "Title", "Form type", "Fields")
				for _, tpl := range registry.Templates() {
					_ = table.Append(tpl.ID, tpl.Title, tpl.FormType, fmt.Sprint(len(tpl.Fields)))
				}
				return table.Render()
			}
			if !registry.Has(args[0]) {
				return fmt.Errorf("unknown form %q, known forms: %s", args[0], strings.Join(registry.IDs(), ", "))
			}
			_, err := fmt.Fprintln(out, prompt.NewComposer(registry).Compose(args[0]))
			return err
		},
	}
}
