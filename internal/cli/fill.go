package cli

import (
	"fmt"

	"github.com/Swochhanda14/frontbooth/errors"
	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/internal/ui"
	"github.com/spf13/cobra"
)

var fillCmd = &cobra.Command{
	Use:   "fill [form]",
	Short: "Fill in a form interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return fmt.Errorf("fill needs a terminal, use check with a values file instead")
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		printer := ui.NewPrinter(cmd.OutOrStdout())
		printer.Verbose = verbose
		f, err := mountForm(cmd.Context(), name, mustGetString(cmd, "schema"),
			form.WithSurface(printer),
			form.WithSink(yamlSink(cmd.OutOrStdout())),
		)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.HeaderStyle.Render(titleOf(f.Definition())))
		if _, err := ui.NewPrompter(f).Fill(); err != nil {
			if errors.HasCode(err, errors.CodeValidationFailed) {
				return ErrBlocked
			}
			return err
		}
		return nil
	},
}

func titleOf(def form.Definition) string {
	if def.Title != "" {
		return def.Title
	}
	return def.Name
}

func init() {
	fillCmd.Flags().String("schema", "", "Schema document to use instead of a bundled form")
	rootCmd.AddCommand(fillCmd)
}
