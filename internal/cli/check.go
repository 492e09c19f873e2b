package cli

import (
	"fmt"

	"github.com/Swochhanda14/frontbooth/form"
	"github.com/Swochhanda14/frontbooth/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [form]",
	Short: "Validate a file of answers against a form and submit it",
	Long: `Check loads answers from a YAML file, applies them to the form in key order
and submits. Valid submissions are printed as YAML; otherwise every failing
field is listed and the command fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	opts := []form.Option{form.WithSink(yamlSink(cmd.OutOrStdout()))}
	if verbose {
		opts = append(opts, form.WithSurface(&ui.Printer{Out: cmd.ErrOrStderr(), Verbose: true}))
	}
	f, err := mountForm(cmd.Context(), name, mustGetString(cmd, "schema"), opts...)
	if err != nil {
		return err
	}

	values, err := readValues(mustGetString(cmd, "values"))
	if err != nil {
		return err
	}
	if err := applyValues(f, values); err != nil {
		return err
	}

	if _, appErr := f.Submit(); appErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.ErrorBadge.Render("BLOCKED"), ui.MutedStyle.Render(appErr.Message))
		fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderErrors(f.Errors()))
		return ErrBlocked
	}
	return nil
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func init() {
	checkCmd.Flags().String("values", "", "YAML file with the answers")
	checkCmd.Flags().String("schema", "", "Schema document to use instead of a bundled form")
	_ = checkCmd.MarkFlagRequired("values")
	rootCmd.AddCommand(checkCmd)
}
