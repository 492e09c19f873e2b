package cli

import (
	"fmt"
	"strconv"

	"github.com/Swochhanda14/frontbooth/forms"
	"github.com/Swochhanda14/frontbooth/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bundled forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0, len(forms.Names()))
		for _, name := range forms.Names() {
			def, err := definition(cmd.Context(), name, "")
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				name,
				def.Title,
				def.Mode.String(),
				strconv.Itoa(len(def.Fields)),
				strconv.Itoa(len(def.Groups)),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"FORM", "TITLE", "MODE", "FIELDS", "ARRAYS"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
