package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed variants",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	for _, name := range reg.Variants() {
		e, _ := reg.Get(name)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%s] %s\n", e.Name, e.Version, e.Matrix, e.Prefix)
	}
	return nil
}
