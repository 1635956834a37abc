package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall formula",
	Short: "Forget an installed variant",
	Long: `Uninstall removes the variant from the installed registry so a conflicting
variant can be installed. Files under the prefix are left in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	entry, ok := reg.Get(args[0])
	if !ok {
		return fmt.Errorf("%s is not installed", args[0])
	}
	if err := reg.Remove(entry.Name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "forgot %s %s; files remain in %s\n", entry.Name, entry.Version, entry.Prefix)
	return nil
}
