package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lizardbyte/shinebrew/internal/catalog"
	"github.com/lizardbyte/shinebrew/internal/formulas"
)

var (
	depsFlags runFlags
	depsKind  string
)

var depsCmd = &cobra.Command{
	Use:   "deps [formula]",
	Short: "List dependencies for the target platform",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDeps,
}

func init() {
	depsFlags.register(depsCmd)
	depsCmd.Flags().StringVar(&depsKind, "kind", "all", "Dependency kind: build, runtime, recommended or all")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) error {
	req, err := depsFlags.request(cfg, args)
	if err != nil {
		return err
	}
	kinds, err := catalog.ParseKind(depsKind)
	if err != nil {
		return err
	}
	f, ok := formulas.Lookup(req.Formula)
	if !ok {
		return fmt.Errorf("no formula named %q", req.Formula)
	}
	cat, err := catalog.New(f.Deps)
	if err != nil {
		return err
	}
	for _, d := range cat.DependenciesFor(req.Platform, kinds) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", d.Name, d.Kind)
	}
	return nil
}
