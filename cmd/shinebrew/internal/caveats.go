package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lizardbyte/shinebrew/internal/caveat"
	"github.com/lizardbyte/shinebrew/internal/formulas"
)

var caveatsFlags runFlags

var caveatsCmd = &cobra.Command{
	Use:   "caveats [formula]",
	Short: "Print post-install notes for the target platform",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCaveats,
}

func init() {
	caveatsFlags.register(caveatsCmd)
	rootCmd.AddCommand(caveatsCmd)
}

func runCaveats(cmd *cobra.Command, args []string) error {
	req, err := caveatsFlags.request(cfg, args)
	if err != nil {
		return err
	}
	f, ok := formulas.Lookup(req.Formula)
	if !ok {
		return fmt.Errorf("no formula named %q", req.Formula)
	}
	prefix, err := installedPrefix(req, f)
	if err != nil {
		return err
	}
	return caveat.Print(cmd.OutOrStdout(), caveat.Report(f, req.Platform, prefix))
}
