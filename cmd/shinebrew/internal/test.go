package internal

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lizardbyte/shinebrew/internal/formulas"
	"github.com/lizardbyte/shinebrew/internal/selftest"
	"github.com/lizardbyte/shinebrew/internal/toolchain"
)

var testFlags runFlags

var testCmd = &cobra.Command{
	Use:   "test [formula]",
	Short: "Run the installed formula's self-test",
	Long: `Test runs the installed binary with --version and, when the formula ships
one, the unit test binary. It passes when every command exits zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTest,
}

func init() {
	testFlags.register(testCmd)
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	req, err := testFlags.request(cfg, args)
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

	rep := selftest.Run(cmd.Context(), toolchain.New(), f, prefix)
	for _, res := range rep.Results {
		if res.Passed() {
			color.Green(" ✔ %s", res.Name)
			continue
		}
		color.Red(" ✘ %s (exit status %d)", res.Name, res.Status)
	}
	return rep.Err()
}
