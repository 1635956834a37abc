package internal

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lizardbyte/shinebrew/internal/caveat"
)

var installFlags runFlags

var installCmd = &cobra.Command{
	Use:   "install [formula] [option...]",
	Short: "Build and install a Sunshine variant",
	Long: `Install resolves options for the target platform, checks their requirements,
then configures, compiles and installs the formula from the source checkout.

Options may be given as --with NAME, --without NAME, -o NAME=BOOL or as extra
arguments such as with-docs or static-boost=false.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInstall,
}

func init() {
	installFlags.register(installCmd)
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	req, err := installFlags.request(cfg, args)
	if err != nil {
		return err
	}
	e, closeLog, err := newEngine(req, req.Formula)
	if err != nil {
		return err
	}
	defer closeLog()

	out, err := e.Install(cmd.Context(), req)
	if err != nil {
		return err
	}

	color.Green(" ✔ installed %s %s to %s (%s)\n\n", out.Formula.Name, out.Formula.Version, out.Result.Prefix, out.Result.Elapsed.Round(time.Millisecond))
	return caveat.Print(cmd.OutOrStdout(), out.Caveats)
}
