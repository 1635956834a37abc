package internal

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lizardbyte/shinebrew/internal/engine"
)

var planFlags runFlags

var planCmd = &cobra.Command{
	Use:   "plan [formula] [option...]",
	Short: "Show what install would run without running it",
	Long: `Plan resolves options, checks requirements and prints the CMake definitions,
environment and steps an install would use. Nothing is built.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	req, err := planFlags.request(cfg, args)
	if err != nil {
		return err
	}
	e, closeLog, err := newEngine(req, req.Formula)
	if err != nil {
		return err
	}
	defer closeLog()

	out, err := e.Plan(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writePlan(cmd.OutOrStdout(), out)
}

func writePlan(w io.Writer, out *engine.Outcome) error {
	head := color.New(color.Bold).Sprint
	p := out.Plan

	for _, n := range p.Notes() {
		fmt.Fprintln(w, color.BlueString("==>"), n)
	}
	fmt.Fprintf(w, "%s %s %s (%s)\n", head("formula:"), out.Formula.Name, out.Formula.Version, p.Platform())
	fmt.Fprintf(w, "%s %s\n", head("options:"), out.Options)
	fmt.Fprintf(w, "%s %s\n", head("prefix:"), p.Prefix())
	fmt.Fprintf(w, "%s %s\n", head("matrix:"), p.Matrix())

	fmt.Fprintln(w, head("flags:"))
	for _, arg := range p.Args() {
		fmt.Fprintf(w, "  %s\n", arg)
	}
	env := p.Env()
	fmt.Fprintln(w, head("env:"))
	for _, k := range p.EnvKeys() {
		fmt.Fprintf(w, "  %s=%s\n", k, env[k])
	}
	fmt.Fprintln(w, head("steps:"))
	for i, s := range out.Steps {
		fmt.Fprintf(w, "  %d. %-20s %s\n", i+1, s.Name, s.Cmd)
	}
	_, err := fmt.Fprintln(w)
	return err
}
