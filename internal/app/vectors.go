package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/ui"
	"github.com/agbru/limbcalc/internal/vectors"
	"github.com/agbru/limbcalc/internal/verify"
)

// maxListedFailures bounds the failures printed per file.
const maxListedFailures = 10

func (a *Application) newVectorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Run or generate CSV test vector files",
	}
	cmd.AddCommand(a.newVectorsRunCmd(), a.newVectorsGenCmd())
	return cmd
}

func (a *Application) newVectorsRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>...",
		Short: "Check the engine against vector files",
		Long: `Each file holds "a,b,expected" lines in decimal. The operation is taken
from the file name: add_test.csv, sub_test.csv, mul_test.csv, div_test.csv
or rem_test.csv.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runVectors,
	}
}

func (a *Application) runVectors(cmd *cobra.Command, args []string) error {
	ctx, stop := a.lifecycle(cmd.Context())
	defer stop()

	failed := 0
	for _, path := range args {
		rep, err := vectors.RunFile(ctx, a.Engine, path)
		if err != nil {
			return a.timeoutError("vectors", err)
		}
		a.printReport(path, rep)
		failed += len(rep.Failures)
	}
	if failed > 0 {
		return fmt.Errorf("%d vector(s) failed", failed)
	}
	return nil
}

func (a *Application) printReport(path string, rep vectors.Report) {
	name := filepath.Base(path)
	if rep.OK() {
		if !a.Config.Quiet {
			fmt.Fprintf(a.Out, "%sPASS%s %s (%s vectors)\n", ui.ColorGreen(), ui.ColorReset(), name, format.Count(rep.Total))
		}
		return
	}
	fmt.Fprintf(a.Out, "%sFAIL%s %s (%s/%s passed)\n", ui.ColorRed(), ui.ColorReset(), name,
		format.Count(rep.Passed), format.Count(rep.Total))
	for i, f := range rep.Failures {
		if i == maxListedFailures {
			fmt.Fprintf(a.Out, "  ... %d more\n", len(rep.Failures)-i)
			break
		}
		a.printFailure(rep.Op, f)
	}
}

func (a *Application) printFailure(op verify.Op, f vectors.Failure) {
	short := func(s string) string {
		s, _ = format.Truncate(s, 60, 20)
		return s
	}
	expr := fmt.Sprintf("%s %s %s", short(f.A), op.Symbol(), short(f.B))
	if f.Err != nil {
		fmt.Fprintf(a.Out, "  line %d: %s: %v\n", f.Line, expr, f.Err)
		return
	}
	fmt.Fprintf(a.Out, "  line %d: %s = %s, want %s\n", f.Line, expr, short(f.Got), short(f.Expected))
}

func (a *Application) newVectorsGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write random vectors with expected values from math/big",
		Args:  cobra.NoArgs,
		RunE:  a.runVectorsGen,
	}
	cmd.Flags().String("op", string(verify.OpMul), "operation: add, sub, mul, div or rem")
	cmd.Flags().Int("count", 100, "number of vectors")
	cmd.Flags().Int("digits", 40, "operand magnitude bound in decimal digits")
	cmd.Flags().Uint64("seed", 1, "random seed")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *Application) runVectorsGen(cmd *cobra.Command, _ []string) error {
	opName, _ := cmd.Flags().GetString("op")
	op, err := verify.ParseOp(opName)
	if err != nil {
		return apperrors.ValidationError{Field: "op", Message: err.Error()}
	}
	var opts vectors.GenerateOptions
	opts.Count, _ = cmd.Flags().GetInt("count")
	opts.Digits, _ = cmd.Flags().GetInt("digits")
	opts.Seed, _ = cmd.Flags().GetUint64("seed")
	if opts.Count < 0 || opts.Digits < 1 {
		return apperrors.ValidationError{Field: "count", Message: "count must be >= 0 and digits >= 1"}
	}

	var w io.Writer = a.Out
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return vectors.Generate(w, op, opts)
}
