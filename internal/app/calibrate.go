package app

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agbru/limbcalc/internal/calibration"
	"github.com/agbru/limbcalc/internal/cli"
	"github.com/agbru/limbcalc/internal/tui"
	"github.com/agbru/limbcalc/internal/ui"
)

func (a *Application) newCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure the fastest Karatsuba and parallel thresholds",
		Long: `Benchmark multiplication for the configured limb base at a range of
Karatsuba cutoffs, then at a range of parallel thresholds, and save the
winners to the calibration profile. Later runs with the same limb base
pick them up when no threshold is given on the command line or in the
environment. Calibration is not bounded by --timeout.`,
		Args: cobra.NoArgs,
		RunE: a.runCalibrate,
	}
	cmd.Flags().Bool("quick", false, "test fewer candidates")
	cmd.Flags().Int("limbs", calibration.DefaultKaratsubaLimbs, "operand length for the Karatsuba stage")
	cmd.Flags().Bool("no-save", false, "do not write the profile")
	cmd.Flags().Bool("tui", false, "show a live dashboard while calibrating")
	return cmd
}

func (a *Application) runCalibrate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	quick, _ := cmd.Flags().GetBool("quick")
	limbs, _ := cmd.Flags().GetInt("limbs")
	noSave, _ := cmd.Flags().GetBool("no-save")
	opts := calibration.Options{
		Base:           a.Config.Base(),
		KaratsubaLimbs: limbs,
		Quick:          quick,
		Logger:         a.Logger,
	}

	if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
		outcome, err := tui.Run(ctx, cmd.InOrStdin(), a.Out, opts)
		if err != nil {
			return err
		}
		return a.reportCalibration(outcome.Profile, outcome.Karatsuba, outcome.Parallel, !noSave)
	}

	spin := cli.NewSpinner(a.ErrWriter, "Calibrating...", !a.Config.Quiet)
	spin.Start()
	opts.Progress = func(stage string, step, total int) {
		spin.UpdateSuffix(fmt.Sprintf(" Calibrating %s: %d/%d", stage, step, total))
	}
	p, kResults, pResults, err := calibration.Calibrate(ctx, opts)
	spin.Stop()
	if err != nil {
		return err
	}
	return a.reportCalibration(p, kResults, pResults, !noSave)
}

func (a *Application) reportCalibration(p *calibration.CalibrationProfile, kResults, pResults []calibration.Result, save bool) error {
	if !a.Config.Quiet {
		calibration.PrintResults(a.Out, "Karatsuba", kResults, p.OptimalKaratsubaThreshold)
		calibration.PrintResults(a.Out, "Parallel", pResults, p.OptimalParallelThreshold)
		fmt.Fprintln(a.Out)
	}
	calibration.PrintProfile(a.Out, p)
	if !save {
		return nil
	}
	path := a.Config.CalibrationProfile
	if path == "" {
		path = calibration.GetDefaultProfilePath()
	}
	if err := p.SaveProfile(path); err != nil {
		return fmt.Errorf("saving calibration profile: %w", err)
	}
	if !a.Config.Quiet {
		fmt.Fprintf(a.Out, "%s✓ Profile saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
	}
	return nil
}
