// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/multiplicity/config"
	"github.com/katalvlaran/multiplicity/experiment"
	"github.com/katalvlaran/multiplicity/logging"
)

var (
	commonFlags   = []string{"config", "seed", "output_dir", "format", "glyph.ring"}
	epsilonFlags  = []string{"epsilon", "target_count", "max_attempts"}
	datasetFlags  = []string{"samples", "sampling", "resample", "svm.exact"}
	linkpredFlags = []string{"kg.k"}
)

// setup resolves the configuration of cmd and builds its runner. The
// returned func flushes the logger.
func setup(cmd *cobra.Command) (*experiment.Runner, func(), error) {
	flag := cmd.Flags().Lookup("config")
	if flag == nil {
		panic(fmt.Errorf("command '%s' has no config flag", cmd.Name()))
	}
	cfg, err := config.Load(flag.Value.String(), cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New("pmx."+cmd.Name(), cfg.Logging())
	if err != nil {
		return nil, nil, errors.Wrap(err, "pmx")
	}
	log.Debug("config loaded", zap.Any("config", cfg))

	return experiment.NewRunner(cfg, log), func() { _ = log.Sync() }, nil
}

func scenarioCMD(use, short string, extra []string, run func(*experiment.Runner) (*experiment.Report, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()
			rep, err := run(r)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	attachFlags(cmd, commonFlags)
	attachFlags(cmd, extra)

	return cmd
}

func xorCMD() *cobra.Command {
	return scenarioCMD("xor", "hand-built epsilon set on the XOR mesh", []string{"epsilon"},
		(*experiment.Runner).XOR)
}

func xorSeriesCMD() *cobra.Command {
	return scenarioCMD("xor-series", "step by step XOR figures, one more classifier each", []string{"epsilon"},
		(*experiment.Runner).XORSeries)
}

func diagCMD() *cobra.Command {
	return scenarioCMD("diag", "hand-built epsilon set on the diagonal border",
		[]string{"epsilon", "samples"},
		(*experiment.Runner).Diag)
}

func fitCMD() *cobra.Command {
	return scenarioCMD("fit", "Pegasos baseline with a fitted epsilon set",
		append(append([]string{}, epsilonFlags...), datasetFlags...),
		(*experiment.Runner).Fitted)
}

func linkpredCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkpred",
		Short: "toy link prediction aggregated by voting; LaTeX on stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()
			rep, err := r.LinkPrediction(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, p := range rep.Figures {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", p)
			}
			return nil
		},
	}
	attachFlags(cmd, commonFlags)
	attachFlags(cmd, linkpredFlags)

	return cmd
}

func legendCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legend",
		Short: "glyph legend figure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, done, err := setup(cmd)
			if err != nil {
				return err
			}
			defer done()
			path, err := r.Legend()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	attachFlags(cmd, commonFlags)

	return cmd
}

func printReport(w io.Writer, rep *experiment.Report) {
	fmt.Fprintf(w, "%s: baseline %s accuracy %.2f\n", rep.Scenario, rep.Baseline, rep.BaselineAccuracy)
	for i, m := range rep.Members {
		fmt.Fprintf(w, "  h%d %s accuracy %.2f\n", i+1, m, rep.Accuracies[i])
	}
	if !rep.Complete {
		fmt.Fprintf(w, "  epsilon set incomplete: %d members\n", len(rep.Members))
	}
	fmt.Fprintf(w, "  ambiguity %.2f discrepancy %.2f\n", rep.Ambiguity, rep.Discrepancy)
	for _, p := range rep.Figures {
		fmt.Fprintf(w, "  wrote %s\n", p)
	}
}
