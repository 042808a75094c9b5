// SPDX-License-Identifier: MIT

// Command pmx renders predictive-multiplicity experiments.
//
//	pmx xor        -c pmx.yaml
//	pmx xor-series --format pdf
//	pmx diag       --seed 7
//	pmx fit        --sampling uniform --samples 200
//	pmx linkpred   --seed 3 > table.tex
//	pmx legend     --format svg
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var flags *pflag.FlagSet

var (
	cfgPathFlag     string
	epsilonFlag     float64
	targetFlag      int
	maxAttemptsFlag int
	seedFlag        int64
	samplesFlag     int
	samplingFlag    string
	resampleFlag    string
	outputFlag      string
	formatFlag      string
	ringFlag        bool
	exactFlag       bool
	kFlag           int
)

func init() {
	resetFlags()
}

// resetFlags rebuilds the shared flag set; flag names double as config keys.
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&cfgPathFlag, "config", "c", "", "config file (default: pmx.yaml in $PMX_CFG_PATH or .)")
	flags.Float64Var(&epsilonFlag, "epsilon", 0.1, "accuracy tolerance of the epsilon set")
	flags.IntVar(&targetFlag, "target_count", 3, "epsilon set members to collect")
	flags.IntVar(&maxAttemptsFlag, "max_attempts", 100, "candidates to try")
	flags.Int64Var(&seedFlag, "seed", 1, "random seed")
	flags.IntVar(&samplesFlag, "samples", 100, "dataset size")
	flags.StringVar(&samplingFlag, "sampling", "mesh", "dataset sampling: mesh, uniform or diag")
	flags.StringVar(&resampleFlag, "resample", "bootstrap", "member refits: bootstrap or none")
	flags.StringVarP(&outputFlag, "output_dir", "o", ".", "figure directory")
	flags.StringVar(&formatFlag, "format", "png", "figure format: png, pdf, svg or eps")
	flags.BoolVar(&ringFlag, "glyph.ring", false, "draw the ground truth ring")
	flags.BoolVar(&exactFlag, "svm.exact", false, "refit the baseline bias on its support vectors")
	flags.IntVar(&kFlag, "kg.k", 3, "hits@k cut-off")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

var mainCmd = &cobra.Command{
	Use:          "pmx",
	Short:        "predictive multiplicity experiments",
	SilenceUsage: true,
}

func main() {
	mainCmd.AddCommand(xorCMD(), xorSeriesCMD(), diagCMD(), fitCMD(), linkpredCMD(), legendCMD())

	if mainCmd.Execute() != nil {
		os.Exit(1)
	}
}
