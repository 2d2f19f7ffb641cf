package cmd

import (
	"fmt"

	"github.com/CraigKelly/mcmcbugs/rand"
	"github.com/CraigKelly/mcmcbugs/sampler"
	"github.com/spf13/cobra"
)

var iterations int
var burnIn int
var adaptEvery int
var thin int
var monitorAddr string

// runCmd builds the demo scenario, burns in a chain, samples it, and
// prints the posterior mean of every sampled node plus its final
// acceptance ratio.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo scenario's Metropolis sampler and print posterior means",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := rand.NewGenerator(randomSeed)
		if err != nil {
			return err
		}

		mod, err := buildDemoScenario()
		if err != nil {
			return err
		}

		ch, err := sampler.NewChain(mod, gen, burnIn, adaptEvery)
		if err != nil {
			return err
		}

		var mon *monitor
		if monitorAddr != "" {
			mon = &monitor{}
			if err := mon.Start(monitorAddr); err != nil {
				return err
			}
			defer mon.Stop()
		}

		hist, err := mod.Sample(gen, iterations, 0, 0, thin)
		if err != nil {
			return err
		}

		if mon != nil {
			mon.Iterations.Set(int64(iterations))
			mon.TotalSamples.Set(ch.TotalSampleCount)
			sum, count := 0.0, 0
			for name := range ch.AcceptTrace {
				sum += ch.AcceptanceRatio(name)
				count++
			}
			if count > 0 {
				mon.MeanAcceptRatio.Set(sum / float64(count))
			}
		}

		for _, s := range mod.Stochastics() {
			if s.Observed() {
				continue
			}
			mean, err := hist.Mean(s.Name())
			if err != nil {
				return err
			}
			fmt.Printf("%-10s mean=%v accept=%.3f\n", s.Name(), mean, ch.AcceptanceRatio(s.Name()))
		}

		return nil
	},
}

func init() {
	runCmd.Flags().IntVarP(&iterations, "iterations", "n", 5000, "Number of post-burn-in samples to draw")
	runCmd.Flags().IntVarP(&burnIn, "burn", "b", 1000, "Number of burn-in iterations")
	runCmd.Flags().IntVarP(&adaptEvery, "adapt-every", "a", 50, "Iterations between proposal-scale tuning passes during burn-in")
	runCmd.Flags().IntVarP(&thin, "thin", "t", 1, "Keep every thin'th post-burn-in sample")
	runCmd.Flags().StringVarP(&monitorAddr, "monitor", "m", "", "If set, serve expvar progress over HTTP at this address (e.g. :8000)")
}
