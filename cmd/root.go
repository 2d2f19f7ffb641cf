package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool
var randomSeed int64

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcmcbugs",
	Short: "A small Metropolis-Hastings sampler for hand-built probabilistic models",
	Long: `mcmcbugs runs a random-walk Metropolis sampler over a node-graph
probabilistic model, with adaptive per-coordinate proposal tuning.

Among other features:

  - A library of distribution log-densities (Normal, Uniform, Gamma,
    Beta, Bernoulli, Binomial, Poisson, Exponential, Categorical,
    Multivariate Normal, Wishart)
  - Constrained-support jump policies for bounded and positive-definite
    parameters
  - A demo scenario runnable via the run subcommand
`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(graphCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
