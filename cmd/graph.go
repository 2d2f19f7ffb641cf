package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// graphCmd prints a Graphviz description of the demo scenario's node
// dependency structure: stochastic and deterministic graph members as
// nodes, edges from Model.Depends.
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a Graphviz dot description of the demo scenario's node graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		mod, err := buildDemoScenario()
		if err != nil {
			return err
		}

		fmt.Println("strict digraph G {")

		for _, s := range mod.Stochastics() {
			shape := "ellipse"
			if s.Observed() {
				shape = "box"
			}
			fmt.Printf("    %q [shape=%s];\n", s.Name(), shape)
		}
		for _, d := range mod.Deterministics() {
			fmt.Printf("    %q [shape=diamond];\n", d.Name())
		}

		for _, e := range mod.Edges() {
			fmt.Printf("    %q -> %q;\n", e[0], e[1])
		}

		fmt.Println("}")

		return nil
	},
}
