// Command cartpoleql trains tabular Q-learning agents to balance a
// co-simulated cart-pole
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCommand returns the cartpoleql command with all of its
// subcommands
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cartpoleql",
		Short: "Discretized-state Q-learning on a co-simulated cart-pole",
		Long: "cartpoleql trains tabular Q-learning agents on a cart-pole " +
			"whose state is\ndiscretized into 10^4 states. Configuration " +
			"is read from a YAML file and\nCARTPOLE_ environment variables.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "",
		"configuration file (default ./cartpoleql.yaml if present)")

	root.AddCommand(TrainCommand())
	root.AddCommand(ConfigCommand())
	return root
}

func main() {
	if err := RootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
