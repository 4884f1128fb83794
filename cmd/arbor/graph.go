package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the module tree visualization",
	Long:  `Builds the blueprint and outputs a Mermaid diagram (graph TD) of its module tree.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logLevel, _ := cmd.Flags().GetString("log-level")
		filter, _ := cmd.Flags().GetString("filter")
		opts := cli.InspectOptions{Path: args[0], LogLevel: logLevel, Filter: filter, Format: "graph"}
		if err := cli.RunInspect(os.Stdout, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("filter", "", "Keep only leaves of these kinds")
}
