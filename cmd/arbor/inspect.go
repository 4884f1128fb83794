package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the structure of a blueprint's module tree",
	Long:  `Builds the module tree described by FILE and prints it as an indented tree, a markdown table or a Mermaid diagram.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.InspectOptions{Path: args[0], Banner: true}
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")
		opts.Init, _ = cmd.Flags().GetBool("init")
		opts.Filter, _ = cmd.Flags().GetString("filter")
		opts.Eval, _ = cmd.Flags().GetBool("eval")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts.Seed = &seed
		}

		if err := cli.RunInspect(os.Stdout, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("init", false, "Initialize the tree before printing")
	inspectCmd.Flags().Int64("seed", 0, "Seed for --init (default: the blueprint seed)")
	inspectCmd.Flags().String("filter", "", "Keep only leaves of these kinds (e.g. parameter,state)")
	inspectCmd.Flags().Bool("eval", false, "Switch the tree to eval mode")
	inspectCmd.Flags().StringP("format", "f", "repr", "Output format: repr, table or graph")
	inspectCmd.Flags().Bool("plain", false, "Disable colours and markdown rendering")
}
