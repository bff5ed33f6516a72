package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/nbkernel/persist"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <notebook>",
	Short: "Export a saved notebook to Go source or Markdown",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		k := newKernel(cmd)

		loaded, err := k.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !loaded.Loaded {
			fmt.Fprintf(os.Stderr, "Error: %s\n", loaded.Message)
			os.Exit(1)
		}

		format, _ := cmd.Flags().GetString("format")
		res, err := k.Export(args[0], persist.ExportFormat(format))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !res.Exported {
			fmt.Fprintf(os.Stderr, "Error: %s\n", res.Message)
			os.Exit(1)
		}
		fmt.Println(res.Message)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "go", "Export format: go, md or json")
}
