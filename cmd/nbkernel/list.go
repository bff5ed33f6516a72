package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved notebooks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		k := newKernel(cmd)

		res := k.Engine().ListNotebooks()
		if !res.Success {
			fmt.Fprintf(os.Stderr, "Error: %s\n", res.Message)
			os.Exit(1)
		}
		for _, name := range res.Notebooks {
			fmt.Println(name)
		}
		if res.Count == 0 {
			fmt.Println("No saved notebooks.")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
