package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <notebook>",
	Short: "Delete a saved notebook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		k := newKernel(cmd)

		res := k.Engine().DeleteNotebook(args[0])
		if !res.Deleted {
			fmt.Fprintf(os.Stderr, "Error: %s\n", res.Message)
			os.Exit(1)
		}
		fmt.Println(res.Message)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
