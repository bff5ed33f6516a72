package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <notebook>",
	Short: "Execute every code cell of a saved notebook",
	Long: `Loads the named notebook from the notebook directory, executes its code
cells top to bottom against a fresh interpreter, and prints each cell's
output. Execution continues past failing cells.`,
	Args: cobra.ExactArgs(1),
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
		fmt.Println(loaded.Message)

		res, err := k.ExecuteAll(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, cell := range res.Results {
			fmt.Printf("--- cell %d [%d] ---\n", cell.Index, cell.ExecutionCount)
			if cell.Stdout != "" {
				fmt.Print(cell.Stdout)
			}
			if cell.Result != nil {
				fmt.Printf("=> %v\n", cell.Result)
			}
			if cell.Error != "" {
				fmt.Printf("error: %s\n", cell.Error)
			}
		}
		fmt.Println(res.Message)

		if save, _ := cmd.Flags().GetBool("save"); save {
			saved, err := k.Save(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(saved.Message)
		}

		if !res.Executed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("save", false, "Write execution counts and outputs back to the notebook file")
}
