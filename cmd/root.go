package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "roster manages validated records over a pluggable store",
	Long: `roster keeps ordered records of names, ages and scores.

Run a server with "roster serve", then manage records with the add, get,
list, update and remove subcommands.`,
}

// Execute runs the root command. It is called once, from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("server", "s", "localhost:5555", "Server to talk to")
}
