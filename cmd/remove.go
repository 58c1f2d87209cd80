package cmd

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Delete a record by name",
	Long: `roster remove command.

The remove command deletes the first record matching the given name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")

		u := fmt.Sprintf("http://%s/records/%s", server, url.PathEscape(args[0]))
		req, err := http.NewRequest(http.MethodDelete, u, nil)
		if err != nil {
			return err
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			return decodeError(resp)
		}

		fmt.Printf("Record %q deleted.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
