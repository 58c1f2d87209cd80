package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "View a record by name",
	Long: `roster get command.

The get command looks up the first record matching the given name.
Matching is case-insensitive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")

		u := fmt.Sprintf("http://%s/records/%s", server, url.PathEscape(args[0]))
		resp, err := http.Get(u)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return decodeError(resp)
		}

		var rec record
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return err
		}
		printRecord(rec)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
