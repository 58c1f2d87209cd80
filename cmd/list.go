package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records",
	Long: `roster list command.

The list command prints every record in insertion order, with its
computed average.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")

		url := fmt.Sprintf("http://%s/records", server)
		resp, err := http.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return decodeError(resp)
		}

		var records []record
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No records in the store.")
			return nil
		}
		for _, rec := range records {
			printRecord(rec)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
