package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add NAME AGE [SCORE]...",
	Short: "Add a new record",
	Long: `roster add command.

The add command creates a new record on the server. Age must be a positive
integer and every score must lie between 0 and 100.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")

		age, scores, err := parseAgeScores(args[1:])
		if err != nil {
			return err
		}

		data, err := json.Marshal(recordBody{Name: args[0], Age: age, Scores: scores})
		if err != nil {
			return err
		}

		url := fmt.Sprintf("http://%s/records", server)
		resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			return decodeError(resp)
		}

		var rec record
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return err
		}
		fmt.Printf("Record %q added.\n", rec.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
