package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update NAME AGE [SCORE]...",
	Short: "Replace a record's age and scores",
	Long: `roster update command.

The update command replaces the age and scores of the first record
matching the given name. The record keeps its name and position.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")

		age, scores, err := parseAgeScores(args[1:])
		if err != nil {
			return err
		}

		data, err := json.Marshal(recordBody{Age: age, Scores: scores})
		if err != nil {
			return err
		}

		u := fmt.Sprintf("http://%s/records/%s", server, url.PathEscape(args[0]))
		req, err := http.NewRequest(http.MethodPut, u, bytes.NewBuffer(data))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
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
		fmt.Printf("Record %q updated.\n", rec.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
