package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// record mirrors the API's JSON response shape.
type record struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Age     int       `json:"age"`
	Scores  []float64 `json:"scores"`
	Average float64   `json:"average"`
}

// recordBody mirrors the API's JSON request shape.
type recordBody struct {
	Name   string    `json:"name"`
	Age    int       `json:"age"`
	Scores []float64 `json:"scores"`
}

// parseAgeScores parses command arguments of the form: AGE [SCORE]...
func parseAgeScores(args []string) (int, []float64, error) {
	age, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("age must be an integer, got %q", args[0])
	}

	scores := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return 0, nil, fmt.Errorf("score must be a number, got %q", arg)
		}
		scores = append(scores, v)
	}
	return age, scores, nil
}

// decodeError extracts the error message from an API error body.
func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return fmt.Errorf("%s", body.Error)
}

// printRecord writes one record in the list/view format.
func printRecord(r record) {
	scores := make([]string, len(r.Scores))
	for i, v := range r.Scores {
		scores[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	fmt.Printf("Name: %s, Age: %d, Scores: [%s], Average: %.2f\n",
		r.Name, r.Age, strings.Join(scores, " "), r.Average)
}
