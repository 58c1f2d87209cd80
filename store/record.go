package store

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Record is a single stored entry: a name used as the lookup key, an age,
// and an ordered list of scores. ID, CreatedAt, UpdatedAt and Version are
// managed by the store and must not be set by callers.
type Record struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Age       int       `json:"age" dynamodbav:"age"`
	Scores    []float64 `json:"scores" dynamodbav:"scores"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
	Version   int64     `json:"version" dynamodbav:"version"`
}

// NewRecord constructs a validated record. It returns a *ValidationError
// if age is not positive or any score lies outside [0, 100]; nothing is
// partially constructed on failure.
func NewRecord(name string, age int, scores []float64) (*Record, error) {
	if err := validateFields(age, scores); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Age:       age,
		Scores:    append([]float64(nil), scores...),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}, nil
}

// validateFields checks the age and scores invariants shared by create
// and update.
func validateFields(age int, scores []float64) error {
	if age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be a positive integer"}
	}
	for _, v := range scores {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return &ValidationError{Field: "scores", Reason: "every score must lie between 0 and 100"}
		}
	}
	return nil
}

// Average returns the mean of the record's scores, or 0 when there are none.
func (r *Record) Average() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	var sum float64
	for _, v := range r.Scores {
		sum += v
	}
	return sum / float64(len(r.Scores))
}

// Clone returns a deep copy of the record. Stores hand out clones so that
// callers cannot mutate stored state and bypass validation.
func (r *Record) Clone() *Record {
	c := *r
	c.Scores = append([]float64(nil), r.Scores...)
	return &c
}
