package store

// Config holds configuration for the DynamoDB backend.
type Config struct {
	// Table is the DynamoDB table name.
	// Default: "roster_records"
	Table string

	// Partition is the constant partition key value under which all
	// records are stored. Records sort by a numeric insertion sequence
	// within the partition. A single partition is sufficient for the
	// small collections this store targets.
	// Default: "ROSTER"
	Partition string
}

// DefaultConfig returns sensible defaults for small datasets.
func DefaultConfig() Config {
	return Config{
		Table:     "roster_records",
		Partition: "ROSTER",
	}
}

// validate ensures config values are usable, filling in defaults.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = "roster_records"
	}
	if c.Partition == "" {
		c.Partition = "ROSTER"
	}
}
