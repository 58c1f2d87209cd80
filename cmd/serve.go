package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/jacentio/roster/api"
	"github.com/jacentio/roster/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the record API server",
	Long: `roster serve command.

The serve command starts the HTTP record API on the chosen backend:
memory (default), bolt (a local file), or dynamo (a DynamoDB table).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		backend, _ := cmd.Flags().GetString("backend")

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		s, cleanup, err := newStore(cmd, backend)
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer cleanup()
		}

		handler := api.NewHandler(s, logger)
		logger.Info("starting server", "addr", addr, "backend", backend)
		return http.ListenAndServe(addr, handler.Router())
	},
}

// newStore builds the store for the requested backend. The returned cleanup
// function is nil for backends without resources to release.
func newStore(cmd *cobra.Command, backend string) (store.Store, func() error, error) {
	switch backend {
	case "bolt":
		file, _ := cmd.Flags().GetString("db-file")
		b, err := store.NewBolt(file, 0o600)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case "dynamo":
		table, _ := cmd.Flags().GetString("table")
		partition, _ := cmd.Flags().GetString("partition")

		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg)
		return store.NewDynamo(client, store.Config{Table: table, Partition: partition}), nil, nil
	default:
		return store.NewMemory(), nil, nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "localhost:5555", "Address to listen on")
	serveCmd.Flags().StringP("backend", "b", "memory", "Store backend: memory, bolt or dynamo")
	serveCmd.Flags().StringP("db-file", "f", "roster.db", "Database file for the bolt backend")
	serveCmd.Flags().StringP("table", "t", "roster_records", "Table name for the dynamo backend")
	serveCmd.Flags().StringP("partition", "p", "ROSTER", "Partition key value for the dynamo backend")
}
