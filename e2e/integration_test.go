//go:build e2e

// Package e2e contains end-to-end integration tests using a real DynamoDB table.
// Run with: go test -tags=e2e -v ./e2e/...
package e2e

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jacentio/roster/store"
)

// Test configuration
const (
	awsProfile = "jacent-alpha-cp"

	// Table name - unique per test run to avoid conflicts
	tablePrefix = "roster-e2e-test"
)

var (
	testID       string
	recordsTable string

	ddbClient *dynamodb.Client
)

// --- Test Setup & Teardown ---

func TestMain(m *testing.M) {
	// Generate unique test ID
	testID = uuid.New().String()[:8]
	recordsTable = fmt.Sprintf("%s-%s-records", tablePrefix, testID)

	fmt.Printf("Test ID: %s\n", testID)
	fmt.Printf("Table: %s\n", recordsTable)

	// Initialize AWS client (uses region from profile config)
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(awsProfile),
	)
	if err != nil {
		fmt.Printf("Failed to load AWS config: %v\n", err)
		os.Exit(1)
	}

	ddbClient = dynamodb.NewFromConfig(cfg)

	if err := createTable(ctx); err != nil {
		fmt.Printf("Failed to create table: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := deleteTable(ctx); err != nil {
		fmt.Printf("Failed to delete table: %v\n", err)
	}

	os.Exit(code)
}

func createTable(ctx context.Context) error {
	fmt.Println("Creating test table...")

	_, err := ddbClient.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(recordsTable),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("seq"), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("seq"), AttributeType: types.ScalarAttributeTypeN},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", recordsTable, err)
	}

	// Wait for the table to become active
	waiter := dynamodb.NewTableExistsWaiter(ddbClient)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(recordsTable),
	}, 2*time.Minute)
}

func deleteTable(ctx context.Context) error {
	fmt.Println("Deleting test table...")
	_, err := ddbClient.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(recordsTable),
	})
	return err
}

// newStore gives each test its own partition so tests don't see each
// other's records.
func newStore(t *testing.T) *store.Dynamo {
	t.Helper()
	return store.NewDynamo(ddbClient, store.Config{
		Table:     recordsTable,
		Partition: "test#" + uuid.New().String()[:8],
	})
}

// --- Tests ---

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	created, err := s.Create(ctx, "Ann", 20, []float64{90, 80})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.Find(ctx, "ann")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected record %s, got %s", created.ID, found.ID)
	}
	if found.Age != 20 || len(found.Scores) != 2 {
		t.Errorf("record did not round-trip: %+v", found)
	}
	if got := found.Average(); got != 85 {
		t.Errorf("expected average 85, got %v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Find(ctx, "nobody")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_InvalidRejectedBeforeWrite(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Create(ctx, "Ann", -1, nil); !store.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty partition, got %d records", n)
	}
}

func TestUpdate_InPlace(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, name := range []string{"Ann", "Bob"} {
		if _, err := s.Create(ctx, name, 20, []float64{50}); err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
	}

	updated, err := s.Update(ctx, "ANN", 21, []float64{100})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Age != 21 || updated.Version != 2 {
		t.Errorf("unexpected updated record: %+v", updated)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].Name != "Ann" || records[0].Age != 21 {
		t.Errorf("expected updated 'Ann' at position 0: %+v", records)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Update(ctx, "nobody", 21, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Create(ctx, "Ann", 20, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(ctx, "ann"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Find(ctx, "Ann"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "Ann"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestList_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	names := []string{"Cid", "Ann", "Bob"}
	for _, name := range names {
		if _, err := s.Create(ctx, name, 20, nil); err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != len(names) {
		t.Fatalf("expected %d records, got %d", len(names), len(records))
	}
	for i, name := range names {
		if records[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, records[i].Name)
		}
	}
}

func TestList_Empty(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestDuplicateNames_FirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first, err := s.Create(ctx, "Ann", 20, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "ann", 30, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.Find(ctx, "ANN")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.ID != first.ID {
		t.Error("expected the first record in insertion order")
	}
}
