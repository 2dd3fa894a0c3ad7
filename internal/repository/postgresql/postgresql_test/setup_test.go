package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds the connection shared by the repository tests
type TestDatabaseSetup struct {
	DB *database.DB
}

var testSetup *TestDatabaseSetup

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// ok is false when no test database is configured.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, true, err
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

func TestMain(m *testing.M) {
	ctx := context.Background()
	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		fmt.Println("TEST_DATABASE_URL not set, skipping repository integration tests")
		os.Exit(0)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	testSetup = setup

	code := m.Run()
	setup.Close()
	os.Exit(code)
}

// TruncateAllTables removes all rows from the payroll tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"monthly_salaries",
		"salary_profiles",
		"leave_requests",
		"attendances",
		"holidays",
		"work_settings",
		"employees",
	}

	for _, table := range tables {
		if _, err := t.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

func setupTestData(t *testing.T) {
	t.Helper()
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
}

// seedEmployee inserts an active employee and returns its id.
func seedEmployee(t *testing.T, companyID, name, code string) string {
	t.Helper()
	var id string
	err := testSetup.DB.QueryRow(context.Background(), `
		INSERT INTO employees (company_id, full_name, employee_code)
		VALUES ($1, $2, $3)
		RETURNING id
	`, companyID, name, code).Scan(&id)
	require.NoError(t, err)
	return id
}
