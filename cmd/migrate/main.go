package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
	"github.com/light-bringer/fnb-pricing-service/internal/platform/seed"
)

const migrationsTable = "schema_migrations"

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "pricing-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
	seedFile   = flag.String("seed", "", "Optional YAML file of pricing rows to upsert after migrating")
)

var log *logger.Logger

func main() {
	flag.Parse()

	var err error
	log, err = logger.New(getEnvOrDefault("LOG_MODE", "development"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		log.Info("using Spanner emulator", "host", emulatorHost)
	}

	if err := run(context.Background()); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	log.Info("migrations completed")
}

func instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID)
}

func databasePath() string {
	return fmt.Sprintf("%s/databases/%s", instancePath(), *databaseID)
}

func run(ctx context.Context) error {
	if err := ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	if err := ensureDatabase(ctx, adminClient); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	client, err := spanner.NewClient(ctx, databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	if err := applyMigrations(ctx, adminClient, client); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if *seedFile != "" {
		if err := applySeed(ctx, client, *seedFile); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
	}
	return nil
}

func ensureInstance(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instancePath()})
	switch {
	case err == nil:
		log.Debug("instance exists", "instance", *instanceID)
		return nil
	case status.Code(err) != codes.NotFound:
		// Managed instances are provisioned outside this tool.
		log.Warn("could not check instance, continuing", "instance", *instanceID, "error", err)
		return nil
	}

	log.Info("creating instance", "instance", *instanceID)
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + *projectID,
		InstanceId: *instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", *projectID),
			DisplayName: "Pricing Development Instance",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warn("instance creation did not finish cleanly", "error", err)
	}
	return nil
}

func ensureDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient) error {
	_, err := adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: databasePath()})
	switch {
	case err == nil:
		log.Debug("database exists", "database", *databaseID)
		return nil
	case status.Code(err) != codes.NotFound:
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			log.Warn("proceeding with database in emulator mode", "error", err)
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Info("creating database", "database", *databaseID)
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// applyMigrations runs every *.sql file in name order that is not yet recorded in
// schema_migrations, recording each one after its DDL succeeds.
func applyMigrations(ctx context.Context, adminClient *database.DatabaseAdminClient, client *spanner.Client) error {
	files, err := filepath.Glob(filepath.Join(*migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		log.Warn("no migration files found", "dir", *migrateDir)
		return nil
	}
	sort.Strings(files)

	if err := updateDDL(ctx, adminClient, bootstrapDDL(ctx, client)); err != nil {
		return fmt.Errorf("failed to create %s: %w", migrationsTable, err)
	}

	applied, err := appliedVersions(ctx, client)
	if err != nil {
		return err
	}

	for _, file := range pending(files, applied) {
		version := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		statements := splitDDLStatements(string(content))

		log.Info("applying migration", "file", version, "statements", len(statements))
		if err := updateDDL(ctx, adminClient, statements); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", version, err)
		}

		_, err = client.Apply(ctx, []*spanner.Mutation{
			spanner.Insert(migrationsTable, []string{"version", "applied_at"}, []interface{}{version, spanner.CommitTimestamp}),
		})
		if err != nil {
			return fmt.Errorf("failed to record %s: %w", version, err)
		}
	}
	return nil
}

func updateDDL(ctx context.Context, adminClient *database.DatabaseAdminClient, statements []string) error {
	if len(statements) == 0 {
		return nil
	}
	op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   databasePath(),
		Statements: statements,
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

// bootstrapDDL returns the statement creating schema_migrations, or nothing if it exists.
func bootstrapDDL(ctx context.Context, client *spanner.Client) []string {
	stmt := spanner.Statement{
		SQL:    "SELECT table_name FROM information_schema.tables WHERE table_schema = '' AND table_name = @name",
		Params: map[string]interface{}{"name": migrationsTable},
	}
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	if _, err := iter.Next(); err == nil {
		return nil
	}
	return []string{fmt.Sprintf(
		"CREATE TABLE %s (version STRING(MAX) NOT NULL, applied_at TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true)) PRIMARY KEY (version)",
		migrationsTable,
	)}
}

func appliedVersions(ctx context.Context, client *spanner.Client) (map[string]time.Time, error) {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT version, applied_at FROM " + migrationsTable})
	defer iter.Stop()

	applied := make(map[string]time.Time)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return applied, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", migrationsTable, err)
		}
		var version string
		var at time.Time
		if err := row.Columns(&version, &at); err != nil {
			return nil, fmt.Errorf("failed to parse %s row: %w", migrationsTable, err)
		}
		applied[version] = at
	}
}

func pending(files []string, applied map[string]time.Time) []string {
	var out []string
	for _, file := range files {
		version := filepath.Base(file)
		if at, ok := applied[version]; ok {
			log.Debug("migration already applied", "file", version, "applied_at", at)
			continue
		}
		out = append(out, file)
	}
	return out
}

func applySeed(ctx context.Context, client *spanner.Client, path string) error {
	f, err := seed.Load(path)
	if err != nil {
		return err
	}
	muts, err := f.Mutations()
	if err != nil {
		return err
	}
	if _, err := client.Apply(ctx, muts); err != nil {
		return fmt.Errorf("failed to apply seed rows: %w", err)
	}
	log.Info("seeded pricing rows", "file", path, "rows", len(f.Rows))
	return nil
}

// splitDDLStatements drops comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
