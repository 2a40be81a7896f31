package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/joho/godotenv"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/promo-engine/internal/models/m_product"
	"github.com/light-bringer/promo-engine/internal/pkg/config"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
)

var (
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
	seed       = flag.Bool("seed", false, "Insert the development product catalog after migrating")
)

type migrator struct {
	cfg config.SpannerConfig
	log *logger.Logger
}

func main() {
	flag.Parse()

	log := logger.New(logger.Options{ServiceName: "migrate", Format: "console"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	// Check if using emulator
	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		ctx = log.WithField(ctx, "emulator", emulatorHost)
	}
	ctx = log.WithField(ctx, "database", cfg.Spanner.Database())

	m := &migrator{cfg: cfg.Spanner, log: log}
	if err := m.run(ctx); err != nil {
		log.Error(ctx, "migration failed", err)
		os.Exit(1)
	}

	log.Info(ctx, "migrations completed")
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if *seed {
		if err := m.seedProducts(ctx); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	return nil
}

func (m *migrator) instanceName() string {
	return fmt.Sprintf("projects/%s/instances/%s", m.cfg.ProjectID, m.cfg.InstanceID)
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instanceName()})
	if err == nil {
		m.log.Debug(ctx, "instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		m.log.Warn(ctx, "unexpected error checking instance: "+err.Error())
		return nil
	}

	m.log.Info(ctx, "creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", m.cfg.ProjectID),
		InstanceId: m.cfg.InstanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.cfg.ProjectID),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		return nil
	}

	// The emulator may finish before Wait is called.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.log.Warn(ctx, "instance creation: "+err.Error())
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.cfg.Database()})
	if err == nil {
		m.log.Debug(ctx, "database already exists")
		return nil
	}

	if status.Code(err) == codes.NotFound {
		m.log.Info(ctx, "creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          m.instanceName(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.cfg.DatabaseID),
		})
		if err != nil {
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}
		return nil
	}

	// The emulator reports odd errors for databases that exist.
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		m.log.Warn(ctx, "proceeding with database in emulator mode: "+err.Error())
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

func (m *migrator) applyMigrations(ctx context.Context) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(*migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		m.log.Warn(ctx, "no migration files found in "+*migrateDir)
		return nil
	}

	// Tables already created are skipped so the command can be rerun.
	existing, err := m.existingTables(ctx)
	if err != nil {
		return err
	}

	for _, file := range files {
		fileCtx := m.log.WithField(ctx, "migration", filepath.Base(file))

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := pendingStatements(splitDDLStatements(string(content)), existing)
		if len(statements) == 0 {
			m.log.Info(fileCtx, "migration already applied")
			continue
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.cfg.Database(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", file, err)
		}

		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", file, err)
		}

		m.log.InfoFields(fileCtx, "migration applied", map[string]any{"statements": len(statements)})
	}

	return nil
}

// existingTables returns the lower-cased names of user tables and indexes.
func (m *migrator) existingTables(ctx context.Context) (map[string]bool, error) {
	client, err := spanner.NewClient(ctx, m.cfg.Database())
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	stmt := spanner.Statement{SQL: `
		SELECT table_name AS name FROM information_schema.tables WHERE table_schema = ''
		UNION ALL
		SELECT index_name AS name FROM information_schema.indexes WHERE table_schema = '' AND index_type = 'INDEX'`}

	existing := map[string]bool{}
	err = client.Single().Query(ctx, stmt).Do(func(row *spanner.Row) error {
		var name string
		if err := row.Columns(&name); err != nil {
			return err
		}
		existing[strings.ToLower(name)] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return existing, nil
}

func (m *migrator) seedProducts(ctx context.Context) error {
	client, err := spanner.NewClient(ctx, m.cfg.Database())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	model := m_product.NewModel()
	products := devProducts()
	muts := make([]*spanner.Mutation, 0, len(products))
	for _, p := range products {
		muts = append(muts, model.UpsertMut(p))
	}

	if _, err := client.Apply(ctx, muts); err != nil {
		return err
	}
	m.log.InfoFields(ctx, "products seeded", map[string]any{"count": len(products)})
	return nil
}

func devProducts() []*m_product.Data {
	return []*m_product.Data{
		{ProductID: "p-beras", Nama: "Beras Premium 1kg", SKU: "BRS-001", HargaJual: 15000, Tipe: "curah"},
		{ProductID: "p-gula", Nama: "Gula Pasir 1kg", SKU: "GLA-001", HargaJual: 10000, Tipe: "curah"},
		{ProductID: "p-minyak", Nama: "Minyak Goreng 1L", SKU: "MYK-001", HargaJual: 18000, Tipe: "satuan"},
		{ProductID: "p-sabun", Nama: "Sabun Mandi", SKU: "SBN-001", HargaJual: 5000, Tipe: "satuan"},
		{ProductID: "p-sikat", Nama: "Sikat Gigi", SKU: "SKT-001", HargaJual: 3000, Tipe: "satuan"},
		{ProductID: "p-kopi", Nama: "Kopi Bubuk 200g", SKU: "KOP-001", HargaJual: 12500, Tipe: "satuan"},
	}
}

func splitDDLStatements(content string) []string {
	// Remove comments and empty lines
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	content = strings.Join(cleaned, "\n")

	// Split by semicolon
	statements := strings.Split(content, ";")
	var result []string
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}

	return result
}

// pendingStatements drops CREATE TABLE and CREATE INDEX statements whose
// object already exists.
func pendingStatements(statements []string, existing map[string]bool) []string {
	var out []string
	for _, stmt := range statements {
		if name := createdObject(stmt); name != "" && existing[name] {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

func createdObject(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) < 3 || !strings.EqualFold(fields[0], "CREATE") {
		return ""
	}
	i := 1
	if strings.EqualFold(fields[i], "UNIQUE") || strings.EqualFold(fields[i], "NULL_FILTERED") {
		i++
	}
	if i+1 >= len(fields) || (!strings.EqualFold(fields[i], "TABLE") && !strings.EqualFold(fields[i], "INDEX")) {
		return ""
	}
	name := fields[i+1]
	if p := strings.IndexByte(name, '('); p >= 0 {
		name = name[:p]
	}
	return strings.ToLower(strings.Trim(name, "`"))
}
