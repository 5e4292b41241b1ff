// Package loader stages the hospital schema and bulk-loads generated CSV
// files into PostgreSQL. Every public operation opens one connection, runs in
// one transaction, and either commits at the end or rolls back entirely.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/medsynth/medsynth/internal/config"
	"github.com/medsynth/medsynth/internal/generator"
	"github.com/medsynth/medsynth/internal/platform/db"
)

// tables in drop/truncate order: children before parents.
var tables = []string{
	"transactions", "encounters", "patients", "providers", "departments", "hospitals",
}

// tableFile describes how a table's CSV files are discovered in the scratch
// directory. Hospitals use one exact file name; the per-hospital kinds are
// matched by suffix so multi-hospital runs load every file.
type tableFile struct {
	table  string
	exact  string
	suffix string
}

var loadOrder = []tableFile{
	{table: "hospitals", exact: "hospitals.csv"},
	{table: "departments", suffix: "_departments.csv"},
	{table: "providers", suffix: "_providers.csv"},
	{table: "patients", suffix: "_patients.csv"},
	{table: "encounters", suffix: "_encounters.csv"},
	{table: "transactions", suffix: "_transactions.csv"},
}

// Loader runs the setup/truncate/load operations against the database named
// by the configuration.
type Loader struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logger}
}

// SetupDatabase drops the six tables and replays the schema DDL script.
// psql meta-command lines (leading backslash) are stripped before execution.
func (l *Loader) SetupDatabase(ctx context.Context) error {
	l.logger.Info().Msg("starting database setup")

	conn, err := db.Connect(ctx, l.cfg)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("database setup failed: drop %s: %w", table, err)
		}
	}

	ddl, err := os.ReadFile(l.cfg.SchemaFile)
	if err != nil {
		return fmt.Errorf("database setup failed: read schema %s: %w", l.cfg.SchemaFile, err)
	}

	if _, err := tx.Exec(ctx, StripMetaCommands(string(ddl))); err != nil {
		return fmt.Errorf("database setup failed: execute schema: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	l.logger.Info().Msg("database setup completed")
	return nil
}

// TruncateTables clears the six tables. CASCADE makes the list order
// irrelevant, and truncating an already-empty database is a no-op.
func (l *Loader) TruncateTables(ctx context.Context) error {
	l.logger.Info().Msg("truncating tables")

	conn, err := db.Connect(ctx, l.cfg)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("truncate failed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("truncate failed: %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("truncate failed: %w", err)
	}

	l.logger.Info().Msg("tables truncated")
	return nil
}

// LoadData generates the full dataset into the scratch directory and COPYs
// each discovered CSV into its table. Generated files are removed afterwards
// whether the load succeeded or not.
func (l *Loader) LoadData(ctx context.Context, truncate bool) error {
	if truncate {
		if err := l.TruncateTables(ctx); err != nil {
			return err
		}
	}

	scratch := l.cfg.ScratchDir
	defer l.cleanupCSVs(scratch)

	l.logger.Info().Str("dir", scratch).Msg("generating data")
	gen := generator.New(l.cfg.GenSeed)
	summary, err := gen.GenerateAll(scratch, generator.Sizes{
		Hospitals:    l.cfg.GenHospitals,
		Providers:    l.cfg.GenProviders,
		Patients:     l.cfg.GenPatients,
		Encounters:   l.cfg.GenEncounters,
		Transactions: l.cfg.GenTransactions,
	})
	if err != nil {
		return fmt.Errorf("data loading failed: %w", err)
	}
	l.logger.Info().
		Int("patients", summary.Patients).
		Int("encounters", summary.Encounters).
		Int("transactions", summary.Transactions).
		Dur("duration", summary.Duration).
		Msg("data generated")

	conn, err := db.Connect(ctx, l.cfg)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("data loading failed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, tf := range loadOrder {
		files, err := discoverFiles(scratch, tf)
		if err != nil {
			return fmt.Errorf("data loading failed: %w", err)
		}
		if len(files) == 0 {
			l.logger.Warn().Str("table", tf.table).Msg("no csv file found, skipping")
			continue
		}
		for _, file := range files {
			rows, err := copyCSV(ctx, conn, tf.table, filepath.Join(scratch, file))
			if err != nil {
				return fmt.Errorf("data loading failed: load %s into %s: %w", file, tf.table, err)
			}
			l.logger.Info().Str("table", tf.table).Str("file", file).Int64("rows", rows).Msg("loaded")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("data loading failed: %w", err)
	}

	l.logger.Info().Msg("data loading completed")
	return nil
}

// discoverFiles lists the scratch-directory CSVs belonging to one table.
func discoverFiles(dir string, tf tableFile) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scratch dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if tf.exact != "" && name == tf.exact {
			files = append(files, name)
		}
		if tf.suffix != "" && strings.HasSuffix(name, tf.suffix) {
			files = append(files, name)
		}
	}
	return files, nil
}

// copyCSV streams one header-bearing CSV file into a table. The file's column
// order must match the table's column order; COPY skips the header line.
func copyCSV(ctx context.Context, conn *pgx.Conn, table, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tag, err := conn.PgConn().CopyFrom(ctx, f,
		fmt.Sprintf("COPY %s FROM STDIN WITH (FORMAT csv, HEADER true)", table))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// cleanupCSVs removes every .csv in the scratch directory, logging rather
// than failing on individual removal errors.
func (l *Loader) cleanupCSVs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn().Err(err).Str("dir", dir).Msg("cleanup: read scratch dir")
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			l.logger.Warn().Err(err).Str("file", entry.Name()).Msg("cleanup: remove")
		}
	}
}

// StripMetaCommands drops psql meta-command lines (those whose trimmed form
// starts with a backslash) so the remainder is plain SQL.
func StripMetaCommands(script string) string {
	lines := strings.Split(script, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), `\`) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
