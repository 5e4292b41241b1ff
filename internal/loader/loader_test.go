package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medsynth/medsynth/internal/config"
)

func TestStripMetaCommands(t *testing.T) {
	script := strings.Join([]string{
		`\echo Creating tables`,
		"CREATE TABLE hospitals (",
		"    hospitalID TEXT PRIMARY KEY",
		");",
		`  \echo done`,
		"CREATE INDEX idx ON hospitals (hospitalID);",
	}, "\n")

	got := StripMetaCommands(script)

	if strings.Contains(got, `\echo`) {
		t.Errorf("meta commands survived: %q", got)
	}
	if !strings.Contains(got, "CREATE TABLE hospitals") {
		t.Errorf("SQL statements lost: %q", got)
	}
	if !strings.Contains(got, "CREATE INDEX idx") {
		t.Errorf("SQL statements lost: %q", got)
	}
}

func TestStripMetaCommandsNoMeta(t *testing.T) {
	script := "CREATE TABLE t (id TEXT);\n"
	if got := StripMetaCommands(script); got != script {
		t.Errorf("plain SQL altered: %q", got)
	}
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"hospitals.csv",
		"hosp1_patients.csv",
		"hosp2_patients.csv",
		"hosp1_encounters.csv",
		"notes.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		tf   tableFile
		want []string
	}{
		{"exact match", tableFile{table: "hospitals", exact: "hospitals.csv"}, []string{"hospitals.csv"}},
		{"suffix match multiple", tableFile{table: "patients", suffix: "_patients.csv"}, []string{"hosp1_patients.csv", "hosp2_patients.csv"}},
		{"suffix match single", tableFile{table: "encounters", suffix: "_encounters.csv"}, []string{"hosp1_encounters.csv"}},
		{"no match", tableFile{table: "transactions", suffix: "_transactions.csv"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := discoverFiles(dir, tc.tf)
			if err != nil {
				t.Fatalf("discoverFiles: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDiscoverFilesMissingDir(t *testing.T) {
	_, err := discoverFiles(filepath.Join(t.TempDir(), "absent"), tableFile{table: "hospitals", exact: "hospitals.csv"})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCleanupCSVs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"hospitals.csv", "hosp1_patients.csv", "keep.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	l := New(&config.Config{}, zerolog.Nop())
	l.cleanupCSVs(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "keep.txt" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("remaining files = %v, want [keep.txt]", names)
	}
}

func TestSetupDatabaseMissingConfig(t *testing.T) {
	l := New(&config.Config{}, zerolog.Nop())

	err := l.SetupDatabase(context.Background())
	if err == nil {
		t.Fatal("expected error with empty configuration")
	}
	var missing *config.MissingVarsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVarsError, got %T: %v", err, err)
	}
	if len(missing.Vars) != 4 {
		t.Errorf("missing vars = %v, want all four DB variables", missing.Vars)
	}
}
