package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPort != "5432" {
		t.Errorf("DBPort = %q, want 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want disable", cfg.DBSSLMode)
	}
	if cfg.SchemaFile != "schema/ddl.sql" {
		t.Errorf("SchemaFile = %q", cfg.SchemaFile)
	}
	if cfg.ScratchDir == "" {
		t.Error("ScratchDir should default to the system temp dir")
	}
	if cfg.GenHospitals != 1 || cfg.GenProviders != 50 || cfg.GenPatients != 5000 ||
		cfg.GenEncounters != 10000 || cfg.GenTransactions != 10000 {
		t.Errorf("unexpected generation defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("GEN_PATIENTS", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost = %q, want db.internal", cfg.DBHost)
	}
	if cfg.DBPort != "5433" {
		t.Errorf("DBPort = %q, want 5433", cfg.DBPort)
	}
	if cfg.GenPatients != 42 {
		t.Errorf("GenPatients = %d, want 42", cfg.GenPatients)
	}
}

func TestIsDev(t *testing.T) {
	if !(&Config{Env: "development"}).IsDev() {
		t.Error("development should be dev")
	}
	if (&Config{Env: "production"}).IsDev() {
		t.Error("production should not be dev")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBName:     "hospital",
		DBUser:     "app",
		DBPassword: "secret",
		DBSSLMode:  "disable",
	}

	dsn, err := cfg.DatabaseDSN()
	if err != nil {
		t.Fatalf("DatabaseDSN: %v", err)
	}
	want := "host=localhost port=5432 dbname=hospital user=app password=secret sslmode=disable"
	if dsn != want {
		t.Errorf("dsn = %q, want %q", dsn, want)
	}
}

func TestDatabaseDSNMissingVars(t *testing.T) {
	cfg := &Config{DBHost: "localhost"}

	_, err := cfg.DatabaseDSN()
	if err == nil {
		t.Fatal("expected error")
	}
	var missing *MissingVarsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingVarsError, got %T", err)
	}
	want := []string{"DB_NAME", "DB_USER", "DB_PASSWORD"}
	if len(missing.Vars) != len(want) {
		t.Fatalf("missing = %v, want %v", missing.Vars, want)
	}
	for i, v := range want {
		if missing.Vars[i] != v {
			t.Errorf("missing[%d] = %q, want %q", i, missing.Vars[i], v)
		}
	}
	if !strings.Contains(err.Error(), "DB_NAME, DB_USER, DB_PASSWORD") {
		t.Errorf("message = %q", err.Error())
	}
}
