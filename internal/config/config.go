package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for the generator/loader service.
type Config struct {
	Port       string `mapstructure:"PORT"`
	Env        string `mapstructure:"ENV"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	SchemaFile string `mapstructure:"SCHEMA_FILE"`
	ScratchDir string `mapstructure:"SCRATCH_DIR"`

	GenSeed         int64 `mapstructure:"GEN_SEED"`
	GenHospitals    int   `mapstructure:"GEN_HOSPITALS"`
	GenProviders    int   `mapstructure:"GEN_PROVIDERS"`
	GenPatients     int   `mapstructure:"GEN_PATIENTS"`
	GenEncounters   int   `mapstructure:"GEN_ENCOUNTERS"`
	GenTransactions int   `mapstructure:"GEN_TRANSACTIONS"`
}

// MissingVarsError reports required environment variables that are not set.
// Callers let it propagate instead of converting it into an operational
// failure, so configuration mistakes surface as unhandled errors.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SCHEMA_FILE", "schema/ddl.sql")
	v.SetDefault("SCRATCH_DIR", os.TempDir())
	v.SetDefault("GEN_SEED", 0)
	v.SetDefault("GEN_HOSPITALS", 1)
	v.SetDefault("GEN_PROVIDERS", 50)
	v.SetDefault("GEN_PATIENTS", 5000)
	v.SetDefault("GEN_ENCOUNTERS", 10000)
	v.SetDefault("GEN_TRANSACTIONS", 10000)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DB_HOST")
	v.BindEnv("DB_PORT")
	v.BindEnv("DB_NAME")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_SSLMODE")
	v.BindEnv("SCHEMA_FILE")
	v.BindEnv("SCRATCH_DIR")
	v.BindEnv("GEN_SEED")
	v.BindEnv("GEN_HOSPITALS")
	v.BindEnv("GEN_PROVIDERS")
	v.BindEnv("GEN_PATIENTS")
	v.BindEnv("GEN_ENCOUNTERS")
	v.BindEnv("GEN_TRANSACTIONS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DatabaseDSN assembles the connection string from the four required variables.
// Missing variables are reported as a MissingVarsError before any connection
// attempt is made.
func (c *Config) DatabaseDSN() (string, error) {
	var missing []string
	if c.DBHost == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if c.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return "", &MissingVarsError{Vars: missing}
	}

	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode), nil
}
