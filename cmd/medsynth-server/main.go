package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medsynth/medsynth/internal/config"
	"github.com/medsynth/medsynth/internal/generator"
	"github.com/medsynth/medsynth/internal/loader"
	"github.com/medsynth/medsynth/internal/platform/db"
	"github.com/medsynth/medsynth/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "medsynth-server",
		Short: "Synthetic hospital data generator and PostgreSQL loader",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(truncateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP action-dispatch server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func generateCmd() *cobra.Command {
	var (
		out  string
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the CSV dataset without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.ScratchDir
			}
			if seed == 0 {
				seed = cfg.GenSeed
			}

			gen := generator.New(seed)
			summary, err := gen.GenerateAll(out, generator.Sizes{
				Hospitals:    cfg.GenHospitals,
				Providers:    cfg.GenProviders,
				Patients:     cfg.GenPatients,
				Encounters:   cfg.GenEncounters,
				Transactions: cfg.GenTransactions,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Generated %d hospitals, %d departments, %d providers, %d patients, %d encounters, %d transactions in %s\n",
				summary.Hospitals, summary.Departments, summary.Providers,
				summary.Patients, summary.Encounters, summary.Transactions,
				summary.Duration.Round(time.Millisecond))
			for _, file := range summary.Files {
				fmt.Println("  " + file)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output directory (default SCRATCH_DIR)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Deterministic seed (default GEN_SEED)")
	return cmd
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Drop and recreate the six hospital tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, logger, err := newLoader()
			if err != nil {
				return err
			}
			if err := l.SetupDatabase(cmd.Context()); err != nil {
				return err
			}
			logger.Info().Msg("Database setup completed successfully.")
			return nil
		},
	}
}

func loadCmd() *cobra.Command {
	var noTruncate bool
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Truncate the tables, then generate and load a fresh dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, logger, err := newLoader()
			if err != nil {
				return err
			}
			if err := l.LoadData(cmd.Context(), !noTruncate); err != nil {
				return err
			}
			logger.Info().Msg("Data loading completed successfully.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&noTruncate, "no-truncate", false, "Load without truncating first")
	return cmd
}

func truncateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "truncate",
		Short: "Empty the six hospital tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := newLoader()
			if err != nil {
				return err
			}
			return l.TruncateTables(cmd.Context())
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func newLoader() (*loader.Loader, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := newLogger(cfg)
	return loader.New(cfg, logger), logger, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := newLogger(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), cfg); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	handler := loader.NewHandler(loader.New(cfg, logger), logger)
	handler.RegisterRoutes(e)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
