package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/config"
	accountsinfra "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/accounts/infrastructure"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/fixtures"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/database"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/logging"
)

func main() {
	appendRows := flag.Bool("append", false, "keep existing rows instead of emptying every table")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	flag.Parse()

	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	slog.SetDefault(logger)

	if err := run(cfg, logger, fixtures.Options{Append: *appendRows, Seed: *seed}); err != nil {
		slog.Error("fixtures failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, opts fixtures.Options) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dsn := cfg.Database.DSN
	if cfg.Database.Driver == "postgres" {
		dsn = cfg.Database.PostgresDSN()
	}
	db, err := database.Open(database.Options{Driver: cfg.Database.Driver, DSN: dsn, Logger: logger})
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(ctx, db, fixtures.Models()...); err != nil {
		return err
	}

	loader := fixtures.NewLoader(db, accountsinfra.BcryptHasher{Cost: cfg.Security.BcryptCost})
	sum, err := loader.Load(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d restaurants, %d pictures, %d users, %d categories, %d foods\n",
		sum.Restaurants, sum.Pictures, sum.Users, sum.Categories, sum.Foods)
	return nil
}
