// Command seed fills the store with fake customers whose monthly readings
// are billed with the configured tariff.
//
//	go run ./cmd/seed -customers 50 -months 12
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/mmynk/aquaflow/internal/calculator"
	"github.com/mmynk/aquaflow/internal/config"
	"github.com/mmynk/aquaflow/internal/models"
	"github.com/mmynk/aquaflow/internal/storage"
	"github.com/mmynk/aquaflow/internal/storage/sqlite"
	"github.com/mmynk/aquaflow/pkg/logging"
)

func main() {
	customers := flag.Int("customers", 25, "number of customers to generate")
	months := flag.Int("months", 12, "monthly readings per customer")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	appendMode := flag.Bool("append", false, "add to the existing customers instead of replacing them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(context.Background(), cfg, *customers, *months, *seed, *appendMode); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, n, months int, seed uint64, appendMode bool) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	var existing []models.Customer
	if appendMode {
		existing, err = store.LoadCustomers(ctx)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	g := generator{
		faker:  gofakeit.New(seed),
		tariff: cfg.Tariff,
		newID:  uuid.NewString,
	}
	generated, err := g.customers(n, months, time.Now().UTC())
	if err != nil {
		return err
	}

	all := append(existing, generated...)
	if err := store.ReplaceCustomers(ctx, all); err != nil {
		return err
	}
	slog.Info("Seeded customers", "generated", len(generated), "total", len(all), "database", cfg.DBPath)
	return nil
}

type generator struct {
	faker  *gofakeit.Faker
	tariff models.TariffConfig
	newID  calculator.IDFunc
}

// customers builds n customers, each with one reading per month ending at
// now. Readings older than two months are mostly paid.
func (g generator) customers(n, months int, now time.Time) ([]models.Customer, error) {
	out := make([]models.Customer, 0, n)
	for i := 0; i < n; i++ {
		c, err := g.customer(i, months, now)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (g generator) customer(i, months int, now time.Time) (models.Customer, error) {
	addr := g.faker.Address()
	c := models.Customer{
		ID:          g.newID(),
		Name:        g.faker.Name(),
		Address:     fmt.Sprintf("%s, %s", addr.Street, addr.City),
		MeterNumber: fmt.Sprintf("MTR-%04d", i+100),
		LastReading: float64(g.faker.IntRange(0, 2000)),
		Readings:    []models.Reading{},
		Scans:       []models.ScanEntry{},
	}

	// heavier households use more every month
	base := g.faker.Float64Range(5, 35)
	for m := months; m >= 1; m-- {
		usage := base * g.faker.Float64Range(0.7, 1.4)
		value := float64(int((c.LastReading+usage)*10)) / 10
		if value <= c.LastReading {
			value = c.LastReading + 1
		}

		var (
			reading models.Reading
			err     error
		)
		c, reading, err = calculator.RecordReading(c, value, g.tariff, now.AddDate(0, -m+1, -g.faker.IntRange(0, 5)), g.newID)
		if err != nil {
			return models.Customer{}, fmt.Errorf("failed to bill reading for %s: %w", c.Name, err)
		}
		if m > 2 && g.faker.Float64Range(0, 1) < 0.9 {
			if c, err = calculator.MarkPaid(c, reading.ID); err != nil {
				return models.Customer{}, err
			}
		}
	}
	return c, nil
}
