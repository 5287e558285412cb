package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"cleanbook/internal/catalog"
	"cleanbook/pkg/config"
	"cleanbook/pkg/db"
)

// Seeds a small demo catalog so the storefront and back-office can be
// exercised locally without hand-inserting rows.
func main() {
	var migrate = flag.Bool("migrate", true, "apply migrations before seeding")
	flag.Parse()

	cfg := config.Load()
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "file://migrations"
	}

	ctx := context.Background()

	if *migrate {
		if err := db.Migrate(cfg.MigrationsPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
	}

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := catalog.NewRepository(pool)

	carWash, err := repo.CreateService(ctx, catalog.ServiceInput{
		Name:        "Lavage auto",
		PageTitle:   "Lavage auto à domicile",
		Description: "Lavage intérieur et extérieur, chez vous.",
		Price:       "à partir de 39€",
		BasePrice:   decimal.RequireFromString("39.00"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create service: %v\n", err)
		os.Exit(1)
	}

	vehicleType, err := repo.CreateOption(ctx, carWash.ID, catalog.OptionInput{
		Name:       "Type de véhicule",
		Type:       catalog.OptionTypeSelect,
		IsRequired: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create option: %v\n", err)
		os.Exit(1)
	}

	choices := []catalog.ChoiceInput{
		{Label: "Citadine", PriceModifier: decimal.Zero},
		{Label: "Berline", PriceModifier: decimal.RequireFromString("10.00")},
		{Label: "SUV / Monospace", PriceModifier: decimal.RequireFromString("15.00")},
	}
	for _, c := range choices {
		if _, err := repo.CreateChoice(ctx, vehicleType.ID, c); err != nil {
			fmt.Fprintf(os.Stderr, "create choice %q: %v\n", c.Label, err)
			os.Exit(1)
		}
	}

	if _, err := repo.CreateService(ctx, catalog.ServiceInput{
		Name:        "Ménage standard",
		PageTitle:   "Ménage standard",
		Description: "Nettoyage complet de votre intérieur.",
		Price:       "25€/h",
		BasePrice:   decimal.RequireFromString("25.00"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "create service: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded demo catalog (service %q, slug %s)\n", carWash.Name, carWash.Slug)
}
