// Command seed loads the default rate schedules into an empty database so
// payroll calculation can use DB-backed rates out of the box.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/kintai-hq/kintai-backend-go/internal/config"
	"github.com/kintai-hq/kintai-backend-go/internal/fixtures"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	ctx := context.Background()
	rateRepo := postgresql.NewRateRepository(db)

	existing, err := rateRepo.ListInsuranceRates(ctx, nil)
	if err != nil {
		log.Fatal("Error listing insurance rates: ", err)
	}
	if len(existing) > 0 {
		fmt.Println("Insurance rates already present, skipping")
	} else {
		for _, rate := range fixtures.GetDefaultInsuranceRates() {
			if _, err := rateRepo.CreateInsuranceRate(ctx, rate); err != nil {
				log.Fatal("Error creating insurance rate: ", err)
			}
			fmt.Printf("Created insurance rate: %s\n", rate.RateName)
		}
	}

	existingTax, err := rateRepo.ListIncomeTaxRates(ctx, nil)
	if err != nil {
		log.Fatal("Error listing income tax rates: ", err)
	}
	if len(existingTax) > 0 {
		fmt.Println("Income tax rates already present, skipping")
	} else {
		for _, rate := range fixtures.GetDefaultIncomeTaxRates() {
			if _, err := rateRepo.CreateIncomeTaxRate(ctx, rate); err != nil {
				log.Fatal("Error creating income tax rate: ", err)
			}
		}
		fmt.Printf("Created %d income tax brackets\n", len(fixtures.GetDefaultIncomeTaxRates()))
	}

	fmt.Println("Seeding complete")
}
