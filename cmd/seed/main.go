// Command seed populates the database with demo data for BMX Hive.
package main

import (
	"flag"
	"log"

	"bmxhive/internal/config"
	"bmxhive/internal/database"
	"bmxhive/internal/seed"
)

func main() {
	numRiders := flag.Int("riders", 25, "Number of rider accounts to create")
	tricksPerRider := flag.Int("tricks", 3, "Number of tricks per rider")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.SeedRiders(*numRiders, *tricksPerRider); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Seeding wipes the admin account with -clean; restore it.
	if err := database.Bootstrap(db, cfg); err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}

	log.Printf("Done. All seeded accounts use password %q.", seed.DefaultPassword)
}
