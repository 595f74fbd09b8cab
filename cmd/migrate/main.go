// Command migrate applies the schema and bootstrap data for the backend.
package main

import (
	"flag"
	"fmt"
	"log"

	"bmxhive/internal/config"
	"bmxhive/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	skipBootstrap := flag.Bool("skip-bootstrap", false, "Apply the schema without seeding the admin account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	// Connect only automigrates outside production; migrate always does.
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("automigration failed: %w", err)
	}
	log.Println("schema applied")

	if !*skipBootstrap {
		if err := database.Bootstrap(db, cfg); err != nil {
			return fmt.Errorf("bootstrap failed: %w", err)
		}
		log.Println("bootstrap complete")
	}
	return nil
}
