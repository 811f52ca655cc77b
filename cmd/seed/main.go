// Command main runs the database seeder for Offer Hub.
package main

import (
	"flag"
	"log"

	"offerhub/internal/config"
	"offerhub/internal/database"
	"offerhub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numServices := flag.Int("services", 50, "Number of services to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d services, clean=%v\n", *numUsers, *numServices, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedMarketplace(*numUsers, *numServices); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
}
