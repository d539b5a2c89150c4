// Command seed populates the database with generated demo data.
package main

import (
	"flag"
	"log"

	"dentalreach/internal/config"
	"dentalreach/internal/database"
	"dentalreach/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of users to create (0 = preset default)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Path to a yaml preset file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.DefaultOptions
	if *preset != "" {
		opts, err = seed.LoadOptions(*preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
	}
	if *numUsers > 0 {
		opts.Users = *numUsers
	}

	s := seed.NewSeeder(database.DB)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	if err := s.Run(opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
