// Command seed runs the database seeder for SkillSwap.
package main

import (
	"flag"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if err := seed.Announcements(db); err != nil {
		log.Fatalf("Built-in announcement seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
