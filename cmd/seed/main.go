// Command seed runs the database seeder for Criminal Diaries.
package main

import (
	"flag"
	"log"

	"criminaldiaries/internal/config"
	"criminaldiaries/internal/database"
	"criminaldiaries/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 15, "Number of users to create")
	numStories := flag.Int("stories", 40, "Number of stories to create")
	maxDays := flag.Int("max-days", 90, "Spread of story timestamps, in days back from now")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d stories, clean=%v\n", *numUsers, *numStories, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumStories:  *numStories,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
