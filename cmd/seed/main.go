// Command seed fills the database with demo users, bucketlists and items.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"bucketlist/internal/config"
	"bucketlist/internal/database"
	"bucketlist/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numLists := flag.Int("lists", 3, "Bucketlists per user")
	numItems := flag.Int("items", 5, "Items per bucketlist")
	password := flag.String("password", "password", "Password shared by all seeded users")
	randomSeed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for generated data")
	shouldClean := flag.Bool("clean", false, "Delete existing data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	summary, err := seed.Seed(context.Background(), db, seed.Options{
		NumUsers:           *numUsers,
		BucketlistsPerUser: *numLists,
		ItemsPerList:       *numItems,
		Password:           *password,
		BcryptCost:         cfg.BcryptCost,
		RandomSeed:         *randomSeed,
		ShouldClean:        *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	for _, u := range summary.Users {
		log.Printf("user %s (password %q)", u.Email, *password)
	}
	log.Printf("Seeded %d users, %d bucketlists, %d items", len(summary.Users), summary.Bucketlists, summary.Items)
}
