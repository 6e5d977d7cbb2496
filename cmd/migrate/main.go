package main

// Create or upgrade the local cache database used by cmd/hiremind:
//   go run ./cmd/migrate [-cache path]

import (
	"context"
	"flag"
	"log"
	"os"

	"hiremind-backend/internal/client"
	"hiremind-backend/internal/shared/storage/db"
)

func main() {
	path := flag.String("cache", client.DefaultCachePath(), "Path of the local cache database")
	flag.Parse()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultOptions())
	sqlDB, err := db.Open(ctx, *path, opts)
	if err != nil {
		log.Printf("failed to open database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("cache database ready at %s", *path)
}
