package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/eventcal/calendar-api/config"
	"github.com/eventcal/calendar-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@calendar.local"
	username := "demoUser1"
	password := "demo-password"
	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, username, password_hash, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, email, username, hash, "Demo Street 42").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s\n", userID, email, username)

	var eventID string
	err = db.QueryRow(`
		INSERT INTO events (title, description, location, date, time, free_slots, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, "Team standup", "Daily sync", "Room 3", time.Now().Add(24*time.Hour), "09:30", 10, userID).Scan(&eventID)
	if err != nil {
		log.Fatalf("failed to seed event: %v", err)
	}
	fmt.Printf("seeded event: id=%s owner=%s\n", eventID, userID)
}
