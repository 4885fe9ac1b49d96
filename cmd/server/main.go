package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"mustgo-request-service/internal/adapters/repositories"
	"mustgo-request-service/internal/api"
	"mustgo-request-service/internal/config"
	"mustgo-request-service/internal/platform/db"
)

// main is the application composition root.
// It wires the postgres-backed request store behind the RequestStore port
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := config.Get("PORT", "8080")

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Create tables on startup so local runs need no migration step.
	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	store := repositories.NewSQLRequestStore(database)
	router := api.NewRouter(store)

	// Write timeout leaves room for large workbook uploads committing one
	// transaction per request group.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
