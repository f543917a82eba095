package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/vaughan-dsouza/accountd/internal/auth"
	"github.com/vaughan-dsouza/accountd/internal/config"
	"github.com/vaughan-dsouza/accountd/internal/db"
	"github.com/vaughan-dsouza/accountd/internal/handlers"
	"github.com/vaughan-dsouza/accountd/internal/service"
	"github.com/vaughan-dsouza/accountd/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	users := store.NewPostgres(dbConn)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokens([]byte(cfg.JWTSecret), cfg.TokenTTL)
	svc := service.NewAccountService(users, hasher, tokens)
	h := handlers.NewHandler(svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.Routes(h, tokens),
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
