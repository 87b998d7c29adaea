package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hung-0621/Book-Trade-APP/internal/catalog"
	"github.com/hung-0621/Book-Trade-APP/internal/money"
	"github.com/hung-0621/Book-Trade-APP/internal/orderserver"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// seedFeed is the demo catalog served when no other feed source exists.
func seedFeed() []catalog.Item {
	return []catalog.Item{
		{ID: "b1", Name: "算法圖解", Author: "Aditya Bhargava", Price: money.New(250, money.TWD)},
		{ID: "b2", Name: "深入淺出設計模式", Author: "Eric Freeman", Price: money.New(420, money.TWD)},
		{ID: "b3", Name: "Clean Code", Author: "Robert C. Martin", Price: money.New(380, money.TWD)},
		{ID: "b4", Name: "重構", Author: "Martin Fowler", Price: money.New(520, money.TWD)},
	}
}

func main() {
	log.Println("orderd starting...")

	httpPort := getEnv("HTTP_PORT", "8080")
	dbPath := getEnv("DB_PATH", "orders.db")

	store, err := orderserver.OpenStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open order store: %v", err)
	}
	defer store.Close()

	srv := orderserver.New(store, seedFeed())
	httpServer := &http.Server{
		Addr:    ":" + httpPort,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("orderd listening on :%s", httpPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("orderd shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
