package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/hung-0621/Book-Trade-APP/internal/catalog"
	"github.com/hung-0621/Book-Trade-APP/internal/checkout"
	"github.com/hung-0621/Book-Trade-APP/internal/orders"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Runs one checkout flow against a running orderd: fetch the feed, select
// the ids given as arguments (or the first two feed items), fill in the
// fulfillment details and submit.
func main() {
	backendAddr := getEnv("BACKEND_ADDR", "http://localhost:8080")
	requestTimeout := 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalogClient := catalog.NewClient(backendAddr, requestTimeout)
	snapshot, err := catalogClient.FetchSnapshot(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch catalog: %v", err)
	}
	log.Printf("catalog fetched: %d items", snapshot.Len())

	selected := os.Args[1:]
	if len(selected) == 0 {
		for i, item := range snapshot.Items() {
			if i == 2 {
				break
			}
			selected = append(selected, item.ID)
		}
	}

	session := checkout.NewSession(selected, snapshot.Lookup)
	if session.Empty() {
		log.Fatal("nothing to check out: none of the selected items exist in the catalog")
	}

	for _, li := range session.Items() {
		if err := session.SetMeetingLocation(li.ID(), "台北車站 M4 出口"); err != nil {
			log.Fatalf("Failed to set meeting location: %v", err)
		}
		if err := session.SetScheduledAt(li.ID(), time.Now().AddDate(0, 0, 3)); err != nil {
			log.Fatalf("Failed to set scheduled date: %v", err)
		}
	}

	total, err := session.Total()
	if err != nil {
		log.Fatalf("Failed to compute total: %v", err)
	}
	log.Printf("checking out %d items, total %s, payment %s", session.Len(), total, session.PaymentMethod())

	submitter := checkout.NewSubmitter(orders.NewHTTPClient(backendAddr, requestTimeout), requestTimeout)
	res, err := submitter.Submit(ctx, session)
	if err != nil {
		log.Fatalf("Submission rejected locally: %v", err)
	}
	if !res.Succeeded() {
		log.Fatalf("Submission failed (%s), session back to %s for retry", *res.Failure, session.Status())
	}

	log.Printf("order created: %s (session status %s)", res.OrderID, session.Status())
}
