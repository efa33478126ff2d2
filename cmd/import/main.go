// Command import seeds the subscriptions table from a CSV export.
//
// Expected columns: phone_number,status,start_date,expiry_date,price,notes.
// Dates are YYYY-MM-DD; price and notes may be empty.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"tanbih-bot/internal/infra/sqlite3"
	"tanbih-bot/internal/storage"
	"tanbih-bot/internal/stories/subs"
)

func main() {
	dbPath := flag.String("db", "./data/tanbih.db", "path to SQLite database")
	csvPath := flag.String("csv", "./subscriptions.csv", "path to CSV file")
	appID := flag.String("app", "default-app-id", "application namespace identifier")
	ownerUID := flag.String("owner", "", "owner (tenant) identifier")
	dryRun := flag.Bool("dry-run", false, "show what would be imported without writing to DB")
	flag.Parse()

	if *ownerUID == "" {
		log.Fatal("owner UID is required: -owner <uid>")
	}

	ctx := context.Background()

	db, err := sqlite3.New(ctx, sqlite3.WithDSN(*dbPath))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	store := storage.New(db.DB)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	imported, skipped, failures := processCSV(ctx, store, *csvPath, *appID, *ownerUID, *dryRun)

	fmt.Printf("\n=== TOTAL ===\n")
	fmt.Printf("Imported: %d\n", imported)
	fmt.Printf("Skipped: %d\n", skipped)
	fmt.Printf("Errors: %d\n", failures)

	if *dryRun {
		fmt.Println("\n(DRY RUN - nothing was written to database)")
	}
}

func processCSV(ctx context.Context, store interface {
	CreateSubscription(ctx context.Context, subscription subs.Subscription) (int64, error)
}, path, appID, ownerUID string, dryRun bool) (imported, skipped, failures int) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			fmt.Printf("line %d: read error: %v\n", line, err)
			failures++
			continue
		}
		if line == 1 && strings.EqualFold(record[0], "phone_number") {
			continue // header row
		}

		sub, err := parseRecord(record, appID, ownerUID)
		if err != nil {
			fmt.Printf("line %d: %v\n", line, err)
			failures++
			continue
		}
		if sub == nil {
			skipped++
			continue
		}

		if dryRun {
			phone := "-"
			if sub.PhoneNumber != nil {
				phone = *sub.PhoneNumber
			}
			fmt.Printf("would import: %s status=%s expiry=%s\n",
				phone, sub.Status, sub.ExpiryDate.Format("2006-01-02"))
			imported++
			continue
		}

		if _, err := store.CreateSubscription(ctx, *sub); err != nil {
			fmt.Printf("line %d: insert failed: %v\n", line, err)
			failures++
			continue
		}
		imported++
	}

	return imported, skipped, failures
}

func parseRecord(record []string, appID, ownerUID string) (*subs.Subscription, error) {
	if len(record) < 4 {
		return nil, fmt.Errorf("expected at least 4 columns, got %d", len(record))
	}

	status := subs.Status(strings.TrimSpace(record[1]))
	if status == "" {
		return nil, nil // no status, skip silently
	}

	expiry, err := time.Parse("2006-01-02", strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("bad expiry date %q: %v", record[3], err)
	}

	sub := &subs.Subscription{
		AppID:      appID,
		OwnerUID:   ownerUID,
		Status:     status,
		ExpiryDate: expiry,
	}

	if phone := strings.TrimSpace(record[0]); phone != "" {
		sub.PhoneNumber = &phone
	}

	if start := strings.TrimSpace(record[2]); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, fmt.Errorf("bad start date %q: %v", record[2], err)
		}
		sub.StartDate = &t
	}

	if len(record) > 4 {
		if priceStr := strings.TrimSpace(record[4]); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				return nil, fmt.Errorf("bad price %q: %v", record[4], err)
			}
			sub.Price = &price
		}
	}

	if len(record) > 5 {
		if notes := strings.TrimSpace(record[5]); notes != "" {
			sub.Notes = &notes
		}
	}

	return sub, nil
}
