// Command genfeed writes sample supplier catalog feeds for local imports.
//
//	go run ./scripts/genfeed
//	CATALOG_FEEDS=data/catalog/bosch.csv.gz,data/catalog/mann.csv.gz go run ./cmd/api
package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	header := []string{"part_number", "name", "manufacturer", "category", "price", "description"}
	feeds := map[string][][]string{
		"bosch.csv.gz": {
			{"BRK-0001", "Front brake pad set", "Bosch", "Brakes", "49.99", "Ceramic, low dust"},
			{"BRK-0002", "Rear brake disc", "Bosch", "Brakes", "64.50", ""},
			{"SPK-0100", "Spark plug, iridium", "Bosch", "Ignition", "12.99", ""},
			{"WPR-0550", "Wiper blade 550mm", "Bosch", "Visibility", "18.00", "Aerotwin"},
			{"BAD-ROW", "Missing price", "Bosch", "Brakes", "", ""},
		},
		"mann.csv.gz": {
			{"FLT-0200", "Oil filter", "Mann", "Filters", "7.49", ""},
			{"FLT-0210", "Air filter", "Mann", "Filters", "15.25", "Panel type"},
			{"FLT-0220", "Cabin filter, carbon", "Mann", "Filters", "21.90", ""},
		},
	}

	for filename, rows := range feeds {
		filePath := filepath.Join(dataDir, filename)

		if err := createFeed(filePath, header, rows); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d rows\n", filePath, len(rows))
	}

	fmt.Println("\nSample catalog feeds created successfully!")
	fmt.Println("bosch.csv.gz contains one malformed row (BAD-ROW) that the importer skips.")
}

func createFeed(filePath string, header []string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	w := csv.NewWriter(gzipWriter)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return nil
}
