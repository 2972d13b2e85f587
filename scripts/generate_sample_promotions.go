//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type promotion struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"`
}

// generateSamplePromotions creates sample promotion files for testing.
// base.gz:     HBD10, FREEDEL, WELCOME50, CUPCAKE3GET1
// seasonal.gz: HBD10 (new title, overrides base.gz), SUMMER20 (no pricing
//              rule, skipped when the catalogue is built)
func main() {
	dataDir := "data/promotions"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	endOfYear := time.Date(time.Now().Year(), 12, 31, 23, 59, 59, 0, time.UTC)

	files := map[string][]promotion{
		"base.gz": {
			{Code: "HBD10", Title: "Birthday treat", Description: "10% off during your birthday month"},
			{Code: "FREEDEL", Title: "Free delivery", Description: "Free delivery on orders of 500 baht or more"},
			{Code: "WELCOME50", Title: "Welcome discount", Description: "50 baht off orders of 300 baht or more"},
			{Code: "CUPCAKE3GET1", Title: "Cupcakes buy 3 get 1", Description: "Every fourth cupcake is free"},
		},
		"seasonal.gz": {
			{Code: "HBD10", Title: "Birthday month special", Description: "10% off all month long", ValidUntil: &endOfYear},
			{Code: "SUMMER20", Title: "Summer sale", Description: "Not priced by the checkout yet"},
		},
	}

	for filename, promotions := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createPromotionFile(filePath, promotions); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d promotions\n", filePath, len(promotions))
	}

	fmt.Println("\nSample promotion files created successfully!")
	fmt.Println("Use them with: PROMOTION_FILES=data/promotions/base.gz,data/promotions/seasonal.gz")
}

func createPromotionFile(filePath string, promotions []promotion) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, p := range promotions {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write promotion: %w", err)
		}
	}

	return nil
}
