// seed_products.go - standalone script to import a curated scan-miss CSV
// (the /api/v1/misses?format=csv export with product columns filled in) via
// the Toxscan API. Rows without a product_name are skipped. Each imported
// barcode is marked "added" in the miss log.
//
// Usage:
//
//	go run scripts/seed_products.go -csv misses.csv -api http://localhost:8700 -token $ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type productRow struct {
	Name           string `json:"product_name"`
	Brand          string `json:"brand,omitempty"`
	Category       string `json:"category,omitempty"`
	SourceCategory string `json:"source_category,omitempty"`
	Barcode        string `json:"upc_barcode"`
	Ingredients    string `json:"ingredients_raw,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

var requiredColumns = []string{"barcode", "product_name"}

func main() {
	csvPath := flag.String("csv", "misses.csv", "path to curated misses CSV")
	apiURL := flag.String("api", "http://localhost:8700", "Toxscan API base URL")
	token := flag.String("token", os.Getenv("ADMIN_TOKEN"), "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print rows without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		log.Fatalf("read csv: %v", err)
	}
	log.Printf("parsed %d curated rows from %s", len(rows), *csvPath)

	if *dryRun {
		for i, r := range rows {
			fmt.Printf("[%d] %s %q by %q (category=%s, sub=%s, %d chars of ingredients)\n",
				i+1, r.Barcode, r.Name, r.Brand, r.Category, r.SourceCategory, len(r.Ingredients))
		}
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	created, duplicates, skipped := 0, 0, 0
	for _, r := range rows {
		status, err := send(client, "POST", *apiURL+"/api/v1/products", *token, r)
		if err != nil {
			log.Printf("skip %s: %v", r.Barcode, err)
			skipped++
			continue
		}
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			duplicates++
		default:
			log.Printf("skip %s: status %d", r.Barcode, status)
			skipped++
			continue
		}

		update := map[string]string{"status": "added", "notes": r.Notes}
		if status, err := send(client, "PATCH", *apiURL+"/api/v1/misses/"+r.Barcode, *token, update); err != nil || status != http.StatusOK {
			log.Printf("miss %s not updated: status %d, err %v", r.Barcode, status, err)
		}
	}

	log.Printf("done: %d created, %d already present, %d skipped", created, duplicates, skipped)
}

func readRows(r io.Reader) ([]productRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []productRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := productRow{
			Name:           get(rec, "product_name"),
			Brand:          get(rec, "brand"),
			Category:       get(rec, "category"),
			SourceCategory: get(rec, "sub_category"),
			Barcode:        get(rec, "barcode"),
			Ingredients:    get(rec, "ingredients"),
			Notes:          get(rec, "notes"),
		}
		if row.Name == "" || row.Barcode == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func send(client *http.Client, method, url, token string, payload interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
