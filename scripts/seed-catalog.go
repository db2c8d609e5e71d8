package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type CatalogFile struct {
	Services      []Service      `json:"services"`
	Professionals []Professional `json:"professionals"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	DurationMin int    `json:"duration_min"`
	ImageURL    string `json:"image_url"`
}

type Professional struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/seed-catalog.go <catalog-file.json>")
		fmt.Println("Example: go run scripts/seed-catalog.go testdata/sample-catalog.json")
		os.Exit(1)
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		fmt.Println("❌ ADMIN_TOKEN is required (a JWT signed with ADMIN_JWT_SECRET)")
		os.Exit(1)
	}

	catalogFile := os.Args[1]

	fmt.Printf("🌱 Seeding Catalog\n")
	fmt.Printf("============================\n")
	fmt.Printf("API URL: %s\n", apiURL)
	fmt.Printf("Catalog file: %s\n\n", catalogFile)

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		fmt.Printf("❌ Error reading file: %v\n", err)
		os.Exit(1)
	}

	var catalog CatalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		fmt.Printf("❌ Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	created := 0
	for _, svc := range catalog.Services {
		if err := post(client, apiURL+"/admin/services", adminToken, svc); err != nil {
			fmt.Printf("❌ service %q: %v\n", svc.Title, err)
			os.Exit(1)
		}
		fmt.Printf("✅ service: %s\n", svc.Title)
		created++
	}
	for _, pro := range catalog.Professionals {
		if err := post(client, apiURL+"/admin/professionals", adminToken, pro); err != nil {
			fmt.Printf("❌ professional %q: %v\n", pro.Name, err)
			os.Exit(1)
		}
		fmt.Printf("✅ professional: %s\n", pro.Name)
		created++
	}

	fmt.Printf("\n🎉 Done, %d records created\n", created)
}

func post(client *http.Client, url, token string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
