package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
)

// Submits sample leads against a running instance. Handy for populating a
// fresh database before demoing the admin page.
//
// Usage example on the command line:
// > go run main.go -url=http://localhost:8080 -count=3
func main() {
	urlPtr := flag.String("url", "http://localhost:8080", "base URL of the running service")
	countPtr := flag.Int("count", 1, "how many sample leads to submit")
	flag.Parse()

	samples := []map[string]string{
		{
			"name":    "Ann Example",
			"email":   "ann@example.com",
			"phone":   "+1 555 0100",
			"service": "wash",
			"message": "please quote",
		},
		{
			"name":    "Bob Builder",
			"email":   "bob@example.org",
			"service": "gutter cleaning",
			"message": "two-story house, need an estimate",
		},
		{
			"name":    "Carla Cliente",
			"email":   "carla@example.net",
			"phone":   "+1 555 0199",
			"service": "window cleaning",
			"message": "monthly schedule possible?",
		},
	}

	for i := 0; i < *countPtr; i++ {
		sample := samples[i%len(samples)]
		body, err := json.Marshal(sample)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not marshal sample:", err)
			os.Exit(1)
		}
		res, err := http.Post(*urlPtr+"/api/leads", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Fprintln(os.Stderr, "request failed:", err)
			os.Exit(1)
		}
		var envelope map[string]interface{}
		if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
			fmt.Fprintln(os.Stderr, "could not decode response:", err)
			os.Exit(1)
		}
		res.Body.Close()
		fmt.Printf("%s -> %d %v\n", sample["name"], res.StatusCode, envelope)
	}
}
