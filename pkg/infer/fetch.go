package infer

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "sketchlang/1.0 (compatible; Go)"

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetch retrieves the markup at the given URL.
func Fetch(rawURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}
	return io.ReadAll(resp.Body)
}
