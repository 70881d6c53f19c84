package changelog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fetcher retrieves the raw changelog document over HTTP.
type Fetcher struct {
	client *http.Client
	url    string
}

func NewFetcher(client *http.Client, url string) *Fetcher {
	return &Fetcher{client: client, url: strings.TrimSpace(url)}
}

// Fetch returns the document body. A transport error or non-2xx response is
// returned as an error; the caller aborts its round with no side effects.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", f.url, nil)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get changelog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read changelog body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("changelog status %d: %s", resp.StatusCode, string(body))
	}

	return string(body), nil
}
