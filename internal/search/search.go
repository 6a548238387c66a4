// Package search queries the Google Custom Search JSON API and shapes the
// results for AI summarization.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Result is one search hit; only title and link are carried forward.
type Result struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	engineID   string
	baseURL    string
}

func NewClient(apiKey, engineID string) *Client {
	return &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		engineID:   engineID,
		baseURL:    defaultBaseURL,
	}
}

// Search issues one GET for query. A 200 response yields the ordered items
// (possibly empty); any other status means "no results" and returns a nil
// slice with no error. Only transport-level failures return an error.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Items []Result `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// FormatResults joins the hits into the listing handed to the summarizer,
// one "**title**: link" line per result.
func FormatResults(results []Result) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("**%s**: %s", r.Title, r.Link))
	}
	return strings.Join(lines, "\n")
}
