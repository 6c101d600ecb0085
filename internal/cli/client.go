package cli

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for the profile server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// errorDoc is the server's failure response shape
type errorDoc struct {
	XMLName xml.Name `xml:"data"`
	Ok      int      `xml:"ok,attr"`
	Issue   string   `xml:"issue,attr"`
}

// GetJSON performs a GET request against a JSON endpoint
func (c *Client) GetJSON(path string, result any) error {
	body, err := c.get(path, "application/json")
	if err != nil {
		return err
	}
	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// GetXML performs a GET request against an XML endpoint and returns the raw
// document
func (c *Client) GetXML(path string) (string, error) {
	body, err := c.get(path, "text/xml")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(path, accept string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var doc errorDoc
		if err := xml.Unmarshal(body, &doc); err == nil && doc.Issue != "" {
			return nil, fmt.Errorf("%s (HTTP %d)", doc.Issue, resp.StatusCode)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
