package shopsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every call when NewClient builds the http.Client.
const DefaultTimeout = 10 * time.Second

// Client talks to one storefront backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets one with
// DefaultTimeout and the default transport.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: httpClient,
	}
}
