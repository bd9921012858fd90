package shopsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to the shop API. Session bound calls take the session token
// explicitly; the client itself holds no credentials.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// UserAgent is sent with every request. The server derives the stored
	// device fingerprint from it.
	UserAgent string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: "shopsdk-go",
	}
}
