package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOptions configures NewHTTPClient. Zero values keep resty's
// defaults.
type HTTPClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPClient creates an independent HTTPClient.
//
// resty's own retry support is left disabled: retries are scheduled by the
// sync coordinator.
//
//	client := utils.NewHTTPClient(utils.HTTPClientOptions{BaseURL: "https://backup.example.com"})
//	resp, err := client.R().Get("/backups/list")
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	c := resty.New()
	if opts.BaseURL != "" {
		c.SetBaseURL(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	return &HTTPClient{Client: c}
}
