// Package bybit implements the price-provider collaborator on top of the
// Bybit v5 market-data REST API. Only public market endpoints are used;
// no account or order surface is exposed.
package bybit

import (
	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// Client wraps the Bybit API client for market-data retrieval.
type Client struct {
	httpClient *bybit_api.Client
	testnet    bool
}

// Config holds the Bybit client configuration. Market-data endpoints are
// public, so the credentials may be empty.
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
}

// NewClient creates a Bybit market-data client.
func NewClient(config Config) *Client {
	baseURL := bybit_api.MAINNET
	if config.Testnet {
		baseURL = bybit_api.TESTNET
	}

	httpClient := bybit_api.NewBybitHttpClient(
		config.APIKey,
		config.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &Client{httpClient: httpClient, testnet: config.Testnet}
}

// IsTestnet reports whether the client targets the testnet.
func (c *Client) IsTestnet() bool {
	return c.testnet
}
