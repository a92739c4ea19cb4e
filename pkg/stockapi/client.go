// Package stockapi looks up current share prices for public tickers. It is
// used only to pre-populate a grant's price field; the calculation engine
// never fetches prices itself.
package stockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Quote is the price of one ticker at lookup time.
type Quote struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	SourceURL string    `json:"source_url,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				Currency           string  `json:"currency"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// GetQuote fetches the current market price for a ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*Quote, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	url := fmt.Sprintf("%s/%s?interval=1d&range=1d", c.baseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, err
	}

	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for ticker %s", ticker)
	}

	meta := chart.Chart.Result[0].Meta
	currency := meta.Currency
	if currency == "" {
		currency = "USD"
	}

	return &Quote{
		Ticker:    ticker,
		Price:     meta.RegularMarketPrice,
		Currency:  currency,
		SourceURL: url,
		FetchedAt: time.Now(),
	}, nil
}
