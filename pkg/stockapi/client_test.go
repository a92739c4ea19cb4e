package stockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ACME" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"chart": {
				"result": [
					{"meta": {"regularMarketPrice": 51.25, "currency": "USD"}}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	quote, err := client.GetQuote(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}

	if quote.Price != 51.25 {
		t.Errorf("price = %v, want 51.25", quote.Price)
	}
	if quote.Currency != "USD" {
		t.Errorf("currency = %q, want USD", quote.Currency)
	}
	if quote.Ticker != "ACME" {
		t.Errorf("ticker = %q, want ACME", quote.Ticker)
	}
	if quote.SourceURL == "" {
		t.Error("source URL should be recorded")
	}
}

func TestGetQuote_DefaultsCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice": 10}}]}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	quote, err := client.GetQuote(context.Background(), "PRIV")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.Currency != "USD" {
		t.Errorf("currency should default to USD, got %q", quote.Currency)
	}
}

func TestGetQuote_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/MISSING":
			_, _ = w.Write([]byte(`{"chart":{"result":[]}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	if _, err := client.GetQuote(context.Background(), "MISSING"); err == nil {
		t.Error("expected an error for an empty result set")
	}
	if _, err := client.GetQuote(context.Background(), "DOWN"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
	if _, err := client.GetQuote(context.Background(), ""); err == nil {
		t.Error("expected an error for an empty ticker")
	}
}
