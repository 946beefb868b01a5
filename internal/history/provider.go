package history

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"RiskScreener/internal/model"
)

// Provider fetches the full daily price history for one symbol over a
// date range. Implementations own their pagination and parsing; callers
// receive an assembled, chronologically ordered series or a taxonomy
// error (NotFoundError, ParseError, DataQualityError, TransportError).
type Provider interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error)
	Name() string
}

// newHTTPClient builds a client with a per-request timeout and optional
// proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
