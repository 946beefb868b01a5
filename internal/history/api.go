package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"RiskScreener/internal/model"
)

// APIProvider fetches history from a structured JSON endpoint keyed by
// symbol, date range, and frequency. The whole range comes back in one
// call, so no pagination is needed.
type APIProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewAPIProvider creates an API provider with optional proxy support.
func NewAPIProvider(baseURL, proxyURL string, timeout time.Duration) *APIProvider {
	return &APIProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (p *APIProvider) Name() string { return "api" }

// apiHistory is the expected response shape: a prices array holding
// trading days and interleaved corporate-action events. Event entries
// carry a type tag and omit price fields.
type apiHistory struct {
	Prices []struct {
		Date     int64    `json:"date"`
		Open     *float64 `json:"open"`
		Close    *float64 `json:"close"`
		AdjClose *float64 `json:"adjclose"`
		Type     string   `json:"type"`
	} `json:"prices"`
	Error *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// FetchHistory retrieves and assembles the full range in a single call.
func (p *APIProvider) FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error) {
	symbol = strings.ToUpper(symbol)
	if err := (model.DateRange{Start: start, End: end}).Validate(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/history?symbol=%s&period1=%d&period2=%d&frequency=1d",
		p.BaseURL, url.QueryEscape(symbol), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &model.TransportError{Symbol: symbol, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", browserHeaders["user-agent"])

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &model.TransportError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &model.NotFoundError{Symbol: symbol}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.TransportError{
			Symbol: symbol,
			Err:    fmt.Errorf("status %d from %s", resp.StatusCode, req.URL.Host),
		}
	}

	var payload apiHistory
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &model.ParseError{Symbol: symbol, Reason: "malformed JSON"}
	}
	if payload.Error != nil {
		return nil, &model.NotFoundError{Symbol: symbol}
	}
	if len(payload.Prices) == 0 {
		return nil, &model.NotFoundError{Symbol: symbol}
	}

	frag := Fragment{Rows: make([]RawRow, 0, len(payload.Prices))}
	for _, entry := range payload.Prices {
		row := RawRow{Date: strconv.FormatInt(entry.Date, 10)}
		if entry.Type != "" {
			// Event entry: surface the type in the Open field so the
			// assembler's event filter recognizes it.
			row.Open = entry.Type
		} else {
			row.Open = formatPrice(entry.Open)
			row.Close = formatPrice(entry.Close)
			row.AdjClose = formatPrice(entry.AdjClose)
		}
		frag.Rows = append(frag.Rows, row)
	}

	return Assemble(symbol, []Fragment{frag}, AssembleOptions{
		Trailer:   TrailerLast,
		ParseDate: parseUnixDate,
	})
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseUnixDate(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}
