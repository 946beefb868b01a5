package history

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"RiskScreener/internal/model"
)

// scrapeDateLayout is the date format used in the scraped history table.
const scrapeDateLayout = "Jan 02, 2006"

// browserHeaders is the fixed realistic header set sent with every page
// request. The site rejects default client identifiers.
var browserHeaders = map[string]string{
	"accept":                    "text/html,application/xhtml+xml",
	"accept-language":           "en-US,en;q=0.9",
	"cache-control":             "no-cache",
	"dnt":                       "1",
	"pragma":                    "no-cache",
	"sec-fetch-mode":            "navigate",
	"sec-fetch-site":            "same-origin",
	"sec-fetch-user":            "?1",
	"upgrade-insecure-requests": "1",
	"user-agent":                "Mozilla/5.0 (Windows NT 10.0; Win64)",
}

// ScrapeProvider fetches history by scraping the paginated HTML history
// pages of a finance site. Ranges longer than PageSize trading days are
// split into pages and fetched concurrently.
type ScrapeProvider struct {
	BaseURL  string
	PageSize int
	Workers  int
	Client   *http.Client
}

// NewScrapeProvider creates a scraping provider with optional proxy
// support. pageSize and workers fall back to the documented defaults
// when non-positive.
func NewScrapeProvider(baseURL, proxyURL string, pageSize, workers int, timeout time.Duration) *ScrapeProvider {
	if baseURL == "" {
		baseURL = "https://finance.yahoo.com"
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if workers <= 0 {
		workers = 30
	}
	return &ScrapeProvider{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		PageSize: pageSize,
		Workers:  workers,
		Client:   newHTTPClient(proxyURL, timeout),
	}
}

func (p *ScrapeProvider) Name() string { return "scrape" }

// FetchHistory plans the page layout for the range, fetches all pages
// through a bounded worker pool, and assembles the fragments in page
// order. A NotFoundError or ParseError on any single page cancels the
// remaining fetches: partial history for a symbol is not acceptable.
func (p *ScrapeProvider) FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error) {
	symbol = strings.ToUpper(symbol)
	pages, err := Plan(start, end, p.PageSize)
	if err != nil {
		return nil, err
	}

	workers := p.Workers
	if len(pages) < workers {
		workers = len(pages)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	fragments := make([]Fragment, len(pages))
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			frag, err := p.fetchPage(gctx, symbol, page)
			if err != nil {
				return err
			}
			fragments[i] = frag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Assemble(symbol, fragments, AssembleOptions{
		Trailer:   TrailerPerFragment,
		ParseDate: parseScrapeDate,
	})
}

// pageURL encodes one page's boundaries as unix-second query params.
func (p *ScrapeProvider) pageURL(symbol string, page model.Page) string {
	return fmt.Sprintf("%s/quote/%s/history?period1=%d&period2=%d&interval=1d&filter=history&frequency=1d",
		p.BaseURL, url.PathEscape(symbol), page.Start.Unix(), page.End.Unix())
}

// fetchPage retrieves one history page and extracts the first markup
// table as a raw fragment.
func (p *ScrapeProvider) fetchPage(ctx context.Context, symbol string, page model.Page) (Fragment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.pageURL(symbol, page), nil)
	if err != nil {
		return Fragment{}, &model.TransportError{Symbol: symbol, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return Fragment{}, &model.TransportError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Fragment{}, &model.NotFoundError{Symbol: symbol}
	}
	if resp.StatusCode != http.StatusOK {
		return Fragment{}, &model.TransportError{
			Symbol: symbol,
			Err:    fmt.Errorf("status %d from %s", resp.StatusCode, req.URL.Host),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Fragment{}, &model.ParseError{Symbol: symbol, Reason: "unreadable response body"}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		if isLookupMiss(doc) {
			return Fragment{}, &model.NotFoundError{Symbol: symbol}
		}
		return Fragment{}, &model.ParseError{Symbol: symbol, Reason: "no table in response"}
	}

	return tableFragment(table), nil
}

// isLookupMiss detects the "no such symbol" page, which has no history
// table but offers symbol suggestions instead.
func isLookupMiss(doc *goquery.Document) bool {
	text := doc.Text()
	return strings.Contains(text, "No results for") ||
		strings.Contains(text, "Symbols similar to")
}

// tableFragment converts the table element into raw rows. Trading-day
// rows carry seven cells (Date, Open, High, Low, Close, Adj Close,
// Volume); corporate-action rows carry two, with the annotation in the
// second cell so the event filter can see it in the Open field.
func tableFragment(table *goquery.Selection) Fragment {
	var frag Fragment
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		switch cells.Length() {
		case 7:
			frag.Rows = append(frag.Rows, RawRow{
				Date:     cellText(cells, 0),
				Open:     cellText(cells, 1),
				Close:    cellText(cells, 4),
				AdjClose: cellText(cells, 5),
			})
		case 2:
			frag.Rows = append(frag.Rows, RawRow{
				Date: cellText(cells, 0),
				Open: cellText(cells, 1),
			})
		case 1:
			// Footer/legend row spanning the table.
			frag.Rows = append(frag.Rows, RawRow{Date: cellText(cells, 0)})
		}
	})
	return frag
}

func cellText(cells *goquery.Selection, i int) string {
	return strings.TrimSpace(cells.Eq(i).Text())
}

func parseScrapeDate(s string) (time.Time, error) {
	return time.Parse(scrapeDateLayout, s)
}
