package history

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RiskScreener/internal/model"
)

func newAPIServer(t *testing.T, handler http.HandlerFunc) *APIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAPIProvider(srv.URL, "", 5*time.Second)
}

func unixOf(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

func TestAPIProvider_FetchHistory(t *testing.T) {
	p := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("symbol") != "AAA" || q.Get("frequency") != "1d" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		fmt.Fprintf(w, `{"prices":[
			{"date":%d,"open":100,"close":101,"adjclose":101},
			{"date":%d,"type":"DIVIDEND"},
			{"date":%d,"open":101,"close":102,"adjclose":102},
			{"date":%d,"open":102,"close":103,"adjclose":103}
		]}`,
			unixOf(2021, 1, 4), unixOf(2021, 1, 5),
			unixOf(2021, 1, 5), unixOf(2021, 1, 6))
	})

	series, err := p.FetchHistory(context.Background(), "aaa",
		date(2021, 1, 4), date(2021, 1, 6))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// The dividend event is filtered and the final row is the single
	// trailer for an API retrieval.
	if series.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", series.Len())
	}
	if series.Records[1].AdjClose != 102 {
		t.Errorf("unexpected last record: %+v", series.Records[1])
	}
}

func TestAPIProvider_EmptyPricesIsNotFound(t *testing.T) {
	p := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"prices":[]}`)
	})
	_, err := p.FetchHistory(context.Background(), "ZZZZZ", date(2021, 1, 4), date(2021, 1, 6))
	var nf *model.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestAPIProvider_MalformedJSONIsParseError(t *testing.T) {
	p := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"prices": [{`)
	})
	_, err := p.FetchHistory(context.Background(), "AAA", date(2021, 1, 4), date(2021, 1, 6))
	var pe *model.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestAPIProvider_StatusNotFound(t *testing.T) {
	p := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := p.FetchHistory(context.Background(), "AAA", date(2021, 1, 4), date(2021, 1, 6))
	var nf *model.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
