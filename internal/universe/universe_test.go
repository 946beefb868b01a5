package universe

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTickerList(t *testing.T) {
	path := writeFile(t, "nasdaqlisted.txt",
		"Symbol|Security Name|Market Category|Test Issue|Financial Status|Round Lot Size\n"+
			"AAPL|Apple Inc.|Q|N|N|100\n"+
			"MSFT|Microsoft Corporation|Q|N|N|100\n"+
			"TSLA|Tesla, Inc.|Q|N|N|100\n"+
			"File Creation Time: 0102202522:01|||||\n")

	symbols, err := LoadTickerList(path, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"AAPL", "MSFT", "TSLA"}
	if len(symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %v", len(want), symbols)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbol %d: want %s, got %s", i, want[i], symbols[i])
		}
	}
}

func TestLoadTickerList_MaxSymbols(t *testing.T) {
	path := writeFile(t, "list.txt",
		"Symbol|Name\nAAA|a\nBBB|b\nCCC|c\nfooter|\n")
	symbols, err := LoadTickerList(path, 2)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAA" || symbols[1] != "BBB" {
		t.Errorf("expected first 2 symbols, got %v", symbols)
	}
}

func TestLoadTickerList_HeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.txt", "Symbol|Name\n")
	symbols, err := LoadTickerList(path, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("expected no symbols, got %v", symbols)
	}
}

const metadataCSV = `code,name,description,refreshed_at,from_date,to_date
00001,CKH HOLDINGS (00001),Stock prices,2020-01-01,2010-01-01,2020-01-01
00005,HSBC HOLDINGS (00005),Stock prices,2020-01-01,2010-01-01,2020-01-01
05806,NEW CO A (05806),Stock prices,2020-01-01,2010-01-01,2020-01-01
05807,NEW CO B (05806),Stock prices,2020-01-01,2010-01-01,2020-01-01
`

func TestSearch_BestMatch(t *testing.T) {
	path := writeFile(t, "metadata.csv", metadataCSV)
	listings, err := LoadListings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(listings) != 4 {
		t.Fatalf("expected 4 listings, got %d", len(listings))
	}

	matches := Search(listings, "HSBC HOLDINGS (00005)")
	if len(matches) != 1 {
		t.Fatalf("expected a single best match, got %d", len(matches))
	}
	if matches[0].Listing.Code != "00005" {
		t.Errorf("want code 00005, got %s", matches[0].Listing.Code)
	}
	if matches[0].Ratio != 100 {
		t.Errorf("exact name should score 100, got %d", matches[0].Ratio)
	}
}

func TestSearch_TiesPreserved(t *testing.T) {
	path := writeFile(t, "metadata.csv", metadataCSV)
	listings, err := LoadListings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// "NEW CO A (05806)" and "NEW CO B (05806)" differ from the query
	// by the same single character, so both tie for best.
	matches := Search(listings, "NEW CO X (05806)")
	if len(matches) != 2 {
		t.Fatalf("expected 2 tied matches, got %d", len(matches))
	}
	if matches[0].Listing.Code != "05806" || matches[1].Listing.Code != "05807" {
		t.Errorf("ties should keep file order, got %+v", matches)
	}
	if matches[0].Ratio != matches[1].Ratio {
		t.Errorf("tie ratios differ: %d vs %d", matches[0].Ratio, matches[1].Ratio)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	listings := []Listing{{Code: "1", Name: "Apple"}}
	upper := Search(listings, "APPLE")
	if upper[0].Ratio != 100 {
		t.Errorf("case should not matter, got ratio %d", upper[0].Ratio)
	}
}
