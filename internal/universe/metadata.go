package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Listing is one row of the instrument metadata table.
type Listing struct {
	Code        string
	Name        string
	Description string
	RefreshedAt string
	FromDate    string
	ToDate      string
}

// Match pairs a listing with its similarity ratio (0-100) against a
// search query.
type Match struct {
	Ratio   int
	Listing Listing
}

// LoadListings reads the metadata CSV
// [code, name, description, refreshed_at, from_date, to_date],
// skipping the header row.
func LoadListings(path string) ([]Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var listings []Listing
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		l := Listing{}
		fields := []*string{&l.Code, &l.Name, &l.Description, &l.RefreshedAt, &l.FromDate, &l.ToDate}
		for j := range fields {
			if j < len(row) {
				*fields[j] = row[j]
			}
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Search returns the listings whose name best matches the query. All
// rows sharing the top ratio are returned, in file order; a higher
// ratio replaces the set, an equal ratio extends it.
func Search(listings []Listing, query string) []Match {
	best := -1
	var matches []Match
	for _, l := range listings {
		r := ratio(l.Name, query)
		switch {
		case r > best:
			best = r
			matches = matches[:0]
			matches = append(matches, Match{Ratio: r, Listing: l})
		case r == best:
			matches = append(matches, Match{Ratio: r, Listing: l})
		}
	}
	return matches
}

// ratio is a Levenshtein-based similarity score on [0,100],
// case-insensitive.
func ratio(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (longest - dist) * 100 / longest
}
