package universe

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTickerList reads a pipe-delimited symbol listing file. The first
// line is a header and the last line is a non-ticker footer; both are
// excluded. Field 0 of each remaining line is the symbol. maxSymbols
// caps the result when positive.
func LoadTickerList(path string, maxSymbols int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ticker list: %w", err)
	}
	defer f.Close()

	var symbols []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		symbols = append(symbols, strings.SplitN(line, "|", 2)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ticker list: %w", err)
	}

	// Trailing footer row (file creation timestamp, not a ticker).
	if len(symbols) > 0 {
		symbols = symbols[:len(symbols)-1]
	}
	if maxSymbols > 0 && len(symbols) > maxSymbols {
		symbols = symbols[:maxSymbols]
	}
	return symbols, nil
}
