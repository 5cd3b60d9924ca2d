// Package pricing reads market price tables.
package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/osse101/BlueprintCost_Go/internal/catalog"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

// Snapshot is a price table with the digest of the document it came from
type Snapshot struct {
	Prices  domain.PriceTable
	Version string
}

// Source supplies price snapshots
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
	Name() string
}

// Parse reads a market price feed: an array of
// {"type_id", "average_price", "adjusted_price"} objects.
// average_price wins over adjusted_price; entries without a positive price are skipped.
// A type_id beyond the TypeID range fails the whole feed.
func Parse(data []byte) (domain.PriceTable, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", domain.ErrInvalidPriceTable)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of prices", domain.ErrInvalidPriceTable)
	}

	prices := make(domain.PriceTable, len(root.Array()))
	var parseErr error
	root.ForEach(func(_, v gjson.Result) bool {
		raw := v.Get("type_id").Int()
		if raw <= 0 {
			return true
		}
		id, ok := domain.TypeIDFromInt(raw)
		if !ok {
			parseErr = fmt.Errorf("%w: type_id %d out of range", domain.ErrInvalidPriceTable, raw)
			return false
		}
		if p := v.Get("average_price").Float(); p > 0 {
			prices[id] = p
		} else if p := v.Get("adjusted_price").Float(); p > 0 {
			prices[id] = p
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return prices, nil
}

func snapshot(data []byte) (*Snapshot, error) {
	prices, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Prices: prices, Version: catalog.Digest(data)}, nil
}

// FileSource reads prices from a local JSON file
type FileSource struct {
	Path string
}

// Fetch reads and parses the file
func (s *FileSource) Fetch(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price file: %w", err)
	}
	return snapshot(data)
}

func (s *FileSource) Name() string { return "file:" + s.Path }

// HTTPSource downloads prices from a market endpoint
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTPSource with its own client timeout
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Fetch downloads and parses the price feed
func (s *HTTPSource) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch prices: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read price response: %w", err)
	}
	return snapshot(data)
}

func (s *HTTPSource) Name() string { return "http:" + s.URL }

// MaxFeedBytes caps the size of a downloaded price feed
const MaxFeedBytes = 64 << 20

// NewSource picks the HTTP feed when url is set, the file otherwise
func NewSource(path, url string, timeout time.Duration) Source {
	if url != "" {
		return NewHTTPSource(url, timeout)
	}
	return &FileSource{Path: path}
}
