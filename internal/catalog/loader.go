package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed seed/yachts.json
var seedFeed []byte

// Feed is the document written by the listing scraper.
type Feed struct {
	GeneratedAt string  `json:"generated_at"`
	TotalCount  int     `json:"total_count"`
	Yachts      []Yacht `json:"yachts"`
}

// LoadFeed decodes a feed and builds a validated store from it.
func LoadFeed(r io.Reader) (*MemStore, error) {
	var f Feed
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	if f.TotalCount != 0 && f.TotalCount != len(f.Yachts) {
		return nil, fmt.Errorf("decode feed: total_count=%d but %d yachts", f.TotalCount, len(f.Yachts))
	}
	s, err := NewMemStore(f.Yachts)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return s, nil
}

func LoadFile(path string) (*MemStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFeed(f)
}

// LoadSeed loads the feed compiled into the binary.
func LoadSeed() (*MemStore, error) {
	return LoadFeed(bytes.NewReader(seedFeed))
}
