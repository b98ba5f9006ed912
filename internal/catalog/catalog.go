package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	_ "embed"
)

//go:embed tools.json
var defaultsJSON []byte

// Entry is one approved tool in the catalog. Security lists the compliance
// tags the vendor satisfies; an entry is only recommended when it covers
// every security requirement on the record.
type Entry struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	PriceBand    string   `json:"priceBand"`
	PriceMonthly int      `json:"priceMonthly"`
	Tags         []string `json:"tags"`
	Security     []string `json:"security"`
}

// Catalog is the read-only set of approved tools, indexed by category.
type Catalog struct {
	entries    []Entry
	byCategory map[string][]Entry
}

// Load builds a catalog from the embedded defaults, or from the JSON file at
// path when one is given.
func Load(path string) (*Catalog, error) {
	raw := defaultsJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		raw = b
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byCategory := make(map[string][]Entry)
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Category) == "" {
			return nil, fmt.Errorf("catalog entry %d missing name or category", i)
		}
		if e.PriceMonthly < 0 {
			return nil, fmt.Errorf("catalog entry %q has negative price", e.Name)
		}
		key := strings.ToLower(e.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.Name)
		}
		seen[key] = struct{}{}
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}
	for _, list := range byCategory {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}

	return &Catalog{entries: entries, byCategory: byCategory}, nil
}

// MustDefaults loads the embedded catalog and panics if it does not parse.
// Reserved for tests and static wiring where the embed is the only source.
func MustDefaults() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

// ByCategory returns the entries in a category, sorted by name.
func (c *Catalog) ByCategory(category string) []Entry {
	return c.byCategory[category]
}

// Len reports the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Names lists every tool name, sorted, for prompt construction.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Covers reports whether the entry's security tags include every requirement.
func (e Entry) Covers(requirements []string) bool {
	for _, req := range requirements {
		found := false
		for _, tag := range e.Security {
			if strings.EqualFold(tag, req) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
