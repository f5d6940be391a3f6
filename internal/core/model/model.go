// Package model defines core domain types shared across the service.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Route is one entry of the static EIA v2 route catalog.
type Route struct {
	ID          string
	Path        string
	Description string
	Keywords    []string
	FacetNames  []string
}

// DataPath returns the route path with the trailing /data/ segment
// required by the EIA v2 API for tabular queries.
func (r Route) DataPath() string {
	return strings.TrimSuffix(r.Path, "/") + "/data/"
}

// KnowsFacet reports whether the catalog lists category as a facet of this route.
func (r Route) KnowsFacet(category string) bool {
	for _, f := range r.FacetNames {
		if f == category {
			return true
		}
	}
	return false
}

type FacetMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type FrequencyMeta struct {
	ID          string `json:"id"`
	Query       string `json:"query,omitempty"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
}

// RouteMetadata is the cached per-route descriptor fetched from the API.
// Refreshes replace the entry wholesale; entries are never mutated in place.
type RouteMetadata struct {
	RouteID          string          `json:"route_id"`
	Name             string          `json:"name,omitempty"`
	Description      string          `json:"description,omitempty"`
	Facets           []FacetMeta     `json:"facets,omitempty"`
	Frequencies      []FrequencyMeta `json:"frequencies,omitempty"`
	DataColumns      []string        `json:"data_columns,omitempty"`
	StartPeriod      string          `json:"start_period,omitempty"`
	EndPeriod        string          `json:"end_period,omitempty"`
	DefaultFrequency string          `json:"default_frequency,omitempty"`
	FetchedAt        time.Time       `json:"fetched_at"`
}

// KnowsFacet reports whether the upstream metadata lists category as a facet.
func (m *RouteMetadata) KnowsFacet(category string) bool {
	for _, f := range m.Facets {
		if f.ID == category {
			return true
		}
	}
	return false
}

type SortSpec struct {
	Column    string
	Direction string
}

// QueryParameters is the caller-supplied structured request.
// Transient, constructed once per call.
type QueryParameters struct {
	Query       string
	Facets      map[string][]string
	Frequency   string
	StartPeriod string
	EndPeriod   string
	Sort        *SortSpec
	DataColumns []string
	Length      int
	Offset      int
}

// Record is one row of the EIA tabular payload. Field order is the order
// of first appearance in the JSON object, which a plain map would lose.
type Record struct {
	keys   []string
	values map[string]any
}

// Set adds or replaces a field, preserving first-set order.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns the field names in order of first appearance.
func (r Record) Keys() []string { return r.keys }

// Value returns the field value, nil when absent.
func (r Record) Value(key string) any { return r.values[key] }

// Has reports whether the field is present.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("record: expected JSON object")
	}

	r.keys = nil
	r.values = map[string]any{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return errors.New("record: non-string key")
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		r.Set(key, v)
	}
	_, err = dec.Token() // closing brace
	return err
}
