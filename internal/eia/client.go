// Package eia implements the client for the EIA v2 HTTP API: parameter
// serialization, the authenticated GET, and envelope parsing.
package eia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
	"github.com/mohammed-shakir/eia-search/internal/core/observability"
)

const userAgent = "eia-search/1.0"

// cap on error bodies carried into ApiError
const maxErrBody = 8 << 10

type Client struct {
	logger  *slog.Logger
	http    *http.Client
	baseURL *url.URL
	apiKey  string
	now     func() time.Time // for tests
}

func New(logger *slog.Logger, httpClient *http.Client, baseURL, apiKey string) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger:  logger,
		http:    httpClient,
		baseURL: u,
		apiKey:  apiKey,
		now:     time.Now,
	}, nil
}

// Envelope is the parsed EIA v2 response wrapper.
type Envelope struct {
	Response responseBody    `json:"response"`
	Error    json.RawMessage `json:"error"`
}

type responseBody struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Total            json.Number     `json:"total"`
	Data             json.RawMessage `json:"data"`
	Facets           json.RawMessage `json:"facets"`
	Frequency        json.RawMessage `json:"frequency"`
	StartPeriod      string          `json:"startPeriod"`
	EndPeriod        string          `json:"endPeriod"`
	DefaultFrequency string          `json:"defaultFrequency"`
	Warnings         json.RawMessage `json:"warnings"`
	Error            string          `json:"error"`
}

// Total returns the record count the API reports for the full result set,
// or -1 when the envelope does not carry one.
func (e *Envelope) Total() int64 {
	if e.Response.Total == "" {
		return -1
	}
	if n, err := e.Response.Total.Int64(); err == nil {
		return n
	}
	return -1
}

// Records decodes the tabular data payload. A missing or null data field
// decodes to nil.
func (e *Envelope) Records() ([]model.Record, error) {
	if len(e.Response.Data) == 0 || string(e.Response.Data) == "null" {
		return nil, nil
	}
	var recs []model.Record
	if err := json.Unmarshal(e.Response.Data, &recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return recs, nil
}

// Request issues an authenticated GET against baseURL + path with the
// formatted query string. Non-2xx responses and envelope-level errors
// become *ApiError; network and timeout failures become *TransportError.
// No automatic retry.
func (c *Client) Request(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimLeft(path, "/")

	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	kind := "metadata"
	if strings.Contains(path, "/data") {
		kind = "data"
	}

	start := c.now()
	resp, err := c.http.Do(req)
	dur := time.Since(start)
	observability.ObserveUpstreamLatency(kind, dur.Seconds())
	if err != nil {
		c.logger.ErrorContext(ctx, "eia request failed", "path", path, "err", err)
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		c.logger.ErrorContext(ctx, "eia non-2xx response",
			"path", path, "status", resp.StatusCode, "body_bytes", len(b))
		return nil, &ApiError{Status: resp.StatusCode, Body: string(b)}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode envelope: %w", err)}
	}

	// the API reports some failures inside a 2xx envelope
	if env.Response.Error != "" {
		return nil, &ApiError{Status: resp.StatusCode, Body: env.Response.Error}
	}
	if len(env.Error) > 0 && string(env.Error) != "null" {
		return nil, &ApiError{Status: resp.StatusCode, Body: string(env.Error)}
	}

	c.logger.DebugContext(ctx, "eia request done",
		"path", path, "duration", dur.String(), "total", env.Total())
	return &env, nil
}

// FetchRouteMetadata retrieves and normalizes the metadata descriptor for
// one catalog route (facets, frequencies, data columns).
func (c *Client) FetchRouteMetadata(ctx context.Context, route model.Route) (*model.RouteMetadata, error) {
	env, err := c.Request(ctx, route.Path, nil)
	if err != nil {
		return nil, err
	}

	md := &model.RouteMetadata{
		RouteID:          route.ID,
		Name:             env.Response.Name,
		Description:      env.Response.Description,
		StartPeriod:      env.Response.StartPeriod,
		EndPeriod:        env.Response.EndPeriod,
		DefaultFrequency: env.Response.DefaultFrequency,
		FetchedAt:        c.now().UTC(),
	}

	if len(env.Response.Facets) > 0 {
		var facets []model.FacetMeta
		if err := json.Unmarshal(env.Response.Facets, &facets); err == nil {
			md.Facets = facets
		}
	}
	if len(env.Response.Frequency) > 0 {
		var freqs []model.FrequencyMeta
		if err := json.Unmarshal(env.Response.Frequency, &freqs); err == nil {
			md.Frequencies = freqs
		}
	}
	md.DataColumns = parseDataColumns(env.Response.Data)

	return md, nil
}

// The metadata "data" field is usually an object keyed by column id, but
// some routes return a plain list.
func parseDataColumns(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err == nil {
		cols := make([]string, 0, len(asMap))
		for id := range asMap {
			cols = append(cols, id)
		}
		sort.Strings(cols)
		return cols
	}
	var asList []json.RawMessage
	if err := json.Unmarshal(raw, &asList); err == nil {
		var cols []string
		for _, item := range asList {
			var s string
			if json.Unmarshal(item, &s) == nil {
				cols = append(cols, s)
				continue
			}
			var obj struct {
				ID string `json:"id"`
			}
			if json.Unmarshal(item, &obj) == nil && obj.ID != "" {
				cols = append(cols, obj.ID)
			}
		}
		return cols
	}
	return nil
}
