// Package router validates incoming /search requests and hands them to
// the search service.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
	"github.com/mohammed-shakir/eia-search/internal/core/observability"
)

// Searcher serves validated search requests.
type Searcher interface {
	Search(ctx context.Context, q model.QueryParameters) string
}

// HandleSearch parses query parameters, runs the search and writes the
// Markdown result. The search itself never fails; only malformed input
// yields a non-200.
func HandleSearch(logger *slog.Logger, s Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		q, err := ParseSearchRequest(r)
		if err != nil {
			logger.Warn("rejecting search request", "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			observability.ObserveHTTP(r.Method, "/search", http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		out := s.Search(r.Context(), q)

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(out))
		observability.ObserveHTTP(r.Method, "/search", http.StatusOK, time.Since(start).Seconds())
	}
}

// ParseSearchRequest maps URL query parameters onto QueryParameters.
// Facets arrive as repeated facet=category:value pairs, sort as a single
// column:direction pair.
func ParseSearchRequest(r *http.Request) (model.QueryParameters, error) {
	qs := r.URL.Query()

	query := strings.TrimSpace(qs.Get("q"))
	if query == "" {
		return model.QueryParameters{}, errors.New("missing required parameter: q")
	}

	out := model.QueryParameters{
		Query:       query,
		Frequency:   strings.TrimSpace(qs.Get("frequency")),
		StartPeriod: strings.TrimSpace(qs.Get("start")),
		EndPeriod:   strings.TrimSpace(qs.Get("end")),
	}

	for _, raw := range qs["facet"] {
		cat, val, ok := strings.Cut(raw, ":")
		cat, val = strings.TrimSpace(cat), strings.TrimSpace(val)
		if !ok || cat == "" || val == "" {
			return model.QueryParameters{}, fmt.Errorf("invalid facet %q: expected category:value", raw)
		}
		if out.Facets == nil {
			out.Facets = map[string][]string{}
		}
		out.Facets[cat] = append(out.Facets[cat], val)
	}

	if rawSort := strings.TrimSpace(qs.Get("sort")); rawSort != "" {
		col, dir, ok := strings.Cut(rawSort, ":")
		col, dir = strings.TrimSpace(col), strings.TrimSpace(dir)
		if !ok || col == "" || dir == "" {
			return model.QueryParameters{}, fmt.Errorf("invalid sort %q: expected column:direction", rawSort)
		}
		out.Sort = &model.SortSpec{Column: col, Direction: dir}
	}

	for _, col := range qs["data"] {
		if col = strings.TrimSpace(col); col != "" {
			out.DataColumns = append(out.DataColumns, col)
		}
	}

	var err error
	if out.Length, err = parseCount(qs.Get("length")); err != nil {
		return model.QueryParameters{}, fmt.Errorf("invalid length: %w", err)
	}
	if out.Offset, err = parseCount(qs.Get("offset")); err != nil {
		return model.QueryParameters{}, fmt.Errorf("invalid offset: %w", err)
	}

	return out, nil
}

func parseCount(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse int: %w", err)
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}
