// Package search composes resolver, metadata cache, parameter formatter,
// API client and renderer into the search_energy_data entry point.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mohammed-shakir/eia-search/internal/catalog"
	"github.com/mohammed-shakir/eia-search/internal/core/model"
	"github.com/mohammed-shakir/eia-search/internal/core/observability"
	"github.com/mohammed-shakir/eia-search/internal/eia"
	"github.com/mohammed-shakir/eia-search/internal/logger"
	"github.com/mohammed-shakir/eia-search/internal/render"
)

// NoRouteFound is the fixed message for queries matching no catalog route.
const NoRouteFound = "No matching dataset was found for this query. " +
	"Try naming the energy source or dataset, for example electricity, natural gas, petroleum, coal or CO2 emissions."

// ApiClient is the slice of the EIA client the orchestrator needs.
type ApiClient interface {
	Request(ctx context.Context, path string, params url.Values) (*eia.Envelope, error)
}

// MetadataSource is the slice of the metadata cache the orchestrator needs.
type MetadataSource interface {
	Get(ctx context.Context, route model.Route) (*model.RouteMetadata, error)
}

type Service struct {
	logger *slog.Logger
	api    ApiClient
	meta   MetadataSource
}

func New(log *slog.Logger, api ApiClient, meta MetadataSource) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{logger: log, api: api, meta: meta}
}

// Search runs one resolve → metadata → format → fetch → render sequence.
// It always returns a human-readable string; errors never escape, and a
// failed call has no effect on later calls or on the metadata cache.
func (s *Service) Search(ctx context.Context, q model.QueryParameters) string {
	route, ok := catalog.Resolve(q.Query)
	if !ok {
		observability.ObserveRouteResolution("")
		observability.ObserveSearch("no_route")
		s.logger.InfoContext(ctx, "no route matched query", "query", q.Query)
		return NoRouteFound
	}
	observability.ObserveRouteResolution(route.ID)
	ctx = logger.WithRoute(ctx, route.ID)

	q = s.validateFacets(ctx, q, route)

	if q.Length <= 0 {
		q.Length = eia.DefaultLength
	}
	params, err := eia.BuildParams(q)
	if err != nil {
		observability.ObserveSearch("validation_error")
		s.logger.WarnContext(ctx, "invalid query parameters", "query", q.Query, "err", err)
		return fmt.Sprintf("Invalid request: %v.", err)
	}

	env, err := s.api.Request(ctx, route.DataPath(), params)
	if err != nil {
		return s.failureMessage(ctx, route, params, err)
	}

	recs, err := env.Records()
	if err != nil {
		observability.ObserveSearch("api_error")
		s.logger.ErrorContext(ctx, "unparseable data payload", "params", params.Encode(), "err", err)
		return "The EIA API returned data in an unexpected shape. Please try again or refine the query."
	}
	if len(recs) == 0 {
		observability.ObserveSearch("empty")
		return render.NoResults
	}

	observability.ObserveSearch("ok")
	return render.TableWithTotal(recs, env.Total())
}

// validateFacets drops facet categories the route does not know, with a
// logged warning rather than a hard failure. Upstream metadata is the
// source of truth when available; a metadata failure degrades to the
// static catalog's facet list and never fails the search.
func (s *Service) validateFacets(ctx context.Context, q model.QueryParameters, route model.Route) model.QueryParameters {
	if len(q.Facets) == 0 {
		return q
	}

	knows := route.KnowsFacet
	md, err := s.meta.Get(ctx, route)
	if err != nil {
		s.logger.WarnContext(ctx, "metadata unavailable, validating against static catalog", "err", err)
	} else if len(md.Facets) > 0 {
		knows = md.KnowsFacet
	}

	kept := make(map[string][]string, len(q.Facets))
	for cat, vals := range q.Facets {
		if !knows(cat) {
			s.logger.WarnContext(ctx, "dropping unknown facet category",
				"facet", cat, "values", strings.Join(vals, ","))
			continue
		}
		kept[cat] = vals
	}
	q.Facets = kept
	return q
}

func (s *Service) failureMessage(ctx context.Context, route model.Route, params url.Values, err error) string {
	var apiErr *eia.ApiError
	if errors.As(err, &apiErr) {
		observability.ObserveSearch("api_error")
		s.logger.ErrorContext(ctx, "eia api error",
			"route", route.ID, "params", params.Encode(), "status", apiErr.Status, "body", apiErr.Body)
		return fmt.Sprintf("The EIA API rejected the request (status %d): %s", apiErr.Status, truncate(apiErr.Body, 500))
	}

	var tErr *eia.TransportError
	if errors.As(err, &tErr) {
		observability.ObserveSearch("transport_error")
		s.logger.ErrorContext(ctx, "eia transport error",
			"route", route.ID, "params", params.Encode(), "err", tErr.Err)
		return "Could not reach the EIA API. The service may be temporarily unavailable; please try again."
	}

	observability.ObserveSearch("error")
	s.logger.ErrorContext(ctx, "search failed",
		"route", route.ID, "params", params.Encode(), "err", err)
	return fmt.Sprintf("The search failed: %v.", err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
