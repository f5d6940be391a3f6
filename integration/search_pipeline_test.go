package integration

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mohammed-shakir/eia-search/internal/cache/memstore"
	"github.com/mohammed-shakir/eia-search/internal/core/model"
	"github.com/mohammed-shakir/eia-search/internal/eia"
	"github.com/mohammed-shakir/eia-search/internal/metadata"
	"github.com/mohammed-shakir/eia-search/internal/search"
)

const dataEnvelope = `{
  "response": {
    "total": "2",
    "data": [
      {"period": "2023-01", "stateid": "TX", "value": 123.4, "value-units": "million kWh"},
      {"period": "2023-02", "stateid": "TX", "value": 130.1, "value-units": "million kWh"}
    ]
  }
}`

const metadataEnvelope = `{
  "response": {
    "id": "retail-sales",
    "name": "Electricity Retail Sales",
    "facets": [
      {"id": "stateid", "name": "State / Census Region"},
      {"id": "sectorid", "name": "Sector"}
    ],
    "frequency": [{"id": "monthly", "format": "YYYY-MM"}],
    "data": {"value": {"alias": "Retail sales"}}
  }
}`

// fakeEIA serves the two upstream shapes the pipeline touches: the
// tabular /data/ endpoint and the route metadata descriptor.
func fakeEIA(t *testing.T, metadataHits, dataHits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/electricity/retail-sales/data/"):
			dataHits.Add(1)
			if r.URL.Query().Get("api_key") == "" {
				t.Error("data request missing api_key")
			}
			_, _ = w.Write([]byte(dataEnvelope))
		case strings.HasSuffix(r.URL.Path, "/electricity/retail-sales"):
			metadataHits.Add(1)
			_, _ = w.Write([]byte(metadataEnvelope))
		default:
			t.Errorf("unexpected upstream path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

func newPipeline(t *testing.T, baseURL string) *search.Service {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	api, err := eia.New(log, http.DefaultClient, baseURL, "test-key")
	if err != nil {
		t.Fatalf("eia.New: %v", err)
	}
	store := memstore.New(16, time.Minute)
	meta := metadata.New(log, store, api, time.Minute)
	return search.New(log, api, meta)
}

func Test_Search_CachedVsUncachedMetadata_Identical(t *testing.T) {
	var metadataHits, dataHits atomic.Int64
	srv := fakeEIA(t, &metadataHits, &dataHits)
	defer srv.Close()

	svc := newPipeline(t, srv.URL)
	q := model.QueryParameters{
		Query:  "residential electricity consumption in Texas",
		Facets: map[string][]string{"stateid": {"TX"}},
	}

	first := svc.Search(context.Background(), q)
	second := svc.Search(context.Background(), q)

	if first != second {
		t.Fatalf("cached and uncached runs differ:\nFIRST : %s\nSECOND: %s", first, second)
	}
	if got := metadataHits.Load(); got != 1 {
		t.Fatalf("metadata fetched %d times, want 1", got)
	}
	if got := dataHits.Load(); got != 2 {
		t.Fatalf("data fetched %d times, want 2", got)
	}

	for _, want := range []string{"| period |", "| 2023-01 |", "| 123.4 |", "million kWh"} {
		if !strings.Contains(first, want) {
			t.Fatalf("output missing %q:\n%s", want, first)
		}
	}
}

func Test_Search_UnknownFacetDroppedAgainstLiveMetadata(t *testing.T) {
	var metadataHits, dataHits atomic.Int64
	srv := fakeEIA(t, &metadataHits, &dataHits)
	defer srv.Close()

	svc := newPipeline(t, srv.URL)
	q := model.QueryParameters{
		Query: "residential electricity consumption in Texas",
		Facets: map[string][]string{
			"stateid": {"TX"},
			"bogus":   {"x"},
		},
	}

	out := svc.Search(context.Background(), q)
	if strings.Contains(out, "Invalid request") {
		t.Fatalf("unknown facet should be dropped, not rejected:\n%s", out)
	}
	if !strings.Contains(out, "| 2023-01 |") {
		t.Fatalf("expected table output:\n%s", out)
	}
}
