package eia

import (
	"errors"
	"strings"
	"testing"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
)

func TestBuildParams_FacetsAreBracketIndexedAndGrouped(t *testing.T) {
	params, err := BuildParams(model.QueryParameters{
		Facets: map[string][]string{
			"stateid":  {"TX", "CO"},
			"sectorid": {"RES"},
		},
	})
	if err != nil {
		t.Fatalf("BuildParams: %v", err)
	}

	states := params["facets[stateid][]"]
	if len(states) != 2 || states[0] != "TX" || states[1] != "CO" {
		t.Fatalf("stateid values wrong: %v", states)
	}
	sectors := params["facets[sectorid][]"]
	if len(sectors) != 1 || sectors[0] != "RES" {
		t.Fatalf("sectorid values wrong: %v", sectors)
	}
	if total := len(states) + len(sectors); total != 3 {
		t.Fatalf("expected exactly 3 facet pairs, got %d", total)
	}
}

func TestBuildParams_EmptyFacetListIsValidationError(t *testing.T) {
	_, err := BuildParams(model.QueryParameters{
		Facets: map[string][]string{"stateid": {}},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuildParams_StartAfterEndIsValidationError(t *testing.T) {
	_, err := BuildParams(model.QueryParameters{
		StartPeriod: "2023-12",
		EndPeriod:   "2023-01",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// equal boundaries are fine
	if _, err := BuildParams(model.QueryParameters{
		StartPeriod: "2023-06",
		EndPeriod:   "2023-06",
	}); err != nil {
		t.Fatalf("equal start/end must pass: %v", err)
	}
}

func TestBuildParams_AbsentInputsEmitNoKeys(t *testing.T) {
	params, err := BuildParams(model.QueryParameters{Query: "ignored here"})
	if err != nil {
		t.Fatalf("BuildParams: %v", err)
	}
	if len(params) != 0 {
		t.Fatalf("expected no keys for empty input, got %v", params)
	}
}

func TestBuildParams_SortMapsToIndexedPair(t *testing.T) {
	params, err := BuildParams(model.QueryParameters{
		Sort: &model.SortSpec{Column: "period", Direction: "desc"},
	})
	if err != nil {
		t.Fatalf("BuildParams: %v", err)
	}
	if params.Get("sort[0][column]") != "period" || params.Get("sort[0][direction]") != "desc" {
		t.Fatalf("sort pair wrong: %v", params)
	}
}

func TestBuildParams_HalfSpecifiedSortRejected(t *testing.T) {
	_, err := BuildParams(model.QueryParameters{
		Sort: &model.SortSpec{Column: "period"},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for sort without direction, got %v", err)
	}
}

func TestBuildParams_EncodeIsStable(t *testing.T) {
	q := model.QueryParameters{
		Facets:      map[string][]string{"stateid": {"TX"}, "sectorid": {"RES"}},
		Frequency:   "monthly",
		StartPeriod: "2023-01",
		EndPeriod:   "2023-12",
		Length:      100,
	}
	a, err := BuildParams(q)
	if err != nil {
		t.Fatalf("BuildParams: %v", err)
	}
	b, _ := BuildParams(q)
	if a.Encode() != b.Encode() {
		t.Fatalf("encoding is not stable:\n a=%s\n b=%s", a.Encode(), b.Encode())
	}
	for _, want := range []string{"frequency=monthly", "start=2023-01", "end=2023-12", "length=100"} {
		if !strings.Contains(a.Encode(), want) {
			t.Fatalf("missing %q in %s", want, a.Encode())
		}
	}
}

func TestBuildParams_DataColumnsRepeatKey(t *testing.T) {
	params, err := BuildParams(model.QueryParameters{
		DataColumns: []string{"value", "price"},
	})
	if err != nil {
		t.Fatalf("BuildParams: %v", err)
	}
	cols := params["data[]"]
	if len(cols) != 2 || cols[0] != "value" || cols[1] != "price" {
		t.Fatalf("data columns wrong: %v", cols)
	}
}
