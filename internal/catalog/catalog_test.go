package catalog

import "testing"

func TestResolve_PortugueseElectricityQuery(t *testing.T) {
	route, ok := Resolve("consumo de eletricidade residencial no Texas em 2023")
	if !ok {
		t.Fatalf("expected a route match")
	}
	if route.ID != "electricity-retail-sales" {
		t.Fatalf("expected electricity-retail-sales, got %s", route.ID)
	}
}

func TestResolve_EnglishQueriesPerDataset(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"residential electricity consumption in Texas", "electricity-retail-sales"},
		{"natural gas deliveries by state", "natural-gas-consumption"},
		{"WTI crude spot price history", "crude-oil-prices"},
		{"coal consumption by sector", "coal-consumption"},
		{"CO2 emissions from the power sector", "co2-emissions"},
		{"total energy overview for the US", "total-energy"},
		{"power plant generation by fuel", "electricity-generation"},
	}
	for _, tc := range cases {
		route, ok := Resolve(tc.query)
		if !ok {
			t.Fatalf("query %q matched nothing", tc.query)
		}
		if route.ID != tc.want {
			t.Fatalf("query %q resolved to %s, want %s", tc.query, route.ID, tc.want)
		}
	}
}

func TestResolve_NoOverlapReturnsFalse(t *testing.T) {
	for _, q := range []string{"", "   ", "qwzx blorp unrelated", "!!!"} {
		if route, ok := Resolve(q); ok {
			t.Fatalf("query %q must not match, got %s", q, route.ID)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	const q = "electricity consumption and natural gas consumption"
	first, ok := Resolve(q)
	if !ok {
		t.Fatalf("expected a match")
	}
	for i := 0; i < 20; i++ {
		r, ok := Resolve(q)
		if !ok || r.ID != first.ID {
			t.Fatalf("resolution not deterministic: %s vs %s", first.ID, r.ID)
		}
	}
}

func TestResolve_PunctuationAndCaseIgnored(t *testing.T) {
	a, okA := Resolve("ELECTRICITY consumption, residential!")
	b, okB := Resolve("electricity consumption residential")
	if !okA || !okB || a.ID != b.ID {
		t.Fatalf("normalization failed: %v/%v %s/%s", okA, okB, a.ID, b.ID)
	}
}

func TestByID_RoundTrip(t *testing.T) {
	for _, r := range Routes() {
		got, ok := ByID(r.ID)
		if !ok || got.Path != r.Path {
			t.Fatalf("ByID(%s) failed", r.ID)
		}
	}
	if _, ok := ByID("nope"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestRoutes_DataPathEndsWithDataSegment(t *testing.T) {
	for _, r := range Routes() {
		dp := r.DataPath()
		if len(dp) < 6 || dp[len(dp)-6:] != "/data/" {
			t.Fatalf("route %s data path %q must end in /data/", r.ID, dp)
		}
	}
}
