package eia

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
)

// DefaultLength is the page size applied when the caller does not ask
// for one, matching the API's documented maximum.
const DefaultLength = 5000

// BuildParams serializes QueryParameters into the flat query-string
// representation the EIA v2 API expects. Facet categories become
// bracket-indexed repeated keys (facets[stateid][]=TX), sort becomes
// sort[0][column]/sort[0][direction]. Absent inputs emit no keys.
// url.Values.Encode sorts keys, so the wire order is stable.
func BuildParams(q model.QueryParameters) (url.Values, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	params := url.Values{}

	cats := make([]string, 0, len(q.Facets))
	for c := range q.Facets {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		key := "facets[" + c + "][]"
		for _, v := range q.Facets[c] {
			params.Add(key, v)
		}
	}

	if q.Frequency != "" {
		params.Set("frequency", q.Frequency)
	}
	if q.StartPeriod != "" {
		params.Set("start", q.StartPeriod)
	}
	if q.EndPeriod != "" {
		params.Set("end", q.EndPeriod)
	}
	if q.Sort != nil {
		params.Set("sort[0][column]", q.Sort.Column)
		params.Set("sort[0][direction]", q.Sort.Direction)
	}
	for _, col := range q.DataColumns {
		if col = strings.TrimSpace(col); col != "" {
			params.Add("data[]", col)
		}
	}
	if q.Length > 0 {
		params.Set("length", strconv.Itoa(q.Length))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	return params, nil
}

func validate(q model.QueryParameters) error {
	for c, vals := range q.Facets {
		if strings.TrimSpace(c) == "" {
			return validationf("facet category name is empty")
		}
		if len(vals) == 0 {
			return validationf("facet %q has an empty value list", c)
		}
		for _, v := range vals {
			if strings.TrimSpace(v) == "" {
				return validationf("facet %q contains an empty value", c)
			}
		}
	}

	// period strings are comparable lexically (YYYY, YYYY-MM, YYYY-MM-DD)
	if q.StartPeriod != "" && q.EndPeriod != "" && q.StartPeriod > q.EndPeriod {
		return validationf("start_period %q is after end_period %q", q.StartPeriod, q.EndPeriod)
	}

	if q.Sort != nil {
		if q.Sort.Column == "" || q.Sort.Direction == "" {
			return validationf("sort requires both column and direction")
		}
		switch strings.ToLower(q.Sort.Direction) {
		case "asc", "desc":
		default:
			return validationf("sort direction must be asc or desc, got %q", q.Sort.Direction)
		}
	}

	if q.Length < 0 {
		return validationf("length must not be negative")
	}
	if q.Offset < 0 {
		return validationf("offset must not be negative")
	}
	return nil
}
