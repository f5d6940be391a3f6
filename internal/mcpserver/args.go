package mcpserver

import (
	"fmt"
	"strings"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
)

// queryFromArgs converts the decoded JSON arguments of a tool call into
// query parameters. JSON numbers arrive as float64 and facet values may
// be a bare string or a list.
func queryFromArgs(args map[string]any) (model.QueryParameters, error) {
	var q model.QueryParameters

	query, _ := args["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return q, fmt.Errorf("query is required")
	}
	q.Query = query

	if raw, ok := args["facets"]; ok && raw != nil {
		obj, ok := raw.(map[string]any)
		if !ok {
			return q, fmt.Errorf("facets must be an object")
		}
		facets := make(map[string][]string, len(obj))
		for category, v := range obj {
			vals, err := stringList(v)
			if err != nil {
				return q, fmt.Errorf("facet %q: %w", category, err)
			}
			facets[category] = vals
		}
		q.Facets = facets
	}

	q.Frequency, _ = args["frequency"].(string)
	q.StartPeriod, _ = args["start_period"].(string)
	q.EndPeriod, _ = args["end_period"].(string)

	col, _ := args["sort_column"].(string)
	dir, _ := args["sort_direction"].(string)
	if col != "" || dir != "" {
		q.Sort = &model.SortSpec{Column: col, Direction: dir}
	}

	if raw, ok := args["data_columns"]; ok && raw != nil {
		cols, err := stringList(raw)
		if err != nil {
			return q, fmt.Errorf("data_columns: %w", err)
		}
		q.DataColumns = cols
	}

	var err error
	if q.Length, err = intArg(args, "length"); err != nil {
		return q, err
	}
	if q.Offset, err = intArg(args, "offset"); err != nil {
		return q, err
	}
	return q, nil
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string or list of strings, got %T", v)
	}
}

func intArg(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, nil
	}
	f, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number, got %T", key, raw)
	}
	return int(f), nil
}
