package listfetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"Admin-Console/internal/app/ds"
)

// BuildQuery собирает параметры запроса списка к бэкенду
func BuildQuery(search string, filters ds.Filters, paging ds.PagingOptions) (url.Values, error) {
	q := ds.QueryState{Search: search, Filters: filters, Paging: paging}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.ResolvedPage()))
	params.Set("per_page", strconv.Itoa(paging.ItemsPerPage))
	if search != "" {
		params.Set("search", search)
	}

	if filters != nil {
		encoded, err := encodeFilter(filters)
		if err != nil {
			return nil, err
		}
		params.Set("filter", encoded)
	}

	if field, ok := paging.SortField(); ok {
		params.Set("sortBy", field)
		if desc, ok := paging.Descending(); ok {
			params.Set("sortDesc", strconv.FormatBool(desc))
		}
	}

	return params, nil
}

// LocationQuery - состояние адресной строки представления: запрошенная страница, размер и фильтр
func LocationQuery(filters ds.Filters, paging ds.PagingOptions) (url.Values, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(paging.Page))
	params.Set("length", strconv.Itoa(paging.ItemsPerPage))
	if filters != nil {
		encoded, err := encodeFilter(filters)
		if err != nil {
			return nil, err
		}
		params.Set("filter", encoded)
	}
	return params, nil
}

func encodeFilter(filters ds.Filters) (string, error) {
	// Без HTML-экранирования, как JSON.stringify
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(filters); err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
