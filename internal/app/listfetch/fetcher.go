package listfetch

import (
	"context"
	"errors"
	"math"
	"net/url"
	"slices"

	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/utils"

	"github.com/sirupsen/logrus"
)

// Getter - часть apiclient.Client, нужная загрузчику
type Getter interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

type Fetcher struct {
	client Getter
	nav    Navigator
}

// NewFetcher создает загрузчик списков. nav может быть nil, тогда адрес не синхронизируется.
func NewFetcher(client Getter, nav Navigator) *Fetcher {
	return &Fetcher{client: client, nav: nav}
}

// FetchList загружает одну страницу списка. При любой ошибке возвращается пустой результат
// вместе с ошибкой.
func (f *Fetcher) FetchList(ctx context.Context, q ds.QueryState) (*ds.ListResult, error) {
	params, err := BuildQuery(q.Search, q.Filters, q.Paging)
	if err != nil {
		logrus.Errorf("Error building list query for %s: %v", q.Endpoint, err)
		return ds.EmptyListResult(), err
	}

	f.syncLocation(ctx, q)

	var body map[string]any
	if err := f.client.GetJSON(ctx, q.Endpoint, params, &body); err != nil {
		if errors.Is(err, apiclient.ErrCanceled) {
			logrus.WithField("endpoint", q.Endpoint).Info("List fetch aborted")
		} else {
			logrus.WithField("endpoint", q.Endpoint).Errorf("Error fetching list: %v", err)
		}
		return ds.EmptyListResult(), err
	}

	result := parseList(body)

	if field, desc, ok := clientSortRequested(q.Paging); ok && len(result.Items) > 0 && !sortHonored(body, field) {
		sortRows(result.Items, field, desc)
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": q.Endpoint,
		"items":    len(result.Items),
		"total":    result.Total,
	}).Debug("List fetched")

	return result, nil
}

// syncLocation обновляет адрес представления, если он отличается. Ошибки только логируются.
func (f *Fetcher) syncLocation(ctx context.Context, q ds.QueryState) {
	if f.nav == nil {
		return
	}

	next, err := LocationQuery(q.Filters, q.Paging)
	if err != nil {
		logrus.Warnf("Navigation error for %s: %v", q.Endpoint, err)
		return
	}

	current, err := f.nav.Location(ctx, q.Endpoint)
	if err != nil {
		logrus.Warnf("Navigation error for %s: %v", q.Endpoint, err)
		return
	}
	if current.Encode() == next.Encode() {
		return
	}

	if err := f.nav.Navigate(ctx, q.Endpoint, next); err != nil {
		logrus.Warnf("Navigation error for %s: %v", q.Endpoint, err)
	}
}

func parseList(body map[string]any) *ds.ListResult {
	result := ds.EmptyListResult()

	data := body["data"]
	var nestedTotal any
	// Пагинатор может лежать внутри data
	if page, ok := data.(map[string]any); ok {
		data = page["data"]
		nestedTotal = page["total"]
	}

	if items, ok := data.([]any); ok {
		for _, item := range items {
			if row, ok := item.(map[string]any); ok {
				result.Items = append(result.Items, ds.Row(row))
			}
		}
	}

	var metaTotal any
	if meta, ok := body["meta"].(map[string]any); ok {
		metaTotal = meta["total"]
	}
	result.Total = firstTotal(metaTotal, body["total"], nestedTotal)

	if sums, ok := body["total_sum"].([]any); ok {
		result.TotalSum = sums
	}

	return result
}

// firstTotal берет первое ненулевое значение
func firstTotal(candidates ...any) int64 {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		n := utils.JSNumber(c)
		if math.IsNaN(n) || n == 0 {
			continue
		}
		return int64(n)
	}
	return 0
}

func clientSortRequested(p ds.PagingOptions) (string, bool, bool) {
	if len(p.SortBy) != 1 || len(p.SortDesc) != 1 || p.SortBy[0] == "" {
		return "", false, false
	}
	return p.SortBy[0], p.SortDesc[0], true
}

// sortHonored - бэкенд сообщил, что отсортировал по запрошенному полю
func sortHonored(body map[string]any, field string) bool {
	sources := []map[string]any{body}
	if meta, ok := body["meta"].(map[string]any); ok {
		sources = []map[string]any{meta, body}
	}
	for _, src := range sources {
		for _, key := range []string{"sortBy", "sort_by"} {
			switch echo := src[key].(type) {
			case string:
				if echo == field {
					return true
				}
			case []any:
				if len(echo) > 0 && echo[0] == field {
					return true
				}
			}
		}
	}
	return false
}

func sortRows(items []ds.Row, field string, desc bool) {
	slices.SortStableFunc(items, func(a, b ds.Row) int {
		c := utils.JSCompare(cell(a, field), cell(b, field))
		if desc {
			return -c
		}
		return c
	})
}

func cell(row ds.Row, field string) any {
	v, ok := row[field]
	if !ok {
		return utils.Undefined
	}
	return v
}

// Pending - запущенная загрузка, которую можно отменить
type Pending struct {
	cancel context.CancelFunc
	done   chan struct{}
	result *ds.ListResult
	err    error
}

// Start запускает загрузку в фоне
func (f *Fetcher) Start(ctx context.Context, q ds.QueryState) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer cancel()
		p.result, p.err = f.FetchList(ctx, q)
	}()
	return p
}

// Cancel прерывает запрос, повторный вызов безопасен
func (p *Pending) Cancel() {
	p.cancel()
}

func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait дожидается завершения загрузки
func (p *Pending) Wait() (*ds.ListResult, error) {
	<-p.done
	return p.result, p.err
}
