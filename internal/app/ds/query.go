package ds

// Размеры страницы, которые предлагает таблица консоли
var ItemsPerPageOptions = []int{15, 50, 100, 200}

const DefaultItemsPerPage = 15

// Filters - критерии фильтрации списка, интерпретируются сервером
type Filters map[string]any

// Row - строка таблицы, форма определяется вызывающим кодом
type Row map[string]any

// PagingOptions - состояние пагинации и сортировки таблицы.
// Используется только первый элемент SortBy/SortDesc.
type PagingOptions struct {
	SortBy       []string `json:"sortBy"`
	SortDesc     []bool   `json:"sortDesc"`
	Page         int      `json:"page"`
	ItemsPerPage int      `json:"itemsPerPage"`
}

// SortField возвращает активное поле сортировки
func (p PagingOptions) SortField() (string, bool) {
	if len(p.SortBy) == 0 || p.SortBy[0] == "" {
		return "", false
	}
	return p.SortBy[0], true
}

// Descending возвращает направление сортировки, если оно задано
func (p PagingOptions) Descending() (bool, bool) {
	if len(p.SortDesc) == 0 {
		return false, false
	}
	return p.SortDesc[0], true
}

// QueryState - один запрос списка для представления
type QueryState struct {
	Endpoint string        `json:"endpoint"`
	Search   string        `json:"search,omitempty"`
	Filters  Filters       `json:"filter,omitempty"`
	Paging   PagingOptions `json:"options"`
}

// Normalize приводит страницу и размер страницы к допустимым значениям
func (q QueryState) Normalize() QueryState {
	if q.Paging.Page < 1 {
		q.Paging.Page = 1
	}
	if q.Paging.ItemsPerPage < 1 {
		q.Paging.ItemsPerPage = DefaultItemsPerPage
	}
	return q
}

// ResolvedPage - страница, которая уйдет на сервер: новый поиск всегда начинается с первой
func (q QueryState) ResolvedPage() int {
	if q.Search != "" {
		return 1
	}
	return q.Paging.Page
}

// ListResult - результат загрузки списка
type ListResult struct {
	Items    []Row `json:"items"`
	Total    int64 `json:"total"`
	TotalSum []any `json:"total_sum"`
}

// EmptyListResult - пустая страница, которую получает вызывающий код при ошибке
func EmptyListResult() *ListResult {
	return &ListResult{
		Items:    []Row{},
		Total:    0,
		TotalSum: []any{},
	}
}
