package ds

// PaginationInfo представляет метаданные пагинации
type PaginationInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationInfo считает количество страниц
func NewPaginationInfo(page, pageSize int, total int64) PaginationInfo {
	totalPages := 0
	if total > 0 && pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginationInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// PaginatedExportsResponse представляет ответ с историей выгрузок
type PaginatedExportsResponse struct {
	Data       []ExportRecord `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// TableResponse - ответ шлюза на запрос таблицы
type TableResponse struct {
	Items    []Row  `json:"items"`
	Total    int64  `json:"total"`
	TotalSum []any  `json:"total_sum"`
	Location string `json:"location"`
	Error    string `json:"error,omitempty"`
}
