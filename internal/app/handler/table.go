package handler

import (
	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/export"
	"Admin-Console/internal/app/listfetch"
	"Admin-Console/internal/app/middleware"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TableHandler struct {
	app *console.Console
}

func NewTableHandler(app *console.Console) *TableHandler {
	return &TableHandler{
		app: app,
	}
}

// parseFilter читает JSON фильтр из параметра filter
func parseFilter(ctx *gin.Context) (ds.Filters, error) {
	raw := ctx.Query("filter")
	if raw == "" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var filters ds.Filters
	if err := dec.Decode(&filters); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return filters, nil
}

// parseQueryState собирает состояние таблицы из параметров запроса
func parseQueryState(ctx *gin.Context) (ds.QueryState, error) {
	filters, err := parseFilter(ctx)
	if err != nil {
		return ds.QueryState{}, err
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("per_page", strconv.Itoa(ds.DefaultItemsPerPage)))

	q := ds.QueryState{
		Endpoint: ctx.Param("endpoint"),
		Search:   ctx.Query("search"),
		Filters:  filters,
		Paging: ds.PagingOptions{
			Page:         page,
			ItemsPerPage: perPage,
		},
	}

	if sortBy := ctx.Query("sortBy"); sortBy != "" {
		q.Paging.SortBy = []string{sortBy}
		if raw, ok := ctx.GetQuery("sortDesc"); ok {
			desc, err := strconv.ParseBool(raw)
			if err != nil {
				return ds.QueryState{}, fmt.Errorf("invalid sortDesc: %w", err)
			}
			q.Paging.SortDesc = []bool{desc}
		}
	}

	return q.Normalize(), nil
}

// GetTable godoc
// @Summary Get table page
// @Description Fetch one page of a backend list. Failures degrade to an empty page with an error field.
// @Tags Tables
// @Security BearerAuth
// @Produce json
// @Param endpoint path string true "Backend list endpoint"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search text"
// @Param filter query string false "Filter JSON"
// @Param sortBy query string false "Sort field"
// @Param sortDesc query bool false "Sort descending"
// @Success 200 {object} ds.TableResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tables/{endpoint} [get]
func (h *TableHandler) GetTable(ctx *gin.Context) {
	q, err := parseQueryState(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userKey, _ := middleware.GetUserKey(ctx)
	result, fetchErr := h.app.Fetcher(userKey).FetchList(ctx.Request.Context(), q)

	response := ds.TableResponse{
		Items:    result.Items,
		Total:    result.Total,
		TotalSum: result.TotalSum,
	}
	if location, err := listfetch.LocationQuery(q.Filters, q.Paging); err == nil {
		response.Location = "/" + q.Endpoint + "?" + location.Encode()
	}
	if fetchErr != nil {
		response.Error = fetchErr.Error()
	}

	ctx.JSON(http.StatusOK, response)
}

// ExportTable godoc
// @Summary Export table
// @Description Download the filtered table as an Excel or PDF file
// @Tags Tables
// @Security BearerAuth
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param endpoint path string true "Backend list endpoint"
// @Param format path string true "excel or pdf"
// @Param filter query string false "Filter JSON"
// @Param search query string false "Search text"
// @Param file_name query string false "File name without extension"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /tables/{endpoint}/export/{format} [get]
func (h *TableHandler) ExportTable(ctx *gin.Context) {
	format, err := export.ParseFormat(ctx.Param("format"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters, err := parseFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	endpoint := ctx.Param("endpoint")
	download, err := h.app.Exporter().Export(ctx.Request.Context(), export.Request{
		Endpoint: endpoint,
		Filters:  filters,
		Search:   ctx.Query("search"),
		FileName: ctx.Query("file_name"),
		Format:   format,
	})
	if err != nil {
		ctx.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	// Архив выгрузок необязателен, ошибка не мешает отдать файл
	userKey, _ := middleware.GetUserKey(ctx)
	if sink := h.app.Archive(userKey, endpoint, format); sink != nil {
		if key, err := sink.Save(ctx.Request.Context(), download); err != nil {
			logrus.Warnf("Failed to archive export %s: %v", download.FileName, err)
		} else {
			ctx.Header("X-Export-Archive", key)
		}
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	ctx.Data(http.StatusOK, download.ContentType, download.Body)
}

// GetExports godoc
// @Summary Get export history
// @Description Get archived exports of the authenticated user with pagination
// @Tags Tables
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} ds.PaginatedExportsResponse
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /exports [get]
func (h *TableHandler) GetExports(ctx *gin.Context) {
	userKey, exists := middleware.GetUserKey(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	exports := h.app.Exports()
	if exports == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Export history is not available"})
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	records, pagination, err := exports.List(ctx.Request.Context(), userKey, page, pageSize)
	if err != nil {
		logrus.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, ds.PaginatedExportsResponse{
		Data:       records,
		Pagination: pagination,
	})
}

// errorStatus переводит ошибку бэкенда в код ответа шлюза
func errorStatus(err error) int {
	var statusErr *apiclient.StatusError
	if errors.As(err, &statusErr) && statusErr.Status >= 400 && statusErr.Status < 500 {
		return statusErr.Status
	}
	return http.StatusBadGateway
}
