package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/utils"

	"github.com/sirupsen/logrus"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat проверяет формат выгрузки
func ParseFormat(s string) (ds.ExportFormat, error) {
	switch f := ds.ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ds.ExportExcel, ds.ExportPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// BuildQuery раскладывает фильтры в плоские параметры. Пустые (nil) значения пропускаются.
func BuildQuery(filters ds.Filters, search string) url.Values {
	params := url.Values{}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := filters[k]
		if v == nil {
			continue
		}
		params.Set(k, utils.JSString(v))
	}

	if search != "" {
		params.Set("search", search)
	}
	return params
}

// FileName - имя скачиваемого файла: заданное имя или endpoint, плюс расширение
func FileName(endpoint, name string, format ds.ExportFormat) string {
	if name == "" {
		name = strings.ReplaceAll(strings.TrimPrefix(endpoint, "/"), "/", "-")
	}
	return name + "." + format.Extension()
}

// Binary - часть apiclient.Client, нужная выгрузке
type Binary interface {
	GetBinary(ctx context.Context, path string, query url.Values, accept string) ([]byte, string, error)
}

type Request struct {
	Endpoint string
	Filters  ds.Filters
	Search   string
	FileName string
	Format   ds.ExportFormat
}

type Exporter struct {
	client Binary
}

func NewExporter(client Binary) *Exporter {
	return &Exporter{client: client}
}

// Export скачивает отфильтрованный набор данных в виде файла
func (e *Exporter) Export(ctx context.Context, req Request) (*ds.Download, error) {
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		logrus.Errorf("Export error for %s: %v", req.Endpoint, err)
		return nil, err
	}

	path := strings.TrimPrefix(req.Endpoint, "/") + "/export/" + string(format)
	body, contentType, err := e.client.GetBinary(ctx, path, BuildQuery(req.Filters, req.Search), format.MediaType())
	if err != nil {
		logrus.Errorf("Export error for %s: %v", req.Endpoint, err)
		return nil, fmt.Errorf("export %s: %w", req.Endpoint, err)
	}

	download := &ds.Download{
		FileName:    FileName(req.Endpoint, req.FileName, format),
		ContentType: contentType,
		Body:        body,
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": req.Endpoint,
		"file":     download.FileName,
		"size":     len(body),
	}).Info("Export downloaded")

	return download, nil
}
