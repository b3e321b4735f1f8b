package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/i18n"
	"Admin-Console/internal/app/utils"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// columns - объединение ключей строк, id первым
func columns(items []ds.Row) []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range items {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	slices.Sort(cols)
	if i := slices.Index(cols, "id"); i > 0 {
		cols = append([]string{"id"}, slices.Delete(cols, i, i+1)...)
	}
	return cols
}

// formatCell выводит значение ячейки. Многоязычные поля ({"en": .., "km": ..})
// показываются на активном языке.
func formatCell(v any, locale string) string {
	switch val := v.(type) {
	case nil:
		return ""
	case map[string]any:
		values := make(map[string]string, len(val))
		for k, item := range val {
			s, ok := item.(string)
			if !ok {
				raw, _ := json.Marshal(val)
				return string(raw)
			}
			values[k] = s
		}
		return i18n.Pick(values, locale)
	default:
		return utils.JSString(val)
	}
}

func renderList(w io.Writer, result *ds.ListResult, locale string, header func(string) string) {
	if len(result.Items) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	cols := columns(result.Items)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = header(col)
	}
	t.AppendHeader(headerRow)

	for _, item := range result.Items {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = formatCell(item[col], locale)
		}
		t.AppendRow(row)
	}

	footer := table.Row{"Total", result.Total}
	if len(result.TotalSum) > 0 {
		sums := make([]string, len(result.TotalSum))
		for i, s := range result.TotalSum {
			sums[i] = formatCell(s, locale)
		}
		footer = append(footer, fmt.Sprint(sums))
	}
	t.AppendFooter(footer)

	t.Render()
}

func renderLanguages(w io.Writer, langs []ds.Language, active string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Code", "Name", "Native", "Font"})
	for _, l := range langs {
		marker := ""
		if l.Code == active {
			marker = "*"
		}
		t.AppendRow(table.Row{marker, l.Code, l.Name, l.NativeName, i18n.FontClassFor(l.Code)})
	}
	t.Render()
}
