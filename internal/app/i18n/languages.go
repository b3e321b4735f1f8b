package i18n

import (
	"slices"
	"sort"

	"Admin-Console/internal/app/ds"
)

// DefaultCode - язык по умолчанию
const DefaultCode = "en"

var languages = []ds.Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "km", Name: "Khmer", NativeName: "ខ្មែរ"},
}

// CatalogLocales - локали, для которых бэкенд отдает переводы
var CatalogLocales = []string{"en", "km", "zh"}

// GetAvailableLanguages возвращает статический список выбираемых языков
func GetAvailableLanguages() []ds.Language {
	return slices.Clone(languages)
}

// IsSupported проверяет, можно ли выбрать язык
func IsSupported(code string) bool {
	_, ok := LanguageByCode(code)
	return ok
}

func LanguageByCode(code string) (ds.Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return ds.Language{}, false
}

// Pick выбирает значение многоязычного поля для локали:
// значение локали, иначе первое по ключу, иначе пустая строка
func Pick(values map[string]string, locale string) string {
	if v, ok := values[locale]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if values[k] != "" {
			return values[k]
		}
	}
	return ""
}
