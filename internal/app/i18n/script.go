package i18n

import (
	"unicode"

	"golang.org/x/text/language"
)

// FontClass - класс шрифта для отображения текста
type FontClass string

const (
	FontSans  FontClass = "font-sans"
	FontKhmer FontClass = "font-khmer"
)

var fontFamilies = map[string]string{
	"en": `Parkinsans, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif`,
	"km": `Kantumruy Pro, "Khmer OS System", "Khmer OS", sans-serif`,
}

// DetectLanguage определяет язык по письменности: кхмерский, китайский или английский
func DetectLanguage(text string) string {
	hasHan := false
	for _, r := range text {
		if unicode.Is(unicode.Khmer, r) {
			return "km"
		}
		if unicode.Is(unicode.Han, r) {
			hasHan = true
		}
	}
	if hasHan {
		return "zh"
	}
	return "en"
}

func FontClassFor(code string) FontClass {
	if code == "km" {
		return FontKhmer
	}
	return FontSans
}

// FontFamily - CSS список шрифтов для языка
func FontFamily(code string) string {
	if family, ok := fontFamilies[code]; ok {
		return family
	}
	return fontFamilies["en"]
}

// DetectScript возвращает класс шрифта для текста
func DetectScript(text string) FontClass {
	return FontClassFor(DetectLanguage(text))
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("km"),
})

// Negotiate подбирает выбираемый язык по заголовку Accept-Language
func Negotiate(acceptLanguage string) (string, bool) {
	if acceptLanguage == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return languages[index].Code, true
}
