package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Undefined - отсутствующее поле строки таблицы
type undefined struct{}

var Undefined any = undefined{}

// JSString приводит значение к строке так же, как String() в браузере
func JSString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return val
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return formatNumber(f)
		}
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case float32:
		return formatNumber(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			// null и undefined внутри массива дают пустую строку
			if item == nil || item == Undefined {
				continue
			}
			parts[i] = JSString(item)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(val, ",")
	case map[string]any:
		return "[object Object]"
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// Экспонента без ведущих нулей: 1e+21, 1.5e-7
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// JSPrimitive приводит объекты и массивы к строке, остальное возвращает как есть
func JSPrimitive(v any) any {
	switch v.(type) {
	case []any, []string, map[string]any:
		return JSString(v)
	}
	return v
}

// JSNumber приводит значение к числу по правилам ToNumber
func JSNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case undefined:
		return math.NaN()
	case bool:
		if val {
			return 1
		}
		return 0
	case json.Number:
		return stringToNumber(val.String())
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case uint:
		return float64(val)
	case uint64:
		return float64(val)
	case string:
		return stringToNumber(val)
	case []any, []string, map[string]any:
		return JSNumber(JSString(val))
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(s, "_") {
		return math.NaN()
	}
	if len(lower) > 2 && lower[0] == '0' && (lower[1] == 'x' || lower[1] == 'o' || lower[1] == 'b') {
		n, err := strconv.ParseUint(lower, 0, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// JSCompare повторяет пару проверок a < b / a > b: строки сравниваются лексикографически,
// остальное приводится к числу. NaN и равенство дают 0.
func JSCompare(a, b any) int {
	pa, pb := JSPrimitive(a), JSPrimitive(b)
	sa, aIsString := pa.(string)
	sb, bIsString := pb.(string)
	if aIsString && bIsString {
		return compareUTF16(sa, sb)
	}

	na, nb := JSNumber(pa), JSNumber(pb)
	switch {
	case math.IsNaN(na) || math.IsNaN(nb):
		return 0
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}

// compareUTF16 сравнивает строки по кодовым единицам UTF-16, как это делает браузер
func compareUTF16(a, b string) int {
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		switch {
		case ua[i] < ub[i]:
			return -1
		case ua[i] > ub[i]:
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	}
	return 0
}
