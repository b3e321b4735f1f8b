package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{true, "true"},
		{false, "false"},
		{float64(3), "3"},
		{2.5, "2.5"},
		{json.Number("15"), "15"},
		{"x", "x"},
		{[]any{"a", float64(1), nil}, "a,1,"},
		{map[string]any{"k": "v"}, "[object Object]"},
		{nil, "null"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{-1.5e-7, "-1.5e-7"},
		{0.000001, "0.000001"},
		{float64(1000000), "1000000"},
		{json.Number("1e25"), "1e+25"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, JSString(tc.in), "JSString(%#v)", tc.in)
	}
}

func TestJSCompare(t *testing.T) {
	assert.Equal(t, -1, JSCompare("apple", "banana"))
	assert.Equal(t, 1, JSCompare("b", "B"))
	// строки сравниваются как строки, а не числа
	assert.Equal(t, -1, JSCompare("10", "9"))
	assert.Equal(t, 1, JSCompare(json.Number("10"), "9"))
	assert.Equal(t, 1, JSCompare(json.Number("30"), json.Number("20")))
	assert.Equal(t, 0, JSCompare(nil, float64(0)))
	assert.Equal(t, 1, JSCompare(true, nil))
	assert.Equal(t, 0, JSCompare(Undefined, float64(5)))
	assert.Equal(t, 0, JSCompare("abc", float64(5)))
	assert.Equal(t, 0, JSCompare(map[string]any{}, float64(5)))
	assert.Equal(t, -1, JSCompare([]any{float64(4)}, float64(5)))
	// суррогатная пара меньше символа из верхней части BMP
	assert.Equal(t, 1, JSCompare("\uFF21", "\U0001F600"))
	assert.Equal(t, -1, JSCompare("ab", "abc"))
}

func TestJSNumber(t *testing.T) {
	assert.Equal(t, float64(0), JSNumber("  "))
	assert.Equal(t, float64(12.5), JSNumber(" 12.5 "))
	assert.Equal(t, float64(255), JSNumber("0xff"))
	assert.True(t, math.IsNaN(JSNumber("1_000")))
}
