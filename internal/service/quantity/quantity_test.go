package quantity

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"5", 5},
		{"2+3", 5},
		{"+2+3+", 5},
		{"++3++", 3},
		{"+", 0},
		{" 4 ", 4},
		{"1+2+3", 6},
		{"2++3", 5},
		{"2.4+1", 3},
		{"2.5", 2},
		{"3.5", 4},
		{"2+x", 0},
		{"abc", 0},
		{"2+-3", 0},
		{"inf", 0},
		{"nan+1", 0},
		{"2147483647", 2147483647},
		{"2147483648", 0},
		{"99999999999999999999", 0},
		{"5000000000000000000+5000000000000000000", 0},
		{"4000000000000000000+4000000000000000000+4000000000000000000+4000000000000000000+4000000000000000000", 0},
		{"2147483647+1", 0},
		{"2000000000+147483647", 2147483647},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Parse(c.in), "Parse(%q)", c.in)
	}
}

func TestValidInput(t *testing.T) {
	assert.True(t, ValidInput(""))
	assert.True(t, ValidInput("12"))
	assert.True(t, ValidInput("1+2+"))

	assert.False(t, ValidInput("1.5"))
	assert.False(t, ValidInput("2 + 3"))
	assert.False(t, ValidInput("2x"))
	assert.False(t, ValidInput("-1"))
}

func TestAdd(t *testing.T) {
	cases := []struct {
		a, b int
		want int
		ok   bool
	}{
		{2, 3, 5, true},
		{0, 0, 0, true},
		{Max, 0, Max, true},
		{Max, 1, 0, false},
		{Max - 10, 11, 0, false},
		{-1, 5, 0, false},
		{5, -1, 0, false},
	}

	for _, c := range cases {
		got, ok := Add(c.a, c.b)
		assert.Equal(t, c.ok, ok, "Add(%d, %d)", c.a, c.b)
		assert.Equal(t, c.want, got, "Add(%d, %d)", c.a, c.b)
	}
}
