package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHalfWidth(t *testing.T) {
	assert.Equal(t, "101", ToHalfWidth("１０１"))
	assert.Equal(t, "ABCxyz", ToHalfWidth("ＡＢＣｘｙｚ"))
	// 非全角字符原样保留
	assert.Equal(t, "1階-101号室", ToHalfWidth("1階-101号室"))
	assert.Equal(t, "", ToHalfWidth(""))
}

func TestToHalfWidthIdempotent(t *testing.T) {
	inputs := []string{"１０１", "101", "Ａ１ｂ２", "マンション３０５", " ７ ", "!！~～"}
	for _, s := range inputs {
		once := ToHalfWidth(s)
		assert.Equal(t, once, ToHalfWidth(once), "input: %q", s)
	}
}

func TestNormalizeRoomNumber(t *testing.T) {
	assert.Equal(t, "101", NormalizeRoomNumber(" １０１ "))
	assert.Equal(t, "205", NormalizeRoomNumber("205"))
	// 全角空格也要被去除
	assert.Equal(t, "7", NormalizeRoomNumber("　７　"))
}

func TestExtractDigits(t *testing.T) {
	assert.Equal(t, "101", ExtractDigits("１０１号室"))
	assert.Equal(t, "12", ExtractDigits("a1b2c"))
	assert.Equal(t, "", ExtractDigits("abc"))
}

func TestFormatRoomNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"１０１", "101"},
		{" 7 ", "007"},
		{"abc", "abc"},     // 非数字房间号原样通过
		{"12345", "12345"}, // 不截断
		{"０５", "005"},
		{"", ""},
		{"　", "　"}, // 只有全角空格，无数字，原样返回
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRoomNumber(tt.in), "input: %q", tt.in)
	}
}

func TestFormatRoomNumberIdempotent(t *testing.T) {
	inputs := []string{"１０１", " 7 ", "abc", "12345"}
	for _, s := range inputs {
		once := FormatRoomNumber(s)
		assert.Equal(t, once, FormatRoomNumber(once), "input: %q", s)
	}
}
