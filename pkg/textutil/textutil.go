package textutil

import (
	"strings"
)

// 全角字符区与ASCII可见字符区的固定码点偏移
// U+FF01..U+FF5E 对应 U+0021..U+007E
const (
	fullWidthStart = 0xFF01
	fullWidthEnd   = 0xFF5E
	fullWidthDelta = 0xFEE0
)

// ToHalfWidth 将全角英数字转换为半角，其他字符原样保留
// 幂等：对已是半角的输入不做任何改变
func ToHalfWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= fullWidthStart && r <= fullWidthEnd {
			r -= fullWidthDelta
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeRoomNumber 去除首尾空白后做全角转半角
func NormalizeRoomNumber(s string) string {
	return ToHalfWidth(strings.TrimSpace(s))
}

// ExtractDigits 全角转半角后仅保留ASCII数字
func ExtractDigits(s string) string {
	half := ToHalfWidth(s)
	var b strings.Builder
	b.Grow(len(half))
	for _, r := range half {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatRoomNumber 将房间号格式化为至少3位的零填充数字串
// 不含数字的输入原样返回（例如 "B1F" 这类非数字房间号不做拒绝处理）
// 超过3位的数字不截断
func FormatRoomNumber(s string) string {
	digits := ExtractDigits(NormalizeRoomNumber(s))
	if digits == "" {
		return s
	}
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return digits
}
