package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// GenerateSlug tạo slug từ title của group
// "Nguyễn Nhật Ánh" → "nguyen-nhat-anh"
func GenerateSlug(input string) string {
	lower := strings.ToLower(RemoveDiacritics(input))
	hyphenated := strings.Join(strings.Fields(lower), "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := dashRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// RemoveDiacritics bỏ dấu: decompose (NFD), xóa combining marks, compose lại.
// "đ"/"Đ" không decompose được nên map riêng.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		out = input
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}
