// Package hanzi detects and extracts Chinese characters from text.
package hanzi

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/hanzistats/internal/charset"
	"github.com/verte-zerg/hanzistats/internal/model"
)

// ideographs covers the CJK Unified Ideographs main block together with the
// Extension-A adjacency, and the CJK Compatibility Ideographs block.
var ideographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3400, Hi: 0x9FFF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFAFF, Stride: 1},
	},
}

// IsHanzi reports whether the rune is a Hanzi ideograph or a Bopomofo
// phonetic symbol. Control characters and unassigned code points are not.
func IsHanzi(r rune) bool {
	if unicode.IsControl(r) {
		return false
	}
	return unicode.Is(ideographs, r) || unicode.Is(unicode.Bopomofo, r)
}

// ExtractUnique returns the deduplicated set of Hanzi in text, each
// normalized to NFC before insertion. Empty input yields an empty set.
func ExtractUnique(text string) charset.Set {
	var chars []string
	for _, r := range text {
		if !IsHanzi(r) {
			continue
		}
		chars = append(chars, norm.NFC.String(string(r)))
	}
	return charset.New(chars...)
}

// ExtractFields extracts Hanzi from an ordered group of note fields
// according to the field selector. An out-of-range index or an invalid
// selector yields an empty set.
func ExtractFields(fields []string, sel model.FieldSelector) charset.Set {
	if len(fields) == 0 {
		return charset.New()
	}
	switch sel.Kind {
	case model.FieldSelectorAll:
		out := charset.New()
		for _, field := range fields {
			out = out.Union(ExtractUnique(field))
		}
		return out
	case model.FieldSelectorSort:
		return ExtractUnique(fields[0])
	case model.FieldSelectorIndex:
		idx := sel.Index - 1
		if idx < 0 || idx >= len(fields) {
			return charset.New()
		}
		return ExtractUnique(fields[idx])
	}
	return charset.New()
}

// CountAll counts Hanzi in text including repeats.
func CountAll(text string) int {
	count := 0
	for _, r := range text {
		if IsHanzi(r) {
			count++
		}
	}
	return count
}
