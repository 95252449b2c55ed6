package extract

import (
	"strings"
	"unicode/utf8"
)

// prefectures lists the 47 Japanese prefectures in Hepburn romanization,
// in the fixed geographic (north-to-south) order. The slice order is the
// deterministic tie-break when a noisy string contains more than one
// prefecture name.
var prefectures = []string{
	"HOKKAIDO", "AOMORI", "IWATE", "MIYAGI", "AKITA", "YAMAGATA", "FUKUSHIMA",
	"IBARAKI", "TOCHIGI", "GUNMA", "SAITAMA", "CHIBA", "TOKYO", "KANAGAWA",
	"NIIGATA", "TOYAMA", "ISHIKAWA", "FUKUI", "YAMANASHI", "NAGANO", "GIFU",
	"SHIZUOKA", "AICHI", "MIE", "SHIGA", "KYOTO", "OSAKA", "HYOGO", "NARA", "WAKAYAMA",
	"TOTTORI", "SHIMANE", "OKAYAMA", "HIROSHIMA", "YAMAGUCHI",
	"TOKUSHIMA", "KAGAWA", "EHIME", "KOCHI",
	"FUKUOKA", "SAGA", "NAGASAKI", "KUMAMOTO", "OITA", "MIYAZAKI", "KAGOSHIMA", "OKINAWA",
}

// domicileNoise matches characters stripped in the fallback cleaning path.
const domicileNoise = "*0123456789<:;,."

// jpLabelRunes are characters of the printed Japanese date labels; text from
// an adjacent label row is cut off at the first occurrence.
const jpLabelRunes = "発行年月日"

// Prefectures returns the canonical prefecture set in tie-break order.
func Prefectures() []string {
	out := make([]string, len(prefectures))
	copy(out, prefectures)
	return out
}

// IsPrefecture reports whether the upper-cased, width-normalized input is
// exactly a canonical prefecture name.
func IsPrefecture(s string) bool {
	s = strings.ToUpper(Normalize(s))
	for _, p := range prefectures {
		if s == p {
			return true
		}
	}
	return false
}

// ResolveDomicile maps noisy registered-domicile text to a canonical
// prefecture name. When no prefecture name occurs as a substring, it falls
// back to stripping OCR noise and label fragments, returning whatever
// plausible tokens remain ("" if none).
func ResolveDomicile(text string) string {
	upper := strings.ToUpper(Normalize(text))

	for _, pref := range prefectures {
		if strings.Contains(upper, pref) {
			return pref
		}
	}

	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(domicileNoise, r) {
			return -1
		}
		return r
	}, Normalize(text))
	clean = strings.TrimSpace(clean)

	if idx := strings.IndexAny(clean, jpLabelRunes); idx >= 0 {
		clean = strings.TrimSpace(clean[:idx])
	}

	var parts []string
	for _, w := range strings.Fields(clean) {
		if utf8.RuneCountInString(w) > 1 {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, " ")
}
