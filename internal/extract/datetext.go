package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// monthNumbers maps English month abbreviations to their calendar number.
var monthNumbers = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// monthOrder fixes the iteration order over monthNumbers.
var monthOrder = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

var (
	nonAlnumRe = regexp.MustCompile(`[^A-Z0-9\s]`)
	multiSpace = regexp.MustCompile(`\s+`)
	fullYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	shortDayRe = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// ParseDateText extracts a calendar date from a free-form VIZ date
// expression such as "13 FEB 2020", "13FEB 2020", or "FEB 13 2020",
// tolerating punctuation noise. It returns YYYY/MM/DD, or "" when no
// month, four-digit year, and day can all be found.
func ParseDateText(text string) string {
	norm := nonAlnumRe.ReplaceAllString(strings.ToUpper(text), " ")
	norm = strings.TrimSpace(multiSpace.ReplaceAllString(norm, " "))

	for _, mon := range monthOrder {
		if !strings.Contains(norm, mon) {
			continue
		}
		year := fullYearRe.FindString(norm)
		if year == "" {
			continue
		}
		// Drop the year before hunting for the day so a trailing "20" of
		// "2020" is never mistaken for one, and blank the month name so a
		// day glued to it ("13FEB") still sits on a word boundary.
		rest := strings.Replace(norm, year, "", 1)
		rest = strings.Replace(rest, mon, " ", 1)
		m := shortDayRe.FindString(rest)
		if m == "" {
			continue
		}
		day, _ := strconv.Atoi(m)
		return fmt.Sprintf("%s/%02d/%02d", year, monthNumbers[mon], day)
	}
	return ""
}
