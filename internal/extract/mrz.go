package extract

import (
	"fmt"
	"strings"
	"time"
)

// filler is the MRZ padding character.
const filler = '<'

// ocrBrackets maps common bracket misreads back to the MRZ filler.
var ocrBrackets = strings.NewReplacer("(", "<", ")", "<", "{", "<", "}", "<", "[", "<", "]", "<")

// mrzDigitFix maps letters that OCR engines confuse with digits. Applied
// only inside the fixed date windows of line 2, where the format guarantees
// digits; elsewhere these letters may be legitimate alphabetic content.
var mrzDigitFix = map[byte]byte{
	'O': '0',
	'I': '1',
	'D': '0',
	'S': '5',
	'B': '8',
	'Z': '2',
}

// Line-2 offset windows holding date digits (birth 13-18, expiry 21-26).
var mrzDateWindows = [][2]int{{13, 18}, {21, 26}}

// ExtractMRZ locates the two-line machine-readable zone in the raw
// full-text transcription and decodes its fixed-offset fields. Geometry is
// never consulted. Every decoding failure is local: the affected field
// stays empty and the rest of the record is still produced.
func ExtractMRZ(fullText string) *FieldRecord {
	return extractMRZAt(fullText, time.Now().Year()%100)
}

func extractMRZAt(fullText string, currentYY int) *FieldRecord {
	rec := &FieldRecord{}

	cands := mrzCandidates(fullText)
	line1, line2, ok := findMRZPair(cands)
	if !ok {
		return rec
	}

	line2 = correctLine2(line2)
	rec.RawMRZ = line1 + "\n" + line2

	decodeLine1(line1, rec)
	decodeLine2(line2, rec, currentYY)
	return rec
}

// mrzCandidates normalizes each non-empty line and keeps plausible MRZ
// sequences. Spaces are OCR artifacts inside the zone and are removed.
func mrzCandidates(fullText string) []string {
	var cands []string
	for _, line := range strings.Split(fullText, "\n") {
		clean := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(line), " ", ""))
		clean = ocrBrackets.Replace(clean)
		if len(clean) > 10 {
			cands = append(cands, clean)
		}
	}
	return cands
}

// findMRZPair pairs up the two MRZ lines using two strategies: a
// digit-density scan for line 2 first, then a label-anchor scan for a
// "P<..." line 1 as fallback. The first successful pair wins.
func findMRZPair(cands []string) (line1, line2 string, ok bool) {
	// Pass 1: line 2 carries the numeric fields, so a long sequence that is
	// mostly digits is the strongest anchor.
	for i, seq := range cands {
		if len(seq) <= 20 {
			continue
		}
		if float64(countDigits(seq))/float64(len(seq)) <= 0.4 {
			continue
		}
		if i == 0 {
			continue
		}
		prev := cands[i-1]
		if strings.HasPrefix(prev, "P") || strings.Count(prev, string(filler)) >= 2 {
			return prev, seq, true
		}
	}

	// Pass 2: anchor on the document-type prefix of line 1 instead.
	for i, seq := range cands {
		if !strings.HasPrefix(seq, "P") || strings.Count(seq, string(filler)) < 2 {
			continue
		}
		if i+1 >= len(cands) {
			continue
		}
		next := cands[i+1]
		if countDigits(next) > 5 {
			return seq, next, true
		}
	}

	return "", "", false
}

func countDigits(s string) int {
	n := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n++
		}
	}
	return n
}

// correctLine2 applies character-confusion correction inside the two date
// windows of line 2. Offsets outside the windows are left untouched.
func correctLine2(line2 string) string {
	b := []byte(line2)
	for _, w := range mrzDateWindows {
		for idx := w[0]; idx <= w[1] && idx < len(b); idx++ {
			if fixed, ok := mrzDigitFix[b[idx]]; ok {
				b[idx] = fixed
			}
		}
	}
	return string(b)
}

// decodeLine1 extracts surname and given name from the name area of line 1.
func decodeLine1(line1 string, rec *FieldRecord) {
	nameArea := strings.TrimPrefix(line1, "P")
	seg0, seg1, _ := strings.Cut(nameArea, "<<")

	// The first segment still carries document-type and country-code noise.
	// A literal JPN is the reliable boundary; without it, skip a fixed-width
	// prefix when the segment is long enough to contain one.
	if idx := strings.Index(seg0, "JPN"); idx >= 0 {
		seg0 = seg0[idx+len("JPN"):]
	} else if len(seg0) > 5 {
		seg0 = seg0[5:]
	}
	rec.Surname = strings.TrimSpace(strings.ReplaceAll(seg0, string(filler), ""))
	rec.GivenName = strings.TrimSpace(strings.ReplaceAll(seg1, string(filler), " "))
}

// decodeLine2 extracts passport number, birth date, sex, and expiry date
// from the fixed offsets of line 2. Short lines degrade gracefully.
func decodeLine2(line2 string, rec *FieldRecord, currentYY int) {
	// Passport number: leading alphanumeric run, at most 9 characters.
	end := 0
	for end < len(line2) && end < 9 {
		c := line2[end]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			break
		}
		end++
	}
	rec.PassportNo = line2[:end]

	if len(line2) > 19 {
		if dob := line2[13:19]; isDigits(dob) {
			rec.BirthDate = convertTwoDigitDate(dob, false, currentYY)
		}
	}
	if len(line2) > 20 {
		rec.Sex = string(line2[20])
	}
	if len(line2) > 26 {
		if exp := line2[21:27]; isDigits(exp) {
			rec.ExpiryDate = convertTwoDigitDate(exp, true, currentYY)
		}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// convertTwoDigitDate expands an MRZ YYMMDD string to YYYY/MM/DD. Expiry
// dates are future-biased into the 2000s; birth dates fall back to the
// 1900s when the two-digit year exceeds the current one. A month outside
// 1-12 returns the raw string unchanged rather than guessing.
func convertTwoDigitDate(yymmdd string, future bool, currentYY int) string {
	if len(yymmdd) < 6 || !isDigits(yymmdd[:6]) {
		return yymmdd
	}
	yy := int(yymmdd[0]-'0')*10 + int(yymmdd[1]-'0')
	mm := int(yymmdd[2]-'0')*10 + int(yymmdd[3]-'0')
	dd := int(yymmdd[4]-'0')*10 + int(yymmdd[5]-'0')
	if mm < 1 || mm > 12 {
		return yymmdd
	}

	year := 2000 + yy
	if !future && yy > currentYY {
		year = 1900 + yy
	}
	return fmt.Sprintf("%04d/%02d/%02d", year, mm, dd)
}
