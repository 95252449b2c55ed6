package extract

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ROI geometry constants, in units of the anchor label's size. Values are
// often printed left of a right-aligned label and only rarely far right,
// hence the wide asymmetric horizontal window.
const (
	roiTopMargin = 0.1 // candidate top must be below anchorTop + margin*h
	roiMaxGap    = 2.5 // max vertical gap between anchor bottom and candidate top
	roiLeftSpan  = 8.0 // horizontal window extends left by span*w
	roiRightSpan = 5.0 // and right by span*w
)

// MatchLabels resolves each field by locating its printed label token and
// reading the value tokens spatially associated with it. Unresolvable
// fields stay empty; ambiguity is settled by reading order, never reported.
func MatchLabels(ann *AnnotationSet) *FieldRecord {
	rec := &FieldRecord{}

	matched := matchLabelTokens(ann.Tokens)
	for _, tgt := range labelTargets {
		idxs := matched[tgt.Key]
		if len(idxs) == 0 {
			continue
		}
		anchorIdx := selectAnchor(ann.Tokens, idxs)
		cands := collectCandidates(ann.Tokens, anchorIdx, tgt.Key)
		if len(cands) == 0 {
			continue
		}
		combined := joinCandidates(ann.Tokens, cands, tgt.Key)
		if combined == "" {
			continue
		}
		cleanValue(tgt.Key, combined, rec)
	}

	// Last resort for the passport number: the 2-letter 7-digit pattern is
	// distinctive enough to trust anywhere in the transcription.
	if rec.PassportNo == "" && ann.FullText != "" {
		if m := passportFallbackRe.FindStringSubmatch(ann.FullText); m != nil {
			rec.PassportNo = m[1] + m[2]
		}
	}

	return rec
}

// normalizeLabelText prepares token text for label comparison.
func normalizeLabelText(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, ":", "")
}

// matchLabelTokens finds every token that looks like a field label and
// groups the token indices by field. Labels of three characters or fewer
// must match exactly; longer ones match by containment, so "EXPIRY" still
// matches "DATE OF EXPIRY". The threshold counts runes, not bytes, so the
// two-kanji labels stay in the exact branch.
func matchLabelTokens(tokens []Token) map[FieldKey][]int {
	matched := make(map[FieldKey][]int)
	for i, tok := range tokens {
		text := normalizeLabelText(tok.Text)
		for _, tgt := range labelTargets {
			for _, lbl := range tgt.Labels {
				lbl = normalizeLabelText(lbl)
				if lbl == text || (utf8.RuneCountInString(lbl) > 3 && strings.Contains(text, lbl)) {
					matched[tgt.Key] = append(matched[tgt.Key], i)
					break
				}
			}
		}
	}
	return matched
}

// selectAnchor picks the matched label earliest in reading order.
func selectAnchor(tokens []Token, idxs []int) int {
	best := idxs[0]
	for _, i := range idxs[1:] {
		bi, bb := tokens[i].Box, tokens[best].Box
		if bi.MinY < bb.MinY || (bi.MinY == bb.MinY && bi.MinX < bb.MinX) {
			best = i
		}
	}
	return best
}

// collectCandidates gathers the tokens inside the anchor's region of
// interest: strictly below the label, within a bounded vertical gap, and
// inside the asymmetric horizontal window.
func collectCandidates(tokens []Token, anchorIdx int, key FieldKey) []int {
	anchor := tokens[anchorIdx].Box
	h, w := anchor.Height(), anchor.Width()

	var cands []int
	for i, tok := range tokens {
		if i == anchorIdx {
			continue
		}
		// Tokens that are themselves labels belong to neighboring fields.
		if key != FieldNationality {
			if _, stop := stopWords[normalizeLabelText(tok.Text)]; stop {
				continue
			}
		}

		b := tok.Box
		if b.MinY <= anchor.MinY+h*roiTopMargin {
			continue
		}
		if b.MinY-anchor.MaxY >= h*roiMaxGap {
			continue
		}
		cx := b.CenterX()
		if cx <= anchor.MinX-w*roiLeftSpan || cx >= anchor.MaxX+w*roiRightSpan {
			continue
		}
		cands = append(cands, i)
	}

	sort.Slice(cands, func(a, b int) bool {
		ba, bb := tokens[cands[a]].Box, tokens[cands[b]].Box
		if ba.MinY != bb.MinY {
			return ba.MinY < bb.MinY
		}
		return ba.MinX < bb.MinX
	})
	return cands
}

// joinCandidates concatenates candidate tokens in reading order, halting at
// the first stop word or merged label fragment.
func joinCandidates(tokens []Token, cands []int, key FieldKey) string {
	var parts []string
	for _, i := range cands {
		word := strings.TrimSpace(tokens[i].Text)

		if key != FieldNationality {
			if _, stop := stopWords[normalizeLabelText(word)]; stop {
				break
			}
		}
		if key != FieldSurname && key != FieldGivenName && len([]rune(word)) > 1 {
			if containsAnyFragment(word) {
				break
			}
		}

		parts = append(parts, word)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func containsAnyFragment(word string) bool {
	for _, frag := range labelFragments {
		if strings.Contains(word, frag) {
			return true
		}
	}
	return false
}

// cleanValue applies the per-field cleaner to the joined candidate text and
// stores the result. Cleaners that find nothing leave the field untouched.
func cleanValue(key FieldKey, combined string, rec *FieldRecord) {
	switch key {
	case FieldBirthDate, FieldIssueDate, FieldExpiryDate:
		if v := ParseDateText(combined); v != "" {
			rec.Set(key, v)
		}

	case FieldSex:
		if m := sexRe.FindStringSubmatch(strings.ToUpper(combined)); m != nil {
			rec.Sex = m[1]
		}

	case FieldNationality:
		upper := strings.ToUpper(combined)
		if strings.Contains(upper, "JAPAN") || strings.Contains(upper, "JPN") {
			rec.Nationality = "JPN"
		}

	case FieldDomicile:
		if v := ResolveDomicile(combined); v != "" {
			rec.Domicile = v
		}

	case FieldPassportNo:
		if m := passportNoRe.FindStringSubmatch(combined); m != nil {
			rec.PassportNo = strings.ReplaceAll(m[1], " ", "")
		}

	default:
		if v := cleanNameText(combined); v != "" {
			rec.Set(key, v)
		}
	}
}

// nameNoise is stripped from name values; kerning on the VIZ makes OCR
// sprinkle punctuation and fillers between letters.
const nameNoise = "0123456789<:;,."

// cleanNameText strips digits, punctuation, fillers, and any /-prefixed
// trailing fragment left over from a half-matched bilingual label.
func cleanNameText(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(nameNoise, r) {
			return -1
		}
		return r
	}, s)
	s = slashTailRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
