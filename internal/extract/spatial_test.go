package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tok builds a token with an axis-aligned box.
func tok(text string, minX, minY, maxX, maxY float64) Token {
	return Token{Text: text, Box: BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}}
}

func TestMatchLabels_SurnameBelowLabel(t *testing.T) {
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Surname", 100, 100, 200, 120),
			tok("TANAKA", 100, 130, 190, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "TANAKA", rec.Surname)
}

func TestMatchLabels_ValueLeftOfLabel(t *testing.T) {
	// Expiry values sit left of the right-aligned label; the asymmetric
	// horizontal window must reach them.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Expiry", 500, 100, 560, 120),
			tok("15", 200, 130, 220, 150),
			tok("SEP", 230, 130, 270, 150),
			tok("2028", 280, 130, 330, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "2028/09/15", rec.ExpiryDate)
}

func TestMatchLabels_CompoundLabelContainment(t *testing.T) {
	// "DATE OF EXPIRY" token contains the configured "EXPIRY" label.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("DATE OF EXPIRY", 100, 100, 300, 120),
			tok("15 SEP 2028", 100, 130, 250, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "2028/09/15", rec.ExpiryDate)
}

func TestMatchLabels_ShortLabelRequiresExactMatch(t *testing.T) {
	// "No" is too short for containment matching; "NOVEMBER" must not
	// anchor the passport-number field.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("NOVEMBER", 100, 100, 220, 120),
			tok("TZ1234567", 100, 130, 220, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Empty(t, rec.PassportNo)
}

func TestMatchLabels_KanjiLabelRequiresExactMatch(t *testing.T) {
	// 性別 is two runes, under the containment threshold even though it is
	// six bytes; a merged token containing it must not anchor the Sex field.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("住民性別表", 100, 100, 220, 120),
			tok("M", 100, 130, 115, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Empty(t, rec.Sex)
}

func TestMatchLabels_KanjiLabelExactMatch(t *testing.T) {
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("性別", 100, 100, 140, 120),
			tok("M", 100, 130, 115, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "M", rec.Sex)
}

func TestMatchLabels_StopWordSkippedAsCandidate(t *testing.T) {
	// A neighboring label inside the ROI must not leak into the value.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Surname", 100, 100, 200, 120),
			tok("Passport", 120, 130, 210, 150),
			tok("TANAKA", 100, 160, 190, 180),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "TANAKA", rec.Surname)
}

func TestMatchLabels_NationalityKeepsJapan(t *testing.T) {
	// JAPAN is a stop word everywhere except the nationality field, where
	// it is the value itself.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Nationality", 100, 100, 220, 120),
			tok("JAPAN", 100, 130, 180, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "JPN", rec.Nationality)
}

func TestMatchLabels_Sex(t *testing.T) {
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Sex", 100, 100, 140, 120),
			tok("F", 100, 130, 115, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "F", rec.Sex)
}

func TestMatchLabels_PassportNumberSpacing(t *testing.T) {
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Passport", 100, 100, 200, 120),
			tok("TZ", 100, 130, 130, 150),
			tok("1234567", 140, 130, 230, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "TZ1234567", rec.PassportNo)
}

func TestMatchLabels_PassportFallbackFromFullText(t *testing.T) {
	ann := &AnnotationSet{
		FullText: "JAPAN PASSPORT\nMJ 1234567\nYAMADA",
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "MJ1234567", rec.PassportNo)
}

func TestMatchLabels_DomicileResolved(t *testing.T) {
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Domicile", 100, 100, 200, 120),
			tok("OKINAWA", 100, 130, 200, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "OKINAWA", rec.Domicile)
}

func TestMatchLabels_AnchorIsFirstInReadingOrder(t *testing.T) {
	// Two matched labels: the one higher on the page anchors the ROI.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Surname", 100, 300, 200, 320),
			tok("Surname", 100, 100, 200, 120),
			tok("TANAKA", 100, 130, 190, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "TANAKA", rec.Surname)
}

func TestMatchLabels_VerticalGapBound(t *testing.T) {
	// A token far below the label (beyond 2.5x label height) is not a
	// candidate.
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Surname", 100, 100, 200, 120),
			tok("TANAKA", 100, 400, 190, 420),
		},
	}
	rec := MatchLabels(ann)
	assert.Empty(t, rec.Surname)
}

func TestMatchLabels_NameCleaning(t *testing.T) {
	ann := &AnnotationSet{
		Tokens: []Token{
			tok("Given", 100, 100, 200, 120),
			tok("TARO<1", 100, 130, 190, 150),
			tok("/Nati", 200, 130, 240, 150),
		},
	}
	rec := MatchLabels(ann)
	assert.Equal(t, "TARO", rec.GivenName)
}

func TestMatchLabels_Empty(t *testing.T) {
	rec := MatchLabels(&AnnotationSet{})
	assert.Equal(t, &FieldRecord{}, rec)
}
