package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FoldsWidthAndTrims(t *testing.T) {
	assert.Equal(t, "KANATA", Normalize("ＫＡＮＡＴＡ"))
	assert.Equal(t, "TZ1234567", Normalize("  ＴＺ１２３４５６７ "))
	assert.Equal(t, "A B", Normalize(" A B "))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"ＫＡＮＡＴＡ", " TOKYO ", "１２３ ＡＢＣ", "東京都"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeSoft_RemovesLetterSpacing(t *testing.T) {
	assert.Equal(t, "KANATA", NormalizeSoft("K A N A T A"))
	assert.Equal(t, "KANATA", NormalizeSoft("Ｋ Ａ Ｎ Ａ Ｔ Ａ"))
}

func TestNormalizeAggressive(t *testing.T) {
	assert.Equal(t, "TZ1234567", NormalizeAggressive("tz.12-34 567*", false))
	assert.Equal(t, "2025/01/01", NormalizeAggressive(" 2025/01/01,", true))
	assert.Equal(t, "20250101", NormalizeAggressive("2025/01/01", false))
}
