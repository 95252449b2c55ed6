package extract

import "regexp"

// Direction is where value tokens are searched relative to a matched label.
type Direction int

// Japanese passports print every value below its label.
const DirBelow Direction = iota

// LabelTarget configures spatial matching for one field: the printed label
// variants in both scripts and the search direction. Value validation is
// the per-field cleaner's job.
type LabelTarget struct {
	Key       FieldKey
	Labels    []string
	Direction Direction
}

var (
	passportNoRe = regexp.MustCompile(`([A-Z]{2}\s*\d{7})`)
	sexRe        = regexp.MustCompile(`\b([MF])\b`)

	// passportFallbackRe splits letters and digits so OCR spacing between
	// them can be discarded.
	passportFallbackRe = regexp.MustCompile(`([A-Z]{2})\s*(\d{7})`)

	// slashTailRe removes a /-prefixed fragment of a half-matched label,
	// e.g. the "/Nati" left when "姓/Surname" is torn across tokens.
	slashTailRe = regexp.MustCompile(`/[a-zA-Z]*`)
)

// labelTargets is the static per-field matching table. Single words match
// more reliably than compound labels, which token splitting tears apart.
var labelTargets = []LabelTarget{
	{Key: FieldPassportNo, Labels: []string{"Passport", "No", "旅券番号"}, Direction: DirBelow},
	{Key: FieldSurname, Labels: []string{"Surname", "姓"}, Direction: DirBelow},
	{Key: FieldGivenName, Labels: []string{"Given", "名"}, Direction: DirBelow},
	{Key: FieldNationality, Labels: []string{"Nationality", "国籍"}, Direction: DirBelow},
	{Key: FieldBirthDate, Labels: []string{"Birth", "生年月日"}, Direction: DirBelow},
	{Key: FieldSex, Labels: []string{"Sex", "性別"}, Direction: DirBelow},
	{Key: FieldIssueDate, Labels: []string{"Issue", "発行年月日"}, Direction: DirBelow},
	{Key: FieldDomicile, Labels: []string{"Registered", "Domicile", "本籍"}, Direction: DirBelow},
	{Key: FieldExpiryDate, Labels: []string{"Expiry", "有効期間満了日"}, Direction: DirBelow},
}

// stopWords is the bilingual field-label vocabulary. A token matching one
// of these is itself a label, not a value. Nationality is the exception,
// where JAPAN/JPN is the value.
var stopWords = map[string]struct{}{
	"NAME": {}, "SURNAME": {}, "GIVEN": {}, "DATE": {}, "BIRTH": {}, "EXPIRY": {},
	"SEX": {}, "NATIONALITY": {}, "PASSPORT": {}, "NO": {}, "JAPAN": {}, "ISSUING": {},
	"COUNTRY": {}, "MINISTRY": {}, "FOREIGN": {}, "AFFAIRS": {}, "REGISTERED": {},
	"DOMICILE": {}, "SIGNATURE": {}, "BEARER": {}, "AUTHORITY": {}, "TYPE": {},
	"JPN": {}, "ISSUE": {},
	"旅券番号": {}, "姓": {}, "名": {}, "国籍": {}, "生年月日": {}, "性別": {},
	"有効期間満了日": {}, "所持人自署": {}, "発行官庁": {}, "型": {}, "発行国": {},
	"本籍": {}, "発行年月日": {},
}

// labelFragments are Japanese field-name fragments; OCR sometimes merges a
// label into an adjacent value token, so a token containing one ends the
// value run (name fields excepted, they never carry kana/kanji on the VIZ).
var labelFragments = []string{"名", "姓", "国籍", "生年月日", "性別", "有効期間"}
