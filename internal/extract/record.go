package extract

// FieldKey identifies one extractable passport field.
type FieldKey string

const (
	FieldPassportNo  FieldKey = "passport_no"
	FieldSurname     FieldKey = "surname"
	FieldGivenName   FieldKey = "given_name"
	FieldBirthDate   FieldKey = "birth_date"
	FieldSex         FieldKey = "sex"
	FieldNationality FieldKey = "nationality"
	FieldDomicile    FieldKey = "domicile"
	FieldIssueDate   FieldKey = "issue_date"
	FieldExpiryDate  FieldKey = "expiry_date"
)

// FieldKeys lists every FieldKey in output-contract order.
var FieldKeys = []FieldKey{
	FieldPassportNo,
	FieldSurname,
	FieldGivenName,
	FieldBirthDate,
	FieldSex,
	FieldNationality,
	FieldDomicile,
	FieldIssueDate,
	FieldExpiryDate,
}

// FieldRecord is the canonical extraction result. Every field is always
// present; an unresolved field is the empty string, never an error.
// RawMRZ holds the two corrected MRZ lines joined by a newline, or empty
// if no MRZ block was found.
type FieldRecord struct {
	PassportNo  string `json:"passport_no"`
	Surname     string `json:"surname"`
	GivenName   string `json:"given_name"`
	BirthDate   string `json:"birth_date"`
	Sex         string `json:"sex"`
	Nationality string `json:"nationality"`
	Domicile    string `json:"domicile"`
	IssueDate   string `json:"issue_date"`
	ExpiryDate  string `json:"expiry_date"`
	RawMRZ      string `json:"raw_mrz"`
}

// Get returns the value for a field key. Unknown keys return "".
func (r *FieldRecord) Get(k FieldKey) string {
	switch k {
	case FieldPassportNo:
		return r.PassportNo
	case FieldSurname:
		return r.Surname
	case FieldGivenName:
		return r.GivenName
	case FieldBirthDate:
		return r.BirthDate
	case FieldSex:
		return r.Sex
	case FieldNationality:
		return r.Nationality
	case FieldDomicile:
		return r.Domicile
	case FieldIssueDate:
		return r.IssueDate
	case FieldExpiryDate:
		return r.ExpiryDate
	}
	return ""
}

// Set assigns the value for a field key. Unknown keys are ignored.
func (r *FieldRecord) Set(k FieldKey, v string) {
	switch k {
	case FieldPassportNo:
		r.PassportNo = v
	case FieldSurname:
		r.Surname = v
	case FieldGivenName:
		r.GivenName = v
	case FieldBirthDate:
		r.BirthDate = v
	case FieldSex:
		r.Sex = v
	case FieldNationality:
		r.Nationality = v
	case FieldDomicile:
		r.Domicile = v
	case FieldIssueDate:
		r.IssueDate = v
	case FieldExpiryDate:
		r.ExpiryDate = v
	}
}
