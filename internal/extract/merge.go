package extract

// fieldSource names which extraction strategy wins for a field when both
// produced a value.
type fieldSource int

const (
	// preferSpatial: the printed page is the authoritative rendering for
	// most fields, and the spatial matcher reads it directly.
	preferSpatial fieldSource = iota
	// preferMRZ: names on the VIZ suffer from visual kerning that OCR turns
	// into spurious spacing, so the MRZ reading is cleaner.
	preferMRZ
)

// precedence is the per-field merge policy. Every FieldKey has an entry.
var precedence = map[FieldKey]fieldSource{
	FieldPassportNo:  preferSpatial,
	FieldSurname:     preferMRZ,
	FieldGivenName:   preferMRZ,
	FieldBirthDate:   preferSpatial,
	FieldSex:         preferSpatial,
	FieldNationality: preferSpatial,
	FieldDomicile:    preferSpatial,
	FieldIssueDate:   preferSpatial,
	FieldExpiryDate:  preferSpatial,
}

// fieldDefaults supplies a value when both strategies came up empty.
var fieldDefaults = map[FieldKey]string{
	FieldNationality: "JPN",
}

// Merge reconciles the MRZ and spatial extraction results into one total
// record. The preferred source wins when non-empty, then the other source,
// then the field default. RawMRZ is carried verbatim from the MRZ side.
func Merge(mrz, spatial *FieldRecord) *FieldRecord {
	merged := &FieldRecord{RawMRZ: mrz.RawMRZ}
	for _, key := range FieldKeys {
		primary, secondary := spatial.Get(key), mrz.Get(key)
		if precedence[key] == preferMRZ {
			primary, secondary = secondary, primary
		}
		switch {
		case primary != "":
			merged.Set(key, primary)
		case secondary != "":
			merged.Set(key, secondary)
		default:
			merged.Set(key, fieldDefaults[key])
		}
	}
	return merged
}
