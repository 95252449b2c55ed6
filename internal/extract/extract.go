// Package extract turns noisy OCR annotations of a passport page into a
// canonical field record. Two independent strategies run over the same
// annotation set: a machine-readable-zone decoder working on the raw text,
// and a spatial matcher associating printed labels with nearby value
// tokens. A fixed precedence table reconciles their outputs.
//
// The whole package is pure computation with no I/O and no shared mutable
// state. The label, stop-word, and prefecture tables are read-only, so
// concurrent Parse calls need no coordination.
package extract

// Parse runs both extraction strategies over one annotation set and merges
// their results. The returned record is always fully populated; fields that
// could not be determined are empty strings.
func Parse(ann *AnnotationSet) *FieldRecord {
	mrz := ExtractMRZ(ann.FullText)
	spatial := MatchLabels(ann)
	return Merge(mrz, spatial)
}
