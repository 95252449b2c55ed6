// Package xlsx renders the passport registry as an Excel workbook. The
// column set is the fixed 13-column layout the desk operators work with;
// older workbooks missing newer columns are migrated on open.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"passdesk/internal/domain"
)

// DefaultSheetName is used when the config leaves the sheet name empty.
const DefaultSheetName = "旅券情報"

// headers is the registry column layout, in order.
var headers = []string{
	"登録日時",
	"旅券番号",
	"氏名(姓)",
	"氏名(名)",
	"生年月日",
	"性別",
	"国籍",
	"本籍",
	"発行年月日",
	"有効期間満了日",
	"住所(手入力)",
	"備考",
	"画像ファイル名",
}

const registeredAtLayout = "2006/01/02 15:04:05"

// Headers returns the registry column layout.
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}

// Writer builds registry workbooks.
type Writer struct {
	sheet string
}

// NewWriter creates a workbook writer for the given sheet name.
func NewWriter(sheet string) *Writer {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	return &Writer{sheet: sheet}
}

// Build renders all entries into a fresh workbook and returns its bytes.
func (w *Writer) Build(entries []domain.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(w.sheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	if idx, _ := f.GetSheetIndex(w.sheet); idx >= 0 {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	if err := writeHeaderRow(f, w.sheet); err != nil {
		return nil, err
	}
	for i, entry := range entries {
		if err := writeEntryRow(f, w.sheet, i+2, entry); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Append opens an existing workbook, migrates the header row if columns
// are missing, appends the entry after the last row, and returns the new
// workbook bytes.
func (w *Writer) Append(book []byte, entry domain.Entry) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(book))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := w.ensureSheet(f); err != nil {
		return nil, err
	}
	if err := EnsureColumns(f, w.sheet); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if err := writeEntryRow(f, w.sheet, len(rows)+1, entry); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *Writer) ensureSheet(f *excelize.File) error {
	idx, err := f.GetSheetIndex(w.sheet)
	if err != nil {
		return fmt.Errorf("looking up sheet: %w", err)
	}
	if idx >= 0 {
		return nil
	}
	if _, err := f.NewSheet(w.sheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	return writeHeaderRow(f, w.sheet)
}

// EnsureColumns rewrites the sheet into the canonical column order.
// Workbooks written before a column was introduced keep their data: known
// columns move to their canonical position, missing columns come in empty,
// and anything past the canonical width is cleared.
func EnsureColumns(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) == 0 {
		return writeHeaderRow(f, sheet)
	}
	if canonicalHeader(rows[0]) {
		return nil
	}

	colOf := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if _, ok := colOf[h]; !ok {
			colOf[h] = i
		}
	}

	width := len(rows[0])
	if width < len(headers) {
		width = len(headers)
	}

	for r, old := range rows {
		for i, h := range headers {
			v := h
			if r > 0 {
				v = ""
				if c, ok := colOf[h]; ok && c < len(old) {
					v = old[c]
				}
			}
			if err := setCell(f, sheet, i+1, r+1, v); err != nil {
				return err
			}
		}
		for col := len(headers); col < width; col++ {
			if err := setCell(f, sheet, col+1, r+1, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

func canonicalHeader(row []string) bool {
	if len(row) != len(headers) {
		return false
	}
	for i, h := range headers {
		if row[i] != h {
			return false
		}
	}
	return true
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("computing cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("writing cell %s: %w", cell, err)
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string) error {
	for i, h := range headers {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	return nil
}

func writeEntryRow(f *excelize.File, sheet string, row int, entry domain.Entry) error {
	registered := ""
	if !entry.RegisteredAt.IsZero() {
		registered = entry.RegisteredAt.Format(registeredAtLayout)
	}
	values := []string{
		registered,
		entry.PassportNo,
		entry.Surname,
		entry.GivenName,
		entry.BirthDate,
		entry.Sex,
		entry.Nationality,
		entry.Domicile,
		entry.IssueDate,
		entry.ExpiryDate,
		entry.Address,
		entry.Remarks,
		entry.ImageFile,
	}
	for i, v := range values {
		if err := setCell(f, sheet, i+1, row, v); err != nil {
			return err
		}
	}
	return nil
}
