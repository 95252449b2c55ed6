package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"passdesk/internal/domain"
	"passdesk/internal/extract"
	"passdesk/internal/port"
	"passdesk/internal/xlsx"
)

const entryDateLayout = "2006/01/02"

// RegisterEntryInput is the DTO for registering a scanned passport. The
// extracted fields arrive as the operator confirmed them, plus the
// operator-only columns.
type RegisterEntryInput struct {
	Fields    *extract.FieldRecord `json:"fields" binding:"required"`
	Address   string               `json:"address"`
	Remarks   string               `json:"remarks"`
	ImageFile string               `json:"image_file"`
}

// UpdateEntryInput is the DTO for editing a registry entry.
type UpdateEntryInput struct {
	PassportNo  *string `json:"passport_no"`
	Surname     *string `json:"surname"`
	GivenName   *string `json:"given_name"`
	BirthDate   *string `json:"birth_date"`
	Sex         *string `json:"sex"`
	Nationality *string `json:"nationality"`
	Domicile    *string `json:"domicile"`
	IssueDate   *string `json:"issue_date"`
	ExpiryDate  *string `json:"expiry_date"`
	Address     *string `json:"address"`
	Remarks     *string `json:"remarks"`
}

// ValidityCheckInput configures a residual-validity check over the registry.
type ValidityCheckInput struct {
	EntryDate    string `json:"entry_date" binding:"required"`
	RequiredDays int    `json:"required_days" binding:"required,min=1"`
}

// EntryService defines the passport registry contract.
type EntryService interface {
	Register(ctx context.Context, userID uuid.UUID, input RegisterEntryInput) (*domain.Entry, error)
	GetByID(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context, filter port.EntryFilter) ([]domain.Entry, int, error)
	Update(ctx context.Context, entryID uuid.UUID, input UpdateEntryInput) (*domain.Entry, error)
	Delete(ctx context.Context, entryID uuid.UUID) error
	DeleteMany(ctx context.Context, entryIDs []uuid.UUID) (int, error)
	CheckValidity(ctx context.Context, input ValidityCheckInput) ([]domain.ValidityResult, error)
	NormalizeAll(ctx context.Context) (int, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
	AppendToWorkbook(ctx context.Context, entryID uuid.UUID, book []byte) ([]byte, error)
}

type entryService struct {
	repo   port.EntryRepository
	writer *xlsx.Writer
}

// NewEntryService creates a new EntryService implementation.
func NewEntryService(repo port.EntryRepository, writer *xlsx.Writer) EntryService {
	return &entryService{repo: repo, writer: writer}
}

func (s *entryService) Register(ctx context.Context, userID uuid.UUID, input RegisterEntryInput) (*domain.Entry, error) {
	f := input.Fields
	entry := &domain.Entry{
		RegisteredAt: time.Now().UTC(),
		PassportNo:   f.PassportNo,
		Surname:      f.Surname,
		GivenName:    f.GivenName,
		BirthDate:    f.BirthDate,
		Sex:          f.Sex,
		Nationality:  f.Nationality,
		Domicile:     f.Domicile,
		IssueDate:    f.IssueDate,
		ExpiryDate:   f.ExpiryDate,
		Address:      input.Address,
		Remarks:      input.Remarks,
		ImageFile:    input.ImageFile,
		RawMRZ:       f.RawMRZ,
		CreatedBy:    userID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	log.Printf("entryService.Register: registered passport %s by user %s", entry.PassportNo, userID)
	return entry, nil
}

func (s *entryService) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error) {
	return s.repo.GetByID(ctx, entryID)
}

func (s *entryService) List(ctx context.Context, filter port.EntryFilter) ([]domain.Entry, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *entryService) Update(ctx context.Context, entryID uuid.UUID, input UpdateEntryInput) (*domain.Entry, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&entry.PassportNo, input.PassportNo)
	apply(&entry.Surname, input.Surname)
	apply(&entry.GivenName, input.GivenName)
	apply(&entry.BirthDate, input.BirthDate)
	apply(&entry.Sex, input.Sex)
	apply(&entry.Nationality, input.Nationality)
	apply(&entry.Domicile, input.Domicile)
	apply(&entry.IssueDate, input.IssueDate)
	apply(&entry.ExpiryDate, input.ExpiryDate)
	apply(&entry.Address, input.Address)
	apply(&entry.Remarks, input.Remarks)

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Delete(ctx context.Context, entryID uuid.UUID) error {
	return s.repo.Delete(ctx, entryID)
}

func (s *entryService) DeleteMany(ctx context.Context, entryIDs []uuid.UUID) (int, error) {
	deleted, err := s.repo.DeleteMany(ctx, entryIDs)
	if err != nil {
		return 0, err
	}
	log.Printf("entryService.DeleteMany: deleted %d of %d requested entries", deleted, len(entryIDs))
	return deleted, nil
}

// CheckValidity classifies every entry against the planned entry date: an
// entry passes when its passport stays valid for the required number of
// days beyond that date. Unparseable expiry dates come back unknown rather
// than failing the whole check.
func (s *entryService) CheckValidity(ctx context.Context, input ValidityCheckInput) ([]domain.ValidityResult, error) {
	entryDate, err := time.Parse(entryDateLayout, input.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("entryService.CheckValidity: bad entry date %q: %w", input.EntryDate, err)
	}
	deadline := entryDate.AddDate(0, 0, input.RequiredDays)

	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ValidityResult, 0, len(entries))
	for _, e := range entries {
		res := domain.ValidityResult{
			EntryID:    e.ID,
			PassportNo: e.PassportNo,
			ExpiryDate: e.ExpiryDate,
			Status:     domain.ValidityUnknown,
		}
		expiry, perr := time.Parse(entryDateLayout, e.ExpiryDate)
		if perr == nil {
			res.DaysLeft = int(expiry.Sub(entryDate).Hours() / 24)
			if !expiry.Before(deadline) {
				res.Status = domain.ValidityOK
			} else {
				res.Status = domain.ValidityNG
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// NormalizeAll re-runs canonicalization over every stored entry, repairing
// rows registered before a cleaning rule existed. It returns the number of
// entries that changed.
func (s *entryService) NormalizeAll(ctx context.Context) (int, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range entries {
		e := &entries[i]
		before := *e

		e.PassportNo = extract.NormalizeAggressive(e.PassportNo, false)
		e.Surname = extract.Normalize(e.Surname)
		e.GivenName = extract.Normalize(e.GivenName)
		e.Sex = extract.NormalizeAggressive(e.Sex, false)
		e.Nationality = extract.NormalizeAggressive(e.Nationality, false)
		e.BirthDate = normalizeDate(e.BirthDate)
		e.IssueDate = normalizeDate(e.IssueDate)
		e.ExpiryDate = normalizeDate(e.ExpiryDate)
		if d := extract.ResolveDomicile(e.Domicile); d != "" {
			e.Domicile = d
		}

		if *e == before {
			continue
		}
		if err := s.repo.Update(ctx, e); err != nil {
			return changed, fmt.Errorf("entryService.NormalizeAll: entry %s: %w", e.ID, err)
		}
		changed++
	}
	log.Printf("entryService.NormalizeAll: normalized %d of %d entries", changed, len(entries))
	return changed, nil
}

// normalizeDate leaves canonical dates alone and retries free-form text
// through the date parser.
func normalizeDate(s string) string {
	s = extract.Normalize(s)
	if _, err := time.Parse(entryDateLayout, s); err == nil {
		return s
	}
	if parsed := extract.ParseDateText(s); parsed != "" {
		return parsed
	}
	return s
}

// ExportWorkbook renders the whole registry as an Excel workbook.
func (s *entryService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.writer.Build(entries)
}

// AppendToWorkbook adds one registry entry to an operator-supplied workbook,
// migrating older column layouts on the way.
func (s *entryService) AppendToWorkbook(ctx context.Context, entryID uuid.UUID, book []byte) ([]byte, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	out, err := s.writer.Append(book, *entry)
	if err != nil {
		return nil, fmt.Errorf("entryService.AppendToWorkbook: entry %s: %w", entryID, err)
	}
	return out, nil
}
