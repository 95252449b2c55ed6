package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"passdesk/internal/domain"
	"passdesk/internal/port"
)

type entryRepo struct {
	db *sqlx.DB
}

// NewEntryRepo creates a new PostgreSQL-backed EntryRepository.
func NewEntryRepo(db *sqlx.DB) port.EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, entry *domain.Entry) error {
	entry.ID = uuid.New()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.RegisteredAt.IsZero() {
		entry.RegisteredAt = now
	}

	query := `INSERT INTO entries (id, registered_at, passport_no, surname, given_name,
		birth_date, sex, nationality, domicile, issue_date, expiry_date,
		address, remarks, image_file, raw_mrz, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.RegisteredAt, entry.PassportNo, entry.Surname, entry.GivenName,
		entry.BirthDate, entry.Sex, entry.Nationality, entry.Domicile,
		entry.IssueDate, entry.ExpiryDate, entry.Address, entry.Remarks,
		entry.ImageFile, entry.RawMRZ, entry.CreatedBy, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("entryRepo.Create: %w", err)
	}
	return nil
}

func (r *entryRepo) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error) {
	var entry domain.Entry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM entries WHERE id = $1", entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("entryRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *entryRepo) List(ctx context.Context, filter port.EntryFilter) ([]domain.Entry, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.PassportNo != "" {
		args = append(args, filter.PassportNo)
		where = append(where, fmt.Sprintf("passport_no = $%d", len(args)))
	}
	if filter.Surname != "" {
		args = append(args, "%"+strings.ToUpper(filter.Surname)+"%")
		where = append(where, fmt.Sprintf("surname LIKE $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM entries WHERE "+cond, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT * FROM entries WHERE %s ORDER BY registered_at DESC LIMIT $%d OFFSET $%d",
		cond, len(args)-1, len(args))

	var entries []domain.Entry
	err = r.db.SelectContext(ctx, &entries, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("entryRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *entryRepo) ListAll(ctx context.Context) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM entries ORDER BY registered_at ASC")
	if err != nil {
		return nil, fmt.Errorf("entryRepo.ListAll: %w", err)
	}
	return entries, nil
}

func (r *entryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	entry.UpdatedAt = time.Now().UTC()
	query := `UPDATE entries SET passport_no = $1, surname = $2, given_name = $3,
		birth_date = $4, sex = $5, nationality = $6, domicile = $7,
		issue_date = $8, expiry_date = $9, address = $10, remarks = $11,
		image_file = $12, raw_mrz = $13, updated_at = $14
		WHERE id = $15`
	result, err := r.db.ExecContext(ctx, query,
		entry.PassportNo, entry.Surname, entry.GivenName, entry.BirthDate,
		entry.Sex, entry.Nationality, entry.Domicile, entry.IssueDate,
		entry.ExpiryDate, entry.Address, entry.Remarks, entry.ImageFile,
		entry.RawMRZ, entry.UpdatedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("entryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *entryRepo) Delete(ctx context.Context, entryID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE id = $1", entryID)
	if err != nil {
		return fmt.Errorf("entryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *entryRepo) DeleteMany(ctx context.Context, entryIDs []uuid.UUID) (int, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("DELETE FROM entries WHERE id IN (?)", entryIDs)
	if err != nil {
		return 0, fmt.Errorf("entryRepo.DeleteMany: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("entryRepo.DeleteMany: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
