package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an operator account. Only admins may manage other
// accounts or delete registry entries.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Entry is one row of the passport registry: the extracted fields plus the
// operator-maintained columns.
type Entry struct {
	ID           uuid.UUID `db:"id" json:"id"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
	PassportNo   string    `db:"passport_no" json:"passport_no"`
	Surname      string    `db:"surname" json:"surname"`
	GivenName    string    `db:"given_name" json:"given_name"`
	BirthDate    string    `db:"birth_date" json:"birth_date"`
	Sex          string    `db:"sex" json:"sex"`
	Nationality  string    `db:"nationality" json:"nationality"`
	Domicile     string    `db:"domicile" json:"domicile"`
	IssueDate    string    `db:"issue_date" json:"issue_date"`
	ExpiryDate   string    `db:"expiry_date" json:"expiry_date"`
	Address      string    `db:"address" json:"address"`
	Remarks      string    `db:"remarks" json:"remarks"`
	ImageFile    string    `db:"image_file" json:"image_file"`
	RawMRZ       string    `db:"raw_mrz" json:"raw_mrz"`
	CreatedBy    uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded passport image.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ValidityResult is the outcome of checking one registry entry against an
// entry date and a required remaining validity.
type ValidityResult struct {
	EntryID    uuid.UUID      `json:"entry_id"`
	PassportNo string         `json:"passport_no"`
	ExpiryDate string         `json:"expiry_date"`
	Status     ValidityStatus `json:"status"`
	DaysLeft   int            `json:"days_left"`
}
