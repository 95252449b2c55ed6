package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"pdf":  FileTypePDF,
}

// UserRole defines the operator role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// ValidationRuleType classifies how a validation rule checks its field.
type ValidationRuleType string

const (
	ValidationRuleRequired ValidationRuleType = "required"
	ValidationRuleRegex    ValidationRuleType = "regex"
	ValidationRuleLogical  ValidationRuleType = "logical"
)

// ValidationSeverity ranks how a failed rule affects the field status.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// FieldValidationStatus is the computed per-field verdict.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusInvalid FieldValidationStatus = "invalid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
)

// ValidityStatus classifies a passport's remaining validity at a planned
// entry date.
type ValidityStatus string

const (
	ValidityOK      ValidityStatus = "ok"
	ValidityNG      ValidityStatus = "ng"
	ValidityUnknown ValidityStatus = "unknown"
)
