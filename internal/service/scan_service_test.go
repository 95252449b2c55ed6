package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"passdesk/internal/config"
	"passdesk/internal/domain"
	"passdesk/internal/extract"
	"passdesk/internal/service"
	"passdesk/internal/validator"
	"passdesk/internal/validator/passport"
	"passdesk/mocks"
)

const scanMRZ = "P<JPNYAMADA<<TARO<<<<<<<<<<<<<<<<<<<<<<<<<<<\n" +
	"TZ12345674JPN8601234M2501017<<<<<<<<<<<<<<06"

func builtinRegistry() *validator.Registry {
	reg := validator.NewRegistry()
	for _, v := range passport.AllBuiltinValidators() {
		reg.Register(v)
	}
	return reg
}

func newTestScanService(annotator *mocks.MockAnnotator, files *mocks.MockFileService) service.ScanService {
	return service.NewScanService(annotator, files, builtinRegistry(), config.ScanConfig{
		Concurrency:  2,
		MaxBatchSize: 10,
	})
}

func TestScanImage(t *testing.T) {
	annotator := new(mocks.MockAnnotator)
	files := new(mocks.MockFileService)
	svc := newTestScanService(annotator, files)

	annotator.On("Annotate", mock.Anything, mock.Anything).
		Return(&extract.AnnotationSet{FullText: scanMRZ}, nil)

	result, err := svc.ScanImage(context.Background(), []byte("img"))
	require.NoError(t, err)

	assert.Equal(t, "TZ1234567", result.Fields.PassportNo)
	assert.Equal(t, "YAMADA", result.Fields.Surname)
	assert.Equal(t, "TARO", result.Fields.GivenName)
	assert.Equal(t, "1986/01/23", result.Fields.BirthDate)
	assert.Equal(t, "M", result.Fields.Sex)

	require.Contains(t, result.FieldStatuses, "passport_no")
	assert.Equal(t, domain.FieldStatusValid, result.FieldStatuses["passport_no"].Status)
	// No issue date on the page, so that field stays unsure.
	require.Contains(t, result.FieldStatuses, "issue_date")
	assert.Equal(t, domain.FieldStatusUnsure, result.FieldStatuses["issue_date"].Status)

	annotator.AssertExpectations(t)
}

func TestScanImage_AnnotatorError(t *testing.T) {
	annotator := new(mocks.MockAnnotator)
	files := new(mocks.MockFileService)
	svc := newTestScanService(annotator, files)

	annotator.On("Annotate", mock.Anything, mock.Anything).
		Return(nil, domain.ErrNoTextDetected)

	_, err := svc.ScanImage(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, domain.ErrNoTextDetected)
}

func TestScanFile(t *testing.T) {
	annotator := new(mocks.MockAnnotator)
	files := new(mocks.MockFileService)
	svc := newTestScanService(annotator, files)

	fileID := uuid.New()
	meta := &domain.FileMeta{ID: fileID, Status: domain.FileStatusUploaded}
	files.On("GetBytes", mock.Anything, fileID).Return(meta, []byte("img"), nil)
	annotator.On("Annotate", mock.Anything, mock.Anything).
		Return(&extract.AnnotationSet{FullText: scanMRZ}, nil)

	result, err := svc.ScanFile(context.Background(), fileID)
	require.NoError(t, err)
	assert.Equal(t, fileID, result.FileID)
	assert.Equal(t, "YAMADA", result.Fields.Surname)

	files.AssertExpectations(t)
}

func TestScanFile_NotFound(t *testing.T) {
	annotator := new(mocks.MockAnnotator)
	files := new(mocks.MockFileService)
	svc := newTestScanService(annotator, files)

	fileID := uuid.New()
	files.On("GetBytes", mock.Anything, fileID).Return(nil, nil, domain.ErrNotFound)

	_, err := svc.ScanFile(context.Background(), fileID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScanBatch_PreservesOrderAndCapturesErrors(t *testing.T) {
	annotator := new(mocks.MockAnnotator)
	files := new(mocks.MockFileService)
	svc := newTestScanService(annotator, files)

	good1 := uuid.New()
	bad := uuid.New()
	good2 := uuid.New()

	meta := &domain.FileMeta{Status: domain.FileStatusUploaded}
	files.On("GetBytes", mock.Anything, good1).Return(meta, []byte("a"), nil)
	files.On("GetBytes", mock.Anything, good2).Return(meta, []byte("b"), nil)
	files.On("GetBytes", mock.Anything, bad).Return(nil, nil, errors.New("download failed"))
	annotator.On("Annotate", mock.Anything, mock.Anything).
		Return(&extract.AnnotationSet{FullText: scanMRZ}, nil)

	items, err := svc.ScanBatch(context.Background(), []uuid.UUID{good1, bad, good2})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, good1, items[0].FileID)
	require.NotNil(t, items[0].Result)
	assert.Empty(t, items[0].Error)

	assert.Equal(t, bad, items[1].FileID)
	assert.Nil(t, items[1].Result)
	assert.Contains(t, items[1].Error, "download failed")

	assert.Equal(t, good2, items[2].FileID)
	require.NotNil(t, items[2].Result)
}

func TestScanBatch_Empty(t *testing.T) {
	svc := newTestScanService(new(mocks.MockAnnotator), new(mocks.MockFileService))

	items, err := svc.ScanBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestScanBatch_ExceedsLimit(t *testing.T) {
	svc := newTestScanService(new(mocks.MockAnnotator), new(mocks.MockFileService))

	ids := make([]uuid.UUID, 11)
	for i := range ids {
		ids[i] = uuid.New()
	}

	_, err := svc.ScanBatch(context.Background(), ids)
	assert.Error(t, err)
}
