package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"passdesk/internal/config"
	"passdesk/internal/extract"
	"passdesk/internal/port"
	"passdesk/internal/validator"
)

// ScanResult is the outcome of extracting one passport image.
type ScanResult struct {
	FileID        uuid.UUID                         `json:"file_id"`
	Fields        *extract.FieldRecord              `json:"fields"`
	FieldStatuses map[string]*validator.FieldStatus `json:"field_statuses"`
}

// BatchScanItem pairs one batch member with its result or failure.
type BatchScanItem struct {
	FileID uuid.UUID   `json:"file_id"`
	Result *ScanResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ScanService runs OCR extraction over stored passport images.
type ScanService interface {
	ScanImage(ctx context.Context, image []byte) (*ScanResult, error)
	ScanFile(ctx context.Context, fileID uuid.UUID) (*ScanResult, error)
	ScanBatch(ctx context.Context, fileIDs []uuid.UUID) ([]BatchScanItem, error)
}

type scanService struct {
	annotator port.Annotator
	files     FileService
	rules     *validator.Registry
	cfg       config.ScanConfig
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	annotator port.Annotator,
	files FileService,
	rules *validator.Registry,
	cfg config.ScanConfig,
) ScanService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 50
	}
	return &scanService{
		annotator: annotator,
		files:     files,
		rules:     rules,
		cfg:       cfg,
	}
}

func (s *scanService) ScanImage(ctx context.Context, image []byte) (*ScanResult, error) {
	ann, err := s.annotator.Annotate(ctx, port.AnnotateInput{ImageBytes: image})
	if err != nil {
		return nil, fmt.Errorf("scanService.ScanImage: %w", err)
	}

	fields := extract.Parse(ann)
	outcomes := validator.Run(ctx, s.rules, fields)

	return &ScanResult{
		Fields:        fields,
		FieldStatuses: validator.ComputeFieldStatuses(outcomes),
	}, nil
}

func (s *scanService) ScanFile(ctx context.Context, fileID uuid.UUID) (*ScanResult, error) {
	_, image, err := s.files.GetBytes(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("scanService.ScanFile: %w", err)
	}
	result, err := s.ScanImage(ctx, image)
	if err != nil {
		return nil, err
	}
	result.FileID = fileID
	return result, nil
}

// ScanBatch runs ScanFile over every ID with bounded concurrency. Results
// keep the input order; a failed member carries its error instead of
// aborting the whole batch.
func (s *scanService) ScanBatch(ctx context.Context, fileIDs []uuid.UUID) ([]BatchScanItem, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}
	if len(fileIDs) > s.cfg.MaxBatchSize {
		return nil, fmt.Errorf("scanService.ScanBatch: batch of %d exceeds limit %d", len(fileIDs), s.cfg.MaxBatchSize)
	}

	log.Printf("scanService.ScanBatch: scanning %d images (concurrency=%d)", len(fileIDs), s.cfg.Concurrency)

	items := make([]BatchScanItem, len(fileIDs))
	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, fileID := range fileIDs {
		i, fileID := i, fileID

		sem <- struct{}{} // acquire
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release

			item := BatchScanItem{FileID: fileID}
			result, err := s.ScanFile(ctx, fileID)
			if err != nil {
				log.Printf("scanService.ScanBatch: file %s failed: %v", fileID, err)
				item.Error = err.Error()
			} else {
				item.Result = result
			}
			items[i] = item
		}()
	}
	wg.Wait()

	return items, nil
}
