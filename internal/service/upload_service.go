package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/errs"
	"ocr-journal-backend/internal/extract"
	"ocr-journal-backend/internal/models"
)

// ExtractionResult is what one upload yields: the recognized text and the
// best-guess structured fields. Guess fields are empty/zero when the
// heuristics found nothing; that is a valid result, not a failure.
type ExtractionResult struct {
	UploadID       uuid.UUID
	Text           string
	Confidence     float64
	BankName       string
	AccountLast4   string
	AmountGuess    float64
	HasAmountGuess bool
	ReferenceGuess string
	DateGuess      string
	Filename       string
	Bytes          int
}

type UploadService struct {
	uploads   UploadStore
	ocr       *OCRService
	uploadDir string
	logger    *zap.Logger
}

func NewUploadService(uploads UploadStore, ocr *OCRService, uploadDir string, logger *zap.Logger) *UploadService {
	return &UploadService{
		uploads:   uploads,
		ocr:       ocr,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Process runs one screenshot through the pipeline: best-effort upscale,
// OCR, field extraction, then persists the Upload row and the image file.
func (s *UploadService) Process(ctx context.Context, filename, contentType string, r io.Reader) (*ExtractionResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	processed, err := PreprocessImage(content)
	if err != nil {
		// Pre-processing never aborts the pipeline
		var unsupported *errs.UnsupportedInputError
		if errors.As(err, &unsupported) {
			s.logger.Warn("image pre-processing skipped",
				zap.String("filename", filename),
				zap.String("reason", unsupported.Reason),
			)
		}
		processed = content
	}

	res, err := s.ocr.Recognize(ctx, processed)
	if err != nil {
		return nil, err
	}

	fields := extract.All(res.Text)

	upload := &models.Upload{
		ID:          uuid.New(),
		Filename:    filename,
		ContentType: contentType,
		SHA256:      contentHash(content),
		OCRText:     res.Text,
		OCRConf:     res.Confidence,
		CreatedAt:   time.Now().UTC(),
	}
	if fields.BankName != "" {
		bank := fields.BankName
		upload.BankGuess = &bank
	}

	if err := s.saveFile(upload.ID, filename, content); err != nil {
		s.logger.Warn("failed to store upload file", zap.Error(err))
	}

	if err := s.uploads.Create(ctx, upload); err != nil {
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	s.logger.Info("upload processed",
		zap.String("upload_id", upload.ID.String()),
		zap.String("bank_guess", fields.BankName),
		zap.Float64("ocr_conf", res.Confidence),
	)

	return &ExtractionResult{
		UploadID:       upload.ID,
		Text:           res.Text,
		Confidence:     res.Confidence,
		BankName:       fields.BankName,
		AccountLast4:   fields.AccountLast4,
		AmountGuess:    fields.Amount,
		HasAmountGuess: fields.HasAmount,
		ReferenceGuess: fields.Reference,
		DateGuess:      fields.Date,
		Filename:       filename,
		Bytes:          len(processed),
	}, nil
}

func (s *UploadService) saveFile(id uuid.UUID, filename string, content []byte) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", id.String(), filepath.Base(filename)))
	return os.WriteFile(dest, content, 0o644)
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
